package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	f, err := os.CreateTemp("", "sqlite-highscores-")
	require.NoError(t, err, "failed to create temp file")
	f.Close()

	s, err := OpenSQLite(f.Name())
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
		os.Remove(f.Name())
	})
	return s
}

func intPtr(i int) *int { return &i }

func TestSQLiteEmpty(t *testing.T) {
	s := setupTestSQLite(t)

	scores, err := s.GetHighScores(context.Background(), HighScoreFilter{})
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestSQLiteSaveAndOrder(t *testing.T) {
	s := setupTestSQLite(t)
	ctx := context.Background()

	for _, p := range []CreateHighScoreParams{
		{SessionKey: "a", PlayerName: "ann", Side: 24, MineCount: 99, Elapsed: 95 * time.Second},
		{SessionKey: "b", PlayerName: "bob", Side: 24, MineCount: 99, Elapsed: 61 * time.Second},
		{SessionKey: "c", PlayerName: "cat", Side: 9, MineCount: 10, Elapsed: 3 * time.Second},
	} {
		saved, err := s.SaveHighScore(ctx, p)
		require.NoError(t, err)
		assert.NotZero(t, saved.HighscoreId)
	}

	scores, err := s.GetHighScores(ctx, HighScoreFilter{})
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, []string{"cat", "bob", "ann"}, []string{
		scores[0].PlayerName, scores[1].PlayerName, scores[2].PlayerName,
	})
	assert.Equal(t, 61*time.Second, scores[1].Elapsed())

	scores, err = s.GetHighScores(ctx, HighScoreFilter{
		Side: intPtr(24), MineCount: intPtr(99), Limit: 1,
	})
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "b", scores[0].SessionKey)
}

func TestSQLiteDuplicate(t *testing.T) {
	s := setupTestSQLite(t)
	ctx := context.Background()
	p := CreateHighScoreParams{SessionKey: "same", PlayerName: "ann", Side: 24, MineCount: 99}

	_, err := s.SaveHighScore(ctx, p)
	require.NoError(t, err)
	_, err = s.SaveHighScore(ctx, p)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestHighScoreFilter(t *testing.T) {
	where, args := HighScoreFilter{}.WhereClause()
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = HighScoreFilter{Side: intPtr(24), MineCount: intPtr(99)}.WhereClause()
	assert.Equal(t, "side = @side AND mine_count = @mineCount", where)
	assert.Equal(t, 24, args["side"])
	assert.Equal(t, 99, args["mineCount"])

	assert.Equal(t, DefaultLimit, HighScoreFilter{}.limit())
	assert.Equal(t, MaxLimit, HighScoreFilter{Limit: 1000}.limit())
	assert.Equal(t, 5, HighScoreFilter{Limit: 5}.limit())
}
