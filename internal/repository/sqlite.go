package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
)

// SQLite keeps high scores in a local file for the terminal frontends.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite db: %w", err)
	}
	s, err := NewSQLite(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func NewSQLite(db *sql.DB) (*SQLite, error) {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS highscore (
	highscore_id	INTEGER PRIMARY KEY AUTOINCREMENT,
	session_key		TEXT NOT NULL UNIQUE,
	player_name		TEXT NOT NULL,
	side			INTEGER NOT NULL,
	mine_count		INTEGER NOT NULL,
	elapsed_ms		INTEGER NOT NULL,
	created_at		DATETIME NOT NULL
);`)
	if err != nil {
		return nil, fmt.Errorf("failed to create highscore table: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) SaveHighScore(
	ctx context.Context, params CreateHighScoreParams,
) (*HighScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	score := &HighScore{
		SessionKey: params.SessionKey,
		PlayerName: params.PlayerName,
		Side:       params.Side,
		MineCount:  params.MineCount,
		ElapsedMs:  params.Elapsed.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO highscore (
	session_key, player_name, side, mine_count, elapsed_ms, created_at
) VALUES (?, ?, ?, ?, ?, ?);`,
		score.SessionKey, score.PlayerName, score.Side, score.MineCount,
		score.ElapsedMs, score.CreatedAt,
	)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert high score: %w", err)
	}
	if score.HighscoreId, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	return score, nil
}

func (s *SQLite) GetHighScores(
	ctx context.Context, filter HighScoreFilter,
) ([]HighScore, error) {
	query := `
SELECT highscore_id, session_key, player_name, side, mine_count, elapsed_ms, created_at
FROM highscore`

	clauses := make([]string, 0)
	args := make([]any, 0)
	if filter.Side != nil {
		clauses = append(clauses, "side = ?")
		args = append(args, *filter.Side)
	}
	if filter.MineCount != nil {
		clauses = append(clauses, "mine_count = ?")
		args = append(args, *filter.MineCount)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY elapsed_ms, created_at LIMIT ?;"
	args = append(args, filter.limit())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query high scores: %w", err)
	}
	defer rows.Close()

	scores := make([]HighScore, 0)
	for rows.Next() {
		var h HighScore
		err := rows.Scan(
			&h.HighscoreId, &h.SessionKey, &h.PlayerName, &h.Side,
			&h.MineCount, &h.ElapsedMs, &h.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scores = append(scores, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return scores, nil
}
