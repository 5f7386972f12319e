package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFlag(t *testing.T) {
	f, err := FieldFromMines(3, []int{4, 8})
	require.NoError(t, err)

	out := f.ToggleFlag(0)
	assert.Equal(t, FlagOutcome{Changed: true, Flagged: true, FlagsLeft: 1}, out)

	out = f.ToggleFlag(0)
	assert.Equal(t, FlagOutcome{Changed: true, FlagsLeft: 2}, out)
	assert.False(t, f.Cell(0).Flagged)

	f.Reveal(0)
	out = f.ToggleFlag(0)
	assert.True(t, out.Noop)
	assert.False(t, f.Cell(0).Flagged)
	assert.Equal(t, 2, f.FlagsLeft())
}

func TestFlagBudgetExhausted(t *testing.T) {
	f, err := FieldFromMines(3, []int{4, 8})
	require.NoError(t, err)

	f.ToggleFlag(4)
	out := f.ToggleFlag(0)
	assert.False(t, out.Won, "misplaced flags must not win")
	assert.Equal(t, 0, out.FlagsLeft)

	out = f.ToggleFlag(8)
	assert.False(t, out.Changed)
	assert.False(t, out.Flagged)
	assert.False(t, f.Cell(8).Flagged)
	assert.Equal(t, 0, f.FlagsLeft())

	// unflag the wrong one and finish
	f.ToggleFlag(0)
	out = f.ToggleFlag(8)
	assert.True(t, out.Won)
}

func TestWinOnlyOnFullCoverage(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	f, err := NewField(DefaultMineCount, DefaultSide, WithRand(r))
	require.NoError(t, err)

	var mineIdx []int
	for i := range f.Len() {
		if f.Cell(i).HasMine {
			mineIdx = append(mineIdx, i)
		}
	}
	r.Shuffle(len(mineIdx), func(i, j int) { mineIdx[i], mineIdx[j] = mineIdx[j], mineIdx[i] })

	wins := 0
	for n, i := range mineIdx {
		out := f.ToggleFlag(i)
		require.True(t, out.Changed)
		if out.Won {
			wins++
			assert.Equal(t, len(mineIdx)-1, n, "won before the last mine was flagged")
		}
		assert.GreaterOrEqual(t, f.FlagsLeft(), 0)
		assert.LessOrEqual(t, f.FlagsLeft(), f.MineCount())
	}
	assert.Equal(t, 1, wins)
}

func TestFlagsLeftStaysInRange(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 9))
	f, err := NewField(10, 6, WithRand(r))
	require.NoError(t, err)

	for range 2000 {
		i := r.IntN(f.Len())
		if r.IntN(4) == 0 && !f.Cell(i).HasMine {
			f.Reveal(i)
		} else {
			f.ToggleFlag(i)
		}

		flagged := 0
		for j := range f.Len() {
			c := f.Cell(j)
			if c.Flagged {
				flagged++
			}
			assert.False(t, c.Revealed && c.Flagged)
		}
		require.Equal(t, f.MineCount()-flagged, f.FlagsLeft())
		require.GreaterOrEqual(t, f.FlagsLeft(), 0)
		require.LessOrEqual(t, f.FlagsLeft(), f.MineCount())
	}
}
