package game

import (
	"time"

	"github.com/vancomm/minesweeper-pad/internal/mines"
)

type CellView struct {
	Revealed bool `json:"revealed"`
	Flagged  bool `json:"flagged"`
	// MinesAround is zero unless the cell is revealed.
	MinesAround uint8 `json:"mines_around"`
	// HasMine is nil unless the cell is revealed or the game is over.
	HasMine *bool `json:"has_mine,omitempty"`
}

// Snapshot is the read-only view handed to presentation layers.
type Snapshot struct {
	Cells          []CellView     `json:"-"`
	Grid           mines.GridInfo `json:"grid"`
	Side           int            `json:"side"`
	MineCount      int            `json:"mine_count"`
	Selection      int            `json:"selection"`
	FlagsLeft      int            `json:"flags_left"`
	Elapsed        time.Duration  `json:"-"`
	ElapsedSeconds int64          `json:"elapsed_seconds"`
	Status         Status         `json:"status"`
	// Exploded is the mine that ended the game, or -1.
	Exploded int `json:"exploded"`
	// CorrectFlags is only filled in once the game is over.
	CorrectFlags int `json:"correct_flags,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	over := s.status != Playing
	f := s.field

	cells := make([]CellView, f.Len())
	for i := range cells {
		c := f.Cell(i)
		v := CellView{Revealed: c.Revealed, Flagged: c.Flagged}
		if c.Revealed {
			v.MinesAround = c.MinesAround
		}
		if c.Revealed || over {
			hasMine := c.HasMine
			v.HasMine = &hasMine
		}
		cells[i] = v
	}

	elapsed := s.Elapsed()
	snap := Snapshot{
		Cells:          cells,
		Grid:           f.PlayerGrid(over),
		Side:           f.Side(),
		MineCount:      f.MineCount(),
		Selection:      s.cursor.Index(),
		FlagsLeft:      f.FlagsLeft(),
		Elapsed:        elapsed,
		ElapsedSeconds: int64(elapsed / time.Second),
		Status:         s.status,
		Exploded:       f.Exploded(),
	}
	if over {
		snap.CorrectFlags = f.CorrectFlags()
	}
	return snap
}
