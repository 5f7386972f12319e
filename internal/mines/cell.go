package mines

// Cell is one square of the field. MinesAround is only meaningful when
// HasMine is false.
type Cell struct {
	Revealed    bool
	Flagged     bool
	HasMine     bool
	MinesAround uint8
}

func (c Cell) shouldReveal() bool {
	return !c.HasMine && !c.Revealed
}

// reveal opens the cell and reports whether a flag had to be cleared.
func (c *Cell) reveal() (unflagged bool) {
	c.Revealed = true
	if c.Flagged {
		c.Flagged = false
		return true
	}
	return false
}
