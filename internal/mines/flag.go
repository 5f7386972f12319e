package mines

type FlagOutcome struct {
	// Noop is set when the cell is revealed and cannot carry a flag.
	Noop bool
	// Changed is false when a flag was requested with no flags left.
	Changed   bool
	Flagged   bool
	Won       bool
	FlagsLeft int
}

// ToggleFlag flips the flag on cell i. Placing the last flag checks the
// win condition: every mine must carry a flag.
//
// panics [IndexError]
func (f *Field) ToggleFlag(i int) (out FlagOutcome) {
	f.checkIndex(i)

	c := &f.cells[i]
	switch {
	case c.Revealed:
		out.Noop = true
	case c.Flagged:
		c.Flagged = false
		f.flagsLeft++
		out.Changed = true
	case f.flagsLeft > 0:
		c.Flagged = true
		f.flagsLeft--
		out.Changed, out.Flagged = true, true
		if f.flagsLeft == 0 {
			out.Won = f.AllMinesFlagged()
		}
	default:
		out.Flagged = c.Flagged
	}

	out.FlagsLeft = f.flagsLeft
	return
}
