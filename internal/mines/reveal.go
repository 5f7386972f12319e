package mines

// RevealOutcome aggregates the side effects of a reveal for the caller.
type RevealOutcome struct {
	// Noop is set when the cell was already revealed.
	Noop    bool
	HitMine bool
	// FlagsDelta is the number of flags refunded by revealing flagged cells.
	FlagsDelta int
	// Revealed lists newly revealed cells, the target first, then the
	// cascade in breadth-first order.
	Revealed []int
}

// Cascaded is the number of cells revealed besides the target.
func (o RevealOutcome) Cascaded() int {
	if len(o.Revealed) == 0 {
		return 0
	}
	return len(o.Revealed) - 1
}

// Reveal opens cell i. A mine is not marked revealed, it is recorded as the
// exploded cell instead. Opening a cell with no adjacent mines opens the
// whole connected zero region and its non-zero border.
//
// panics [IndexError]
func (f *Field) Reveal(i int) (out RevealOutcome) {
	f.checkIndex(i)

	c := &f.cells[i]
	if c.Revealed {
		out.Noop = true
		return
	}
	if c.HasMine {
		f.exploded = i
		out.HitMine = true
		return
	}

	f.open(i, &out)
	if c.MinesAround != 0 {
		return
	}

	/*
	 * Revealed doubles as the visited marker: a cell is opened before it
	 * is queued, so it is never queued twice.
	 */
	var todo worklist
	todo.push(i)
	for {
		j, ok := todo.pop()
		if !ok {
			break
		}
		for _, k := range f.Neighbors(j) {
			if !f.cells[k].shouldReveal() {
				continue
			}
			f.open(k, &out)
			if f.cells[k].MinesAround == 0 {
				todo.push(k)
			}
		}
	}

	return
}

func (f *Field) open(i int, out *RevealOutcome) {
	if f.cells[i].reveal() {
		f.flagsLeft++
		out.FlagsDelta++
	}
	out.Revealed = append(out.Revealed, i)
}
