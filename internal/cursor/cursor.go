package cursor

import "fmt"

type Direction int

const (
	Right Direction = iota
	Left
	Up
	Down
)

// Cursor is a selected index into a side x side row-major grid. Moves wrap
// around within the same row or column.
type Cursor struct {
	side  int
	index int
}

func New(side int) Cursor {
	if side < 1 {
		panic(fmt.Sprintf("cursor: invalid side %d", side))
	}
	return Cursor{side: side}
}

func (c Cursor) Index() int { return c.index }
func (c Cursor) Row() int   { return c.index / c.side }
func (c Cursor) Col() int   { return c.index % c.side }

// Set moves the selection to i, panicking when i is outside the grid.
func (c *Cursor) Set(i int) {
	if i < 0 || i >= c.side*c.side {
		panic(fmt.Sprintf("cursor: index %d out of range [0, %d)", i, c.side*c.side))
	}
	c.index = i
}

func (c *Cursor) Move(d Direction) {
	c.index = Step(c.index, c.side, d)
}

// Step returns the index reached from i by one move in direction d.
func Step(i, side int, d Direction) int {
	col, row := i%side, i/side
	switch d {
	case Right:
		col = (col + 1) % side
	case Left:
		col = (col - 1 + side) % side
	case Up:
		row = (row - 1 + side) % side
	case Down:
		row = (row + 1) % side
	}
	return row*side + col
}
