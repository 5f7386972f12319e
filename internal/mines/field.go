package mines

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	DefaultSide      = 24
	DefaultMineCount = 99
)

// Field is a square grid of cells stored row-major, index = y*side + x.
type Field struct {
	side      int
	mineCount int
	flagsLeft int
	cells     []Cell
	exploded  int
}

type fieldOptions struct {
	r      *rand.Rand
	placer Placer
}

type FieldOption func(*fieldOptions)

func WithRand(r *rand.Rand) FieldOption {
	return func(o *fieldOptions) { o.r = r }
}

func WithPlacer(p Placer) FieldOption {
	return func(o *fieldOptions) { o.placer = p }
}

func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func validate(side, mineCount int) error {
	switch {
	case side < 1:
		return ConfigError{side, mineCount, "side must be positive"}
	case mineCount < 0:
		return ConfigError{side, mineCount, "mine count must not be negative"}
	case mineCount >= side*side:
		return ConfigError{side, mineCount, "mine count must be less than the number of cells"}
	}
	return nil
}

func newEmptyField(side, mineCount int) *Field {
	return &Field{
		side:      side,
		mineCount: mineCount,
		flagsLeft: mineCount,
		cells:     make([]Cell, side*side),
		exploded:  -1,
	}
}

// NewField places mineCount mines on a side x side grid and computes the
// adjacency counts. It fails with [ConfigError] before building anything if
// the mines do not fit.
func NewField(mineCount, side int, opts ...FieldOption) (*Field, error) {
	if err := validate(side, mineCount); err != nil {
		return nil, err
	}

	o := fieldOptions{placer: Uniform}
	for _, opt := range opts {
		opt(&o)
	}
	if o.r == nil {
		o.r = NewRand()
	}

	f := newEmptyField(side, mineCount)
	o.placer(f.cells, side, mineCount, o.r)
	f.countMines()

	Log.Debugf("generated field %dx%d(%d)", side, side, mineCount)
	if Log.IsLevelEnabled(logrus.TraceLevel) {
		Log.Trace("mine layout\n" + f.PrintGrid())
	}
	return f, nil
}

// FieldFromMines builds a field with mines at exactly the given indexes.
func FieldFromMines(side int, mineIdx []int) (*Field, error) {
	if err := validate(side, len(mineIdx)); err != nil {
		return nil, err
	}
	f := newEmptyField(side, len(mineIdx))
	for _, i := range mineIdx {
		if i < 0 || i >= len(f.cells) {
			return nil, ConfigError{side, len(mineIdx), fmt.Sprintf("mine index %d out of range", i)}
		}
		if f.cells[i].HasMine {
			return nil, ConfigError{side, len(mineIdx), fmt.Sprintf("duplicate mine index %d", i)}
		}
		f.cells[i].HasMine = true
	}
	f.countMines()
	return f, nil
}

func (f *Field) countMines() {
	for i := range f.cells {
		c := &f.cells[i]
		if c.HasMine {
			continue
		}
		var n uint8
		for _, j := range f.Neighbors(i) {
			if f.cells[j].HasMine {
				n++
			}
		}
		c.MinesAround = n
	}
}

func (f *Field) checkIndex(i int) {
	if i < 0 || i >= len(f.cells) {
		panic(IndexError{Index: i, Len: len(f.cells)})
	}
}

// Neighbors returns the indexes of the up to eight cells around i, clipped
// at the field edges.
func (f *Field) Neighbors(i int) []int {
	f.checkIndex(i)
	x, y := i%f.side, i/f.side
	ret := make([]int, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			xx, yy := x+dx, y+dy
			if (dx != 0 || dy != 0) &&
				0 <= xx && xx < f.side &&
				0 <= yy && yy < f.side {
				ret = append(ret, yy*f.side+xx)
			}
		}
	}
	return ret
}

func (f *Field) Side() int      { return f.side }
func (f *Field) Len() int       { return len(f.cells) }
func (f *Field) MineCount() int { return f.mineCount }
func (f *Field) FlagsLeft() int { return f.flagsLeft }

// Exploded returns the index of the mine that was revealed, or -1.
func (f *Field) Exploded() int { return f.exploded }

func (f *Field) Cell(i int) Cell {
	f.checkIndex(i)
	return f.cells[i]
}

// CorrectFlags counts flagged cells that hold a mine.
func (f *Field) CorrectFlags() (count int) {
	for _, c := range f.cells {
		if c.Flagged && c.HasMine {
			count++
		}
	}
	return
}

func (f *Field) AllMinesFlagged() bool {
	for _, c := range f.cells {
		if c.HasMine && !c.Flagged {
			return false
		}
	}
	return true
}

// MoveMineAway relocates the mine at i to the first mine-free cell in
// row-major order and recomputes the adjacency counts. It reports whether
// a mine was moved.
func (f *Field) MoveMineAway(i int) bool {
	f.checkIndex(i)
	if !f.cells[i].HasMine {
		return false
	}
	for j := range f.cells {
		if j != i && !f.cells[j].HasMine {
			f.cells[i].HasMine = false
			f.cells[j].HasMine = true
			f.countMines()
			Log.WithFields(logrus.Fields{
				"from": i,
				"to":   j,
			}).Debug("moved mine")
			return true
		}
	}
	return false
}

// PrintGrid renders the real mine layout, for debugging.
func (f *Field) PrintGrid() string {
	var b strings.Builder
	for y := range f.side {
		for x := range f.side {
			c := f.cells[y*f.side+x]
			fmt.Fprint(&b, iif(c.HasMine, "* ", "- "))
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

func (f *Field) String() string {
	return fmt.Sprintf("%dx%d(%d)", f.side, f.side, f.mineCount)
}
