package mines

import "github.com/sirupsen/logrus"

var Log = logrus.New()

// worklist is a FIFO of cell indexes backed by a slice. Cells are pushed at
// most once because callers mark them revealed before pushing.
type worklist struct {
	items []int
	head  int
}

func (w *worklist) push(i int) {
	w.items = append(w.items, i)
}

func (w *worklist) pop() (int, bool) {
	if w.head >= len(w.items) {
		return 0, false
	}
	i := w.items[w.head]
	w.head++
	return i, true
}

func iif[T any](condition bool, valueIfTrue, valueIfFalse T) T {
	if condition {
		return valueIfTrue
	} else {
		return valueIfFalse
	}
}
