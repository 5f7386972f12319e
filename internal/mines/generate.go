package mines

import "math/rand/v2"

// Placer sets HasMine on exactly mineCount of the given cells. cells is a
// side x side grid in row-major order with no mines on it.
type Placer func(cells []Cell, side, mineCount int, r *rand.Rand)

// Uniform picks mineCount distinct cells with equal probability.
func Uniform(cells []Cell, side, mineCount int, r *rand.Rand) {
	candidates := make([]int, len(cells))
	for i := range candidates {
		candidates[i] = i
	}
	placeFrom(cells, candidates, mineCount, r)
}

// placeFrom picks n cells off the candidate list at random.
func placeFrom(cells []Cell, candidates []int, n int, r *rand.Rand) {
	k := len(candidates)
	for range n {
		i := r.IntN(k)
		cells[candidates[i]].HasMine = true
		k--
		candidates[i] = candidates[k]
	}
}

const maxSparsePasses = 1000

// OrthogonalSparse walks the grid in row-major passes. Each visited cell is
// skipped with probability 1/2, skipped if one of index-1, index-side,
// index+1 or index+side already holds a mine, and otherwise mined with
// probability 1/2 while mines remain. Diagonal neighbours are not checked.
//
// Dense boards can run out of eligible cells; after maxSparsePasses passes
// the rest of the budget is placed uniformly over the free cells.
func OrthogonalSparse(cells []Cell, side, mineCount int, r *rand.Rand) {
	left := mineCount
	for pass := 0; left > 0 && pass < maxSparsePasses; pass++ {
		for i := range cells {
			if r.IntN(2) == 0 {
				continue
			}
			if i-1 >= 0 && cells[i-1].HasMine ||
				i-side >= 0 && cells[i-side].HasMine ||
				i+1 < len(cells) && cells[i+1].HasMine ||
				i+side < len(cells) && cells[i+side].HasMine {
				continue
			}
			if r.IntN(2) == 0 && !cells[i].HasMine && left > 0 {
				cells[i].HasMine = true
				left--
			}
		}
	}

	if left > 0 {
		Log.WithField("left", left).Warn("sparse placement stalled, placing the rest uniformly")
		free := make([]int, 0, len(cells))
		for i, c := range cells {
			if !c.HasMine {
				free = append(free, i)
			}
		}
		placeFrom(cells, free, left, r)
	}
}
