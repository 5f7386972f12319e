package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellStatus int8

const (
	Unknown       CellStatus = -2
	Flag          CellStatus = -1
	CorrectFlag   CellStatus = 64 // post-game-over
	ExplodedMine  CellStatus = 65
	WrongFlag     CellStatus = 66
	UnflaggedMine CellStatus = 67
	// 0-8 for empty with given number of mined neighbors
)

func (s CellStatus) String() string {
	switch s {
	case Unknown:
		return "."
	case Flag, CorrectFlag:
		return "F"
	case ExplodedMine:
		return "X"
	case WrongFlag:
		return "x"
	case UnflaggedMine:
		return "*"
	case 0:
		return " "
	case 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

type GridInfo []CellStatus

func (g GridInfo) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")

	}
	return b.String()
}

// PlayerGrid encodes what the player may see. Once the game is over every
// mine is exposed and wrong flags are marked.
func (f *Field) PlayerGrid(over bool) GridInfo {
	grid := make(GridInfo, len(f.cells))
	for i, c := range f.cells {
		switch {
		case c.Revealed:
			grid[i] = CellStatus(c.MinesAround)
		case i == f.exploded:
			grid[i] = ExplodedMine
		case c.Flagged && over:
			grid[i] = iif(c.HasMine, CorrectFlag, WrongFlag)
		case c.Flagged:
			grid[i] = Flag
		case c.HasMine && over:
			grid[i] = UnflaggedMine
		default:
			grid[i] = Unknown
		}
	}
	return grid
}
