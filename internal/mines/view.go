package mines

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type CellKind uint8

const (
	CellHidden CellKind = iota
	CellFlagged
	CellRevealed
	// The kinds below only appear once the game is lost.
	CellMine
	CellExploded
	CellWrongFlag
	CellCorrectFlag
)

// CellView is what a renderer shows for a single cell.
type CellView struct {
	Kind CellKind
	// Adjacency is set for CellRevealed.
	Adjacency int
}

// Code returns the compact wire encoding of c:
//
//   - 0 to 8 for a revealed cell with its adjacent mine count
//   - -1 for a flag
//   - -2 for a hidden cell
//   - 64 for a correct flag, 65 for the mine that was hit, 66 for a wrong
//     flag and 67 for a mine nobody flagged, once the game is lost
func (c CellView) Code() int8 {
	switch c.Kind {
	case CellHidden:
		return -2
	case CellFlagged:
		return -1
	case CellRevealed:
		return int8(c.Adjacency)
	case CellCorrectFlag:
		return 64
	case CellExploded:
		return 65
	case CellWrongFlag:
		return 66
	case CellMine:
		return 67
	default:
		panic(AssertionError{fmt.Sprintf("unknown cell kind %d", c.Kind)})
	}
}

// [CellView] implements [json.Marshaler]
func (c CellView) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Code())
}

func (c CellView) String() string {
	switch c.Kind {
	case CellHidden:
		return "-"
	case CellFlagged, CellCorrectFlag:
		return "F"
	case CellRevealed:
		if c.Adjacency == 0 {
			return "."
		}
		return strconv.Itoa(c.Adjacency)
	case CellMine:
		return "*"
	case CellExploded:
		return "X"
	case CellWrongFlag:
		return "x"
	default:
		return "!"
	}
}

// View is a snapshot of everything the player may see.
type View struct {
	Width          int        `json:"width"`
	Height         int        `json:"height"`
	MineCount      int        `json:"mine_count"`
	RemainingFlags int        `json:"remaining_flags"`
	Status         Status     `json:"status"`
	Grid           []CellView `json:"grid"`
}

func (v View) At(x, y int) CellView {
	return v.Grid[y*v.Width+x]
}

// ToString draws the grid row by row, cells separated by spaces.
func (v View) ToString() string {
	var b strings.Builder
	for y := range v.Height {
		for x := range v.Width {
			if x > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(v.At(x, y).String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// View derives the player's view of the game. It does not modify the game.
func (g *Game) View() View {
	b := g.board
	view := View{
		Width:          b.width,
		Height:         b.height,
		MineCount:      g.mineCount,
		RemainingFlags: g.remaining,
		Status:         g.status,
		Grid:           make([]CellView, len(b.content)),
	}
	lost := g.status == Lost
	for i := range b.content {
		mine := b.content[i] == Mine
		var cell CellView
		switch vis := b.visibility[i]; {
		case lost && g.hit && i == b.index(g.exploded.X, g.exploded.Y):
			cell.Kind = CellExploded
		case vis == Revealed && mine:
			// Only reachable through the exploded cell.
			cell.Kind = CellMine
		case vis == Revealed:
			p := b.point(i)
			cell = CellView{Kind: CellRevealed, Adjacency: b.AdjacencyCount(p.X, p.Y)}
		case vis == Flagged && lost && mine:
			cell.Kind = CellCorrectFlag
		case vis == Flagged && lost:
			cell.Kind = CellWrongFlag
		case vis == Flagged:
			cell.Kind = CellFlagged
		case lost && mine:
			cell.Kind = CellMine
		default:
			cell.Kind = CellHidden
		}
		view.Grid[i] = cell
	}
	return view
}
