package mines

import (
	"fmt"
	"iter"
	"strings"
)

// CellContent is what a cell truly holds. It lives only in the truth grid.
type CellContent uint8

const (
	Empty CellContent = iota
	Mine
)

func (c CellContent) String() string {
	switch c {
	case Empty:
		return "empty"
	case Mine:
		return "mine"
	default:
		return fmt.Sprintf("CellContent(%d)", uint8(c))
	}
}

// Visibility is what the player knows about a cell.
type Visibility uint8

const (
	Hidden Visibility = iota
	Flagged
	Revealed
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Flagged:
		return "flagged"
	case Revealed:
		return "revealed"
	default:
		return fmt.Sprintf("Visibility(%d)", uint8(v))
	}
}

type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.X, p.Y)
}

// Near reports whether q is p itself or one of its 8 neighbors.
func (p Point) Near(q Point) bool {
	return absDiff(p.X, q.X) <= 1 && absDiff(p.Y, q.Y) <= 1
}

// Board holds the truth grid and the visibility grid side by side. Both are
// stored row-major in flat slices of width*height cells.
type Board struct {
	width, height int
	content       []CellContent
	visibility    []Visibility
}

func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w (got %dx%d)", ErrInvalidDimensions, width, height)
	}
	return &Board{
		width:      width,
		height:     height,
		content:    make([]CellContent, width*height),
		visibility: make([]Visibility, width*height),
	}, nil
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }
func (b *Board) Cells() int  { return len(b.content) }

func (b *Board) InBounds(x, y int) bool {
	return 0 <= x && x < b.width && 0 <= y && y < b.height
}

func (b *Board) index(x, y int) int {
	return y*b.width + x
}

func (b *Board) point(i int) Point {
	return Point{i % b.width, i / b.width}
}

func (b *Board) checkBounds(x, y int) error {
	if !b.InBounds(x, y) {
		return fmt.Errorf("%w: %d:%d on %dx%d board", ErrOutOfBounds, x, y, b.width, b.height)
	}
	return nil
}

func (b *Board) Content(x, y int) (CellContent, error) {
	if err := b.checkBounds(x, y); err != nil {
		return Empty, err
	}
	return b.content[b.index(x, y)], nil
}

func (b *Board) Visibility(x, y int) (Visibility, error) {
	if err := b.checkBounds(x, y); err != nil {
		return Hidden, err
	}
	return b.visibility[b.index(x, y)], nil
}

// neighborContent is [Board.Content] with Empty for out-of-bounds cells.
func (b *Board) neighborContent(x, y int) CellContent {
	if !b.InBounds(x, y) {
		return Empty
	}
	return b.content[b.index(x, y)]
}

// AdjacencyCount returns the number of mines among the 8 cells around x,y.
// It is recomputed on every call since content moves during the first click.
func (b *Board) AdjacencyCount(x, y int) int {
	n := 0
	for _, d := range offsets8 {
		if b.neighborContent(x+d.X, y+d.Y) == Mine {
			n++
		}
	}
	return n
}

// Neighbors8 yields the in-bounds cells of the 8-neighborhood of x,y.
func (b *Board) Neighbors8(x, y int) iter.Seq[Point] {
	return b.neighbors(x, y, offsets8[:])
}

// Neighbors4 yields the in-bounds orthogonal neighbors of x,y.
func (b *Board) Neighbors4(x, y int) iter.Seq[Point] {
	return b.neighbors(x, y, offsets4[:])
}

func (b *Board) neighbors(x, y int, offsets []Point) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for _, d := range offsets {
			p := Point{x + d.X, y + d.Y}
			if !b.InBounds(p.X, p.Y) {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// MineCount counts the mines in the truth grid.
func (b *Board) MineCount() (count int) {
	for _, c := range b.content {
		if c == Mine {
			count++
		}
	}
	return
}

// FlagCount counts the flagged cells in the visibility grid.
func (b *Board) FlagCount() (count int) {
	for _, v := range b.visibility {
		if v == Flagged {
			count++
		}
	}
	return
}

// Mines lists mine positions in row-major order.
func (b *Board) Mines() []Point {
	var mines []Point
	for i, c := range b.content {
		if c == Mine {
			mines = append(mines, b.point(i))
		}
	}
	return mines
}

// FlagsMatchMines reports whether the flagged set equals the mine set: no
// mine is left unflagged and no empty cell carries a flag.
func (b *Board) FlagsMatchMines() bool {
	for i, c := range b.content {
		if (c == Mine) != (b.visibility[i] == Flagged) {
			return false
		}
	}
	return true
}

// PrintGrid draws the truth grid, '*' for mines and '-' for empty cells.
func (b *Board) PrintGrid() string {
	var sb strings.Builder
	for y := range b.height {
		for x := range b.width {
			if b.content[b.index(x, y)] == Mine {
				sb.WriteString("* ")
			} else {
				sb.WriteString("- ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (b *Board) String() string {
	return fmt.Sprintf("%dx%d(%d)", b.width, b.height, b.MineCount())
}
