package mines

import "fmt"

// Reveal describes the effect of opening one cell.
type Reveal struct {
	// HitMine is set when the opened cell held a mine. Nothing else is
	// revealed in that case.
	HitMine bool
	// Adjacency is the mine count around the opened cell.
	Adjacency int
	// Cells lists every cell turned Revealed, the opened cell first.
	Cells []Point
}

// Cascade reports whether the opening spread past the clicked cell.
func (r Reveal) Cascade() bool {
	return len(r.Cells) > 1
}

// Open reveals x,y. An empty cell with no adjacent mines floods outwards
// through orthogonal neighbors: every empty, hidden neighbor is revealed, and
// the ones that also have no adjacent mines keep spreading. Flagged cells are
// left alone and stop the flood like mines do.
//
// Open returns [ErrOutOfBounds] for invalid coordinates and [ErrBlocked], with
// nothing changed, for a flagged or revealed cell.
func (b *Board) Open(x, y int) (Reveal, error) {
	if err := b.checkBounds(x, y); err != nil {
		return Reveal{}, err
	}
	start := b.index(x, y)
	if v := b.visibility[start]; v != Hidden {
		return Reveal{}, fmt.Errorf("%w: %d:%d is %s", ErrBlocked, x, y, v)
	}

	switch b.content[start] {
	case Mine:
		b.visibility[start] = Revealed
		return Reveal{HitMine: true, Cells: []Point{{x, y}}}, nil
	case Empty:
	default:
		panic(AssertionError{fmt.Sprintf("invalid content %s at %d:%d", b.content[start], x, y)})
	}

	b.visibility[start] = Revealed
	res := Reveal{
		Adjacency: b.AdjacencyCount(x, y),
		Cells:     []Point{{x, y}},
	}
	if res.Adjacency > 0 {
		return res, nil
	}

	visited := make([]bool, len(b.content))
	visited[start] = true
	todo := []int{start}
	for len(todo) > 0 {
		i := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		p := b.point(i)
		for q := range b.Neighbors4(p.X, p.Y) {
			j := b.index(q.X, q.Y)
			if visited[j] {
				continue
			}
			visited[j] = true
			if b.content[j] != Empty || b.visibility[j] != Hidden {
				continue
			}
			b.visibility[j] = Revealed
			res.Cells = append(res.Cells, q)
			if b.AdjacencyCount(q.X, q.Y) == 0 {
				todo = append(todo, j)
			}
		}
	}
	return res, nil
}

// ToggleFlag flips x,y between Hidden and Flagged and returns the new
// visibility. A revealed cell is reported with [ErrRevealed] and not changed.
func (b *Board) ToggleFlag(x, y int) (Visibility, error) {
	if err := b.checkBounds(x, y); err != nil {
		return Hidden, err
	}
	i := b.index(x, y)
	switch b.visibility[i] {
	case Hidden:
		b.visibility[i] = Flagged
	case Flagged:
		b.visibility[i] = Hidden
	case Revealed:
		return Revealed, fmt.Errorf("%w: %d:%d", ErrRevealed, x, y)
	}
	return b.visibility[i], nil
}
