package mines

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// PlaceMines resets the truth grid and puts exactly count mines on distinct,
// uniformly sampled cells.
func (b *Board) PlaceMines(count int, r *rand.Rand) error {
	if count < 0 || count > len(b.content) {
		return fmt.Errorf("%w (got %d on %d cells)", ErrInvalidMineCount, count, len(b.content))
	}
	clear(b.content)
	for placed := 0; placed < count; {
		i := r.IntN(len(b.content))
		if b.content[i] == Mine {
			continue
		}
		b.content[i] = Mine
		placed++
	}
	b.assertMineCount(count)
	Log.WithFields(logrus.Fields{
		"board": b.String(),
	}).Debug("mines placed")
	return nil
}

// PlaceMinesAt resets the truth grid and puts mines exactly at points.
func (b *Board) PlaceMinesAt(points ...Point) error {
	for _, p := range points {
		if err := b.checkBounds(p.X, p.Y); err != nil {
			return err
		}
	}
	clear(b.content)
	for _, p := range points {
		b.content[b.index(p.X, p.Y)] = Mine
	}
	return nil
}

// neighborhood returns the indices of x,y and its in-bounds 8 neighbors.
func (b *Board) neighborhood(x, y int) []int {
	zone := make([]int, 0, 9)
	zone = append(zone, b.index(x, y))
	for p := range b.Neighbors8(x, y) {
		zone = append(zone, b.index(p.X, p.Y))
	}
	return zone
}

// EnsureFirstClickSafe moves every mine out of x,y and its 8 neighbors. Each
// mine found there is moved to a random mine-free cell anywhere on the board,
// and the neighborhood is rescanned until it is clear. The total number of
// mines does not change.
//
// If the mines cannot all fit outside the neighborhood, it returns
// [ErrTooManyMines] and leaves the board untouched.
//
// panics [AssertionError]
func (b *Board) EnsureFirstClickSafe(x, y int, r *rand.Rand) error {
	if err := b.checkBounds(x, y); err != nil {
		return err
	}

	zone := b.neighborhood(x, y)
	total := b.MineCount()
	if total > len(b.content)-len(zone) {
		return fmt.Errorf(
			"%w: %d mines, %d cells outside the neighborhood of %d:%d",
			ErrTooManyMines, total, len(b.content)-len(zone), x, y,
		)
	}

	moved := 0
	// The mined cells of a pass are collected before any of them is moved.
	mined := make([]int, 0, len(zone))
	for {
		mined = mined[:0]
		for _, i := range zone {
			if b.content[i] == Mine {
				mined = append(mined, i)
			}
		}
		if len(mined) == 0 {
			break
		}
		for _, i := range mined {
			b.content[i] = Empty
			b.content[b.randomVacant(r, i)] = Mine
			moved++
		}
	}

	b.assertMineCount(total)
	if moved > 0 {
		Log.WithFields(logrus.Fields{
			"board": b.String(),
			"start": Point{x, y}.String(),
			"moves": moved,
		}).Debug("mines relocated away from first click")
	}
	return nil
}

// randomVacant samples the whole board until it finds a mine-free cell other
// than from.
func (b *Board) randomVacant(r *rand.Rand, from int) int {
	for {
		i := r.IntN(len(b.content))
		if i != from && b.content[i] != Mine {
			return i
		}
	}
}

// panics [AssertionError]
func (b *Board) assertMineCount(want int) {
	if got := b.MineCount(); got != want {
		panic(AssertionError{fmt.Sprintf("mine count is %d, want %d", got, want)})
	}
}
