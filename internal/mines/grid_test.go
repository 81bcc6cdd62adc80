package mines

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardWith(t *testing.T, width, height int, mines ...Point) *Board {
	t.Helper()
	b, err := NewBoard(width, height)
	require.NoError(t, err)
	require.NoError(t, b.PlaceMinesAt(mines...))
	return b
}

func TestNewBoard(t *testing.T) {
	for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 5}} {
		_, err := NewBoard(dims[0], dims[1])
		assert.ErrorIs(t, err, ErrInvalidDimensions)
	}

	b, err := NewBoard(4, 2)
	require.NoError(t, err)
	assert.Equal(t, 8, b.Cells())
	for y := range 2 {
		for x := range 4 {
			c, err := b.Content(x, y)
			require.NoError(t, err)
			assert.Equal(t, Empty, c)
			v, err := b.Visibility(x, y)
			require.NoError(t, err)
			assert.Equal(t, Hidden, v)
		}
	}
}

func TestAccessorsOutOfBounds(t *testing.T) {
	b := boardWith(t, 3, 2)
	for _, p := range []Point{{-1, 0}, {0, -1}, {3, 0}, {0, 2}} {
		_, err := b.Content(p.X, p.Y)
		assert.ErrorIs(t, err, ErrOutOfBounds, p)
		_, err = b.Visibility(p.X, p.Y)
		assert.ErrorIs(t, err, ErrOutOfBounds, p)
		assert.Equal(t, Empty, b.neighborContent(p.X, p.Y))
	}
}

func TestAdjacencyCount(t *testing.T) {
	b := boardWith(t, 3, 3, Point{0, 0}, Point{2, 2})

	tests := []struct {
		p    Point
		want int
	}{
		{Point{1, 1}, 2},
		{Point{0, 1}, 1},
		{Point{1, 0}, 1},
		{Point{2, 0}, 0},
		{Point{0, 2}, 0},
		{Point{0, 0}, 0},
		{Point{2, 1}, 1},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, b.AdjacencyCount(test.p.X, test.p.Y), test.p)
	}
}

func TestNeighbors(t *testing.T) {
	b := boardWith(t, 3, 3)

	assert.Len(t, slices.Collect(b.Neighbors8(1, 1)), 8)
	assert.Len(t, slices.Collect(b.Neighbors8(0, 0)), 3)
	assert.Len(t, slices.Collect(b.Neighbors8(1, 0)), 5)

	assert.Equal(t,
		[]Point{{1, 0}, {0, 1}, {2, 1}, {1, 2}},
		slices.Collect(b.Neighbors4(1, 1)),
	)
	assert.Equal(t, []Point{{1, 0}, {0, 1}}, slices.Collect(b.Neighbors4(0, 0)))
}

func TestFlagsMatchMines(t *testing.T) {
	b := boardWith(t, 3, 3, Point{0, 0}, Point{1, 2})
	assert.False(t, b.FlagsMatchMines())

	_, err := b.ToggleFlag(0, 0)
	require.NoError(t, err)
	assert.False(t, b.FlagsMatchMines())

	_, err = b.ToggleFlag(2, 2)
	require.NoError(t, err)
	_, err = b.ToggleFlag(1, 2)
	require.NoError(t, err)
	assert.False(t, b.FlagsMatchMines(), "extra flag on an empty cell")

	_, err = b.ToggleFlag(2, 2)
	require.NoError(t, err)
	assert.True(t, b.FlagsMatchMines())
}

func TestPrintGrid(t *testing.T) {
	b := boardWith(t, 3, 2, Point{1, 0}, Point{2, 1})
	assert.Equal(t, "- * - \n- - * \n", b.PrintGrid())
	assert.Equal(t, "3x2(2)", b.String())
}
