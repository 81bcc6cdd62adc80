package mines

import (
	"math/rand/v2"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	os.Exit(m.Run())
}

func gameWith(t *testing.T, width, height int, mines ...Point) *Game {
	t.Helper()
	g, err := New(width, height, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	require.NoError(t, g.PlaceMinesAt(mines...))
	return g
}

func TestNew(t *testing.T) {
	g, err := New(4, 3, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	assert.Equal(t, Playing, g.Status())
	assert.Equal(t, 0, g.MineCount())
	assert.False(t, g.Started())

	_, err = New(0, 3, nil)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestNewGame(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	g, err := NewGame(GameParams{Width: 9, Height: 9, MineCount: 10}, r)
	require.NoError(t, err)
	assert.Equal(t, 10, g.MineCount())
	assert.Equal(t, 10, g.RemainingFlags())
	assert.Equal(t, GameParams{Width: 9, Height: 9, MineCount: 10}, g.Params())

	_, err = NewGame(GameParams{Width: 3, Height: 3, MineCount: 1}, r)
	assert.ErrorIs(t, err, ErrTooManyMines)
}

func TestFirstClickIsSafe(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(1, 2))
	params := GameParams{Width: 9, Height: 9, MineCount: 35}
	for range 200 {
		g, err := NewGame(params, r)
		require.NoError(t, err)
		x, y := r.IntN(params.Width), r.IntN(params.Height)

		res, err := g.FirstClick(x, y)
		require.NoError(t, err)
		assert.False(t, res.HitMine)
		assert.Equal(t, 0, res.Adjacency)
		assert.Equal(t, Playing, g.Status())
		assert.Equal(t, params.MineCount, g.board.MineCount())

		c, err := g.Content(x, y)
		require.NoError(t, err)
		assert.Equal(t, Empty, c)
		n, err := g.AdjacencyCount(x, y)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	}
}

func TestFirstClickRelocatesScenario(t *testing.T) {
	g := gameWith(t, 3, 3, Point{0, 0})
	res, err := g.FirstClick(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Adjacency)
	assert.Equal(t, 1, g.board.MineCount())
	for _, m := range g.board.Mines() {
		assert.False(t, Point{2, 2}.Near(m))
	}
}

func TestFirstClickOnce(t *testing.T) {
	g := gameWith(t, 5, 5, Point{4, 4})
	_, err := g.FirstClick(0, 0)
	require.NoError(t, err)
	assert.True(t, g.Started())

	_, err = g.FirstClick(0, 0)
	assert.ErrorIs(t, err, ErrAlreadyStarted)
	assert.ErrorIs(t, g.PlaceMines(3), ErrAlreadyStarted)
}

func TestFirstClickRejections(t *testing.T) {
	g := gameWith(t, 3, 3, Point{1, 1})
	_, err := g.FirstClick(3, 3)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = g.Flag(0, 0)
	require.NoError(t, err)
	_, err = g.FirstClick(0, 0)
	assert.ErrorIs(t, err, ErrBlocked)
	assert.Equal(t, []Point{{1, 1}}, g.board.Mines(), "rejected first click moves nothing")
	assert.False(t, g.Started())

	full := gameWith(t, 3, 3,
		Point{0, 0}, Point{1, 0}, Point{2, 0},
		Point{0, 1}, Point{2, 1},
		Point{0, 2}, Point{1, 2}, Point{2, 2},
	)
	_, err = full.FirstClick(1, 1)
	assert.ErrorIs(t, err, ErrTooManyMines)
}

func TestClickRejectedLeavesStateAlone(t *testing.T) {
	g := gameWith(t, 4, 4, Point{3, 3})
	_, err := g.Flag(0, 0)
	require.NoError(t, err)
	_, err = g.Click(2, 2)
	require.NoError(t, err)

	before := g.View()
	_, err = g.Click(0, 0)
	assert.ErrorIs(t, err, ErrBlocked)
	_, err = g.Click(2, 2)
	assert.ErrorIs(t, err, ErrBlocked)
	_, err = g.Click(4, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Equal(t, before, g.View())
}

func TestHitMine(t *testing.T) {
	g := gameWith(t, 3, 3, Point{0, 0}, Point{2, 2})
	res, err := g.Click(0, 0)
	require.NoError(t, err)
	assert.True(t, res.HitMine)
	assert.Equal(t, Lost, g.Status())

	before := g.View()
	_, err = g.Click(1, 1)
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = g.Flag(2, 2)
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = g.Chord(1, 1)
	assert.ErrorIs(t, err, ErrGameOver)
	assert.ErrorIs(t, g.Forfeit(), ErrGameOver)
	assert.Equal(t, before, g.View())
	assert.Equal(t, 2, g.RemainingFlags())
}

func TestFlagToggleRestores(t *testing.T) {
	g := gameWith(t, 3, 3, Point{0, 0}, Point{2, 2})

	v, err := g.Flag(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Flagged, v)
	assert.Equal(t, 1, g.RemainingFlags())

	v, err = g.Flag(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Hidden, v)
	assert.Equal(t, 2, g.RemainingFlags())

	_, err = g.Flag(-1, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = g.Click(1, 0)
	require.NoError(t, err)
	_, err = g.Flag(1, 0)
	assert.ErrorIs(t, err, ErrRevealed)
	assert.Equal(t, 2, g.RemainingFlags())
}

func TestWinNeedsExactFlags(t *testing.T) {
	g := gameWith(t, 5, 5, Point{0, 0}, Point{4, 4})

	_, err := g.Flag(2, 2)
	require.NoError(t, err)
	_, err = g.Flag(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, g.RemainingFlags())
	assert.Equal(t, Playing, g.Status(), "flag count matches but one flag is wrong")

	_, err = g.Flag(2, 2)
	require.NoError(t, err)
	assert.Equal(t, Playing, g.Status())
	assert.Equal(t, 1, g.RemainingFlags())

	_, err = g.Flag(4, 4)
	require.NoError(t, err)
	assert.Equal(t, Won, g.Status())
}

func TestWinIsTerminal(t *testing.T) {
	g := gameWith(t, 5, 5, Point{4, 4})
	v, err := g.Flag(4, 4)
	require.NoError(t, err)
	assert.Equal(t, Flagged, v)
	assert.Equal(t, Won, g.Status())

	_, err = g.Flag(4, 4)
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, Won, g.Status())
	vis, err := g.Visibility(4, 4)
	require.NoError(t, err)
	assert.Equal(t, Flagged, vis)
}

func TestClickWithoutMinesRevealsAll(t *testing.T) {
	g, err := New(3, 3, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	require.NoError(t, g.PlaceMines(0))

	res, err := g.Click(1, 1)
	require.NoError(t, err)
	assert.Len(t, res.Cells, 9)
	for _, cell := range g.View().Grid {
		assert.Equal(t, CellView{Kind: CellRevealed}, cell)
	}
	assert.Equal(t, Won, g.Status(), "no mines and no flags")
}

func TestPlaceMinesKeepsFlagCounter(t *testing.T) {
	g, err := New(4, 4, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	_, err = g.Flag(1, 1)
	require.NoError(t, err)
	require.NoError(t, g.PlaceMines(5))
	assert.Equal(t, 4, g.RemainingFlags())
}

func TestChord(t *testing.T) {
	g := gameWith(t, 4, 4, Point{0, 0}, Point{3, 3})
	res, err := g.Click(1, 1)
	require.NoError(t, err)
	require.Equal(t, 1, res.Adjacency)

	res, err = g.Chord(1, 1)
	require.NoError(t, err)
	assert.Empty(t, res.Cells, "no flags around yet")

	_, err = g.Flag(0, 0)
	require.NoError(t, err)
	res, err = g.Chord(1, 1)
	require.NoError(t, err)
	assert.False(t, res.HitMine)
	assert.NotEmpty(t, res.Cells)
	assert.Equal(t, Playing, g.Status())

	for _, p := range []Point{{1, 0}, {2, 0}, {0, 1}, {2, 1}, {0, 2}, {1, 2}, {2, 2}} {
		v, err := g.Visibility(p.X, p.Y)
		require.NoError(t, err)
		assert.Equal(t, Revealed, v, p)
	}
	v, err := g.Visibility(3, 3)
	require.NoError(t, err)
	assert.Equal(t, Hidden, v)

	_, err = g.Chord(3, 3)
	assert.ErrorIs(t, err, ErrBlocked)
	_, err = g.Chord(0, 0)
	assert.ErrorIs(t, err, ErrBlocked)
}

func TestChordWrongFlag(t *testing.T) {
	g := gameWith(t, 4, 4, Point{0, 0}, Point{3, 3})
	_, err := g.Click(1, 1)
	require.NoError(t, err)
	_, err = g.Flag(1, 0)
	require.NoError(t, err)

	res, err := g.Chord(1, 1)
	require.NoError(t, err)
	assert.True(t, res.HitMine)
	assert.Equal(t, Lost, g.Status())

	view := g.View()
	assert.Equal(t, CellExploded, view.At(0, 0).Kind)
	assert.Equal(t, CellWrongFlag, view.At(1, 0).Kind)
	assert.Equal(t, CellMine, view.At(3, 3).Kind)
}

func TestForfeit(t *testing.T) {
	g := gameWith(t, 3, 3, Point{0, 0})
	require.NoError(t, g.Forfeit())
	assert.Equal(t, Lost, g.Status())
	assert.Equal(t, CellMine, g.View().At(0, 0).Kind)
	assert.ErrorIs(t, g.Forfeit(), ErrGameOver)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "playing", Playing.String())
	assert.Equal(t, "won", Won.String())
	assert.Equal(t, "lost", Lost.String())
	assert.False(t, Playing.Over())
	assert.True(t, Won.Over())
	assert.True(t, Lost.Over())
}
