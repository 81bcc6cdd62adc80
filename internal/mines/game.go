package mines

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

type Status uint8

const (
	Playing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// [Status] implements [encoding.TextMarshaler]
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Over reports whether s is terminal.
func (s Status) Over() bool {
	return s == Won || s == Lost
}

// Game drives one board through a single-player game. It is not safe for
// concurrent use.
type Game struct {
	board     *Board
	rnd       *rand.Rand
	status    Status
	mineCount int
	remaining int
	started   bool
	exploded  Point
	hit       bool
}

// New returns a game on an empty, fully hidden width x height board.
func New(width, height int, r *rand.Rand) (*Game, error) {
	board, err := NewBoard(width, height)
	if err != nil {
		return nil, err
	}
	return &Game{board: board, rnd: r}, nil
}

// NewGame validates params and returns a game with its mines placed.
func NewGame(params GameParams, r *rand.Rand) (*Game, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	g, err := New(params.Width, params.Height, r)
	if err != nil {
		return nil, err
	}
	if err := g.PlaceMines(params.MineCount); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) checkPlacement() error {
	if g.status.Over() {
		return ErrGameOver
	}
	if g.started {
		return ErrAlreadyStarted
	}
	return nil
}

// PlaceMines scatters count mines at random. It must run before the first
// click.
func (g *Game) PlaceMines(count int) error {
	if err := g.checkPlacement(); err != nil {
		return err
	}
	if err := g.board.PlaceMines(count, g.rnd); err != nil {
		return err
	}
	g.resetCounters()
	return nil
}

// PlaceMinesAt puts mines exactly at points. It must run before the first
// click.
func (g *Game) PlaceMinesAt(points ...Point) error {
	if err := g.checkPlacement(); err != nil {
		return err
	}
	if err := g.board.PlaceMinesAt(points...); err != nil {
		return err
	}
	g.resetCounters()
	return nil
}

func (g *Game) resetCounters() {
	g.mineCount = g.board.MineCount()
	g.remaining = g.mineCount - g.board.FlagCount()
}

// FirstClick clears x,y and its neighbors of mines, then opens x,y. It is only
// accepted before any other cell has been opened.
func (g *Game) FirstClick(x, y int) (res Reveal, err error) {
	defer recoverAssertion(&err)

	if g.status.Over() {
		return Reveal{}, ErrGameOver
	}
	if g.started {
		return Reveal{}, ErrAlreadyStarted
	}
	v, err := g.board.Visibility(x, y)
	if err != nil {
		return Reveal{}, err
	}
	if v != Hidden {
		return Reveal{}, fmt.Errorf("%w: %d:%d is %s", ErrBlocked, x, y, v)
	}
	if err := g.board.EnsureFirstClickSafe(x, y, g.rnd); err != nil {
		return Reveal{}, err
	}
	return g.open(x, y)
}

// Click opens x,y. Opening a mine loses the game.
func (g *Game) Click(x, y int) (Reveal, error) {
	if g.status.Over() {
		return Reveal{}, ErrGameOver
	}
	return g.open(x, y)
}

func (g *Game) open(x, y int) (Reveal, error) {
	res, err := g.board.Open(x, y)
	if err != nil {
		return res, err
	}
	g.started = true
	if res.HitMine {
		g.lose(Point{x, y})
		return res, nil
	}
	g.evaluate()
	return res, nil
}

// Flag toggles the flag on x,y and returns the cell's new visibility:
// [Flagged] or [Hidden].
func (g *Game) Flag(x, y int) (Visibility, error) {
	if g.status.Over() {
		return Hidden, ErrGameOver
	}
	v, err := g.board.ToggleFlag(x, y)
	if err != nil {
		return v, err
	}
	if v == Flagged {
		g.remaining--
	} else {
		g.remaining++
	}
	g.evaluate()
	return v, nil
}

// Chord opens every hidden neighbor of the revealed cell x,y once as many
// neighbors are flagged as the cell has adjacent mines. Otherwise it does
// nothing.
func (g *Game) Chord(x, y int) (Reveal, error) {
	if g.status.Over() {
		return Reveal{}, ErrGameOver
	}
	v, err := g.board.Visibility(x, y)
	if err != nil {
		return Reveal{}, err
	}
	if v != Revealed {
		return Reveal{}, fmt.Errorf("%w: %d:%d is %s", ErrBlocked, x, y, v)
	}

	adjacency := g.board.AdjacencyCount(x, y)
	flagged := 0
	hidden := make([]Point, 0, 8)
	for p := range g.board.Neighbors8(x, y) {
		switch g.board.visibility[g.board.index(p.X, p.Y)] {
		case Flagged:
			flagged++
		case Hidden:
			hidden = append(hidden, p)
		}
	}
	res := Reveal{Adjacency: adjacency}
	if flagged != adjacency {
		return res, nil
	}

	for _, p := range hidden {
		// An earlier neighbor's cascade may already have opened p.
		if g.board.visibility[g.board.index(p.X, p.Y)] != Hidden {
			continue
		}
		r, err := g.board.Open(p.X, p.Y)
		if err != nil {
			return res, err
		}
		res.Cells = append(res.Cells, r.Cells...)
		if r.HitMine {
			res.HitMine = true
			g.lose(p)
			return res, nil
		}
	}
	g.evaluate()
	return res, nil
}

// Forfeit gives the game up.
func (g *Game) Forfeit() error {
	if g.status.Over() {
		return ErrGameOver
	}
	g.status = Lost
	Log.WithField("board", g.board.String()).Debug("game forfeited")
	return nil
}

func (g *Game) lose(at Point) {
	g.status = Lost
	g.exploded, g.hit = at, true
	Log.WithFields(logrus.Fields{
		"board": g.board.String(),
		"at":    at.String(),
	}).Debug("mine hit")
}

// evaluate wins the game once the flagged cells are exactly the mines.
func (g *Game) evaluate() {
	if g.status != Playing {
		return
	}
	if g.board.FlagsMatchMines() {
		g.status = Won
		Log.WithField("board", g.board.String()).Debug("game won")
	}
}

func (g *Game) Status() Status      { return g.status }
func (g *Game) Width() int          { return g.board.width }
func (g *Game) Height() int         { return g.board.height }
func (g *Game) MineCount() int      { return g.mineCount }
func (g *Game) RemainingFlags() int { return g.remaining }
func (g *Game) Started() bool       { return g.started }

func (g *Game) Params() GameParams {
	return GameParams{Width: g.board.width, Height: g.board.height, MineCount: g.mineCount}
}

func (g *Game) Content(x, y int) (CellContent, error) { return g.board.Content(x, y) }

func (g *Game) Visibility(x, y int) (Visibility, error) { return g.board.Visibility(x, y) }

func (g *Game) AdjacencyCount(x, y int) (int, error) {
	if err := g.board.checkBounds(x, y); err != nil {
		return 0, err
	}
	return g.board.AdjacencyCount(x, y), nil
}
