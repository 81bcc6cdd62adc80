// Package command parses and runs the one-letter text commands shared by the
// console and the WebSocket endpoint.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type Kind int

const (
	Get Kind = iota
	Open
	Flag
	Chord
	Help
	Quit
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"c": 2,
	"h": 0,
	"q": 0,
}

var commandKinds = map[string]Kind{
	"g": Get,
	"o": Open,
	"f": Flag,
	"c": Chord,
	"h": Help,
	"q": Quit,
}

var (
	ErrEmpty        = errors.New("empty command")
	ErrUnknown      = errors.New("unknown command")
	ErrArgsCount    = errors.New("invalid number of arguments")
	ErrBadArguments = errors.New("arguments must be integers")
)

const Usage = `commands:
  o X Y   open a cell
  f X Y   flag or unflag a cell
  c X Y   open the neighbors of a satisfied number
  g       show the board
  h       show this help
  q       quit`

type Command struct {
	Kind Kind
	X, Y int
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = fmt.Errorf("%w: first argument is %q", ErrBadArguments, twoStrings[0])
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = fmt.Errorf("%w: second argument is %q", ErrBadArguments, twoStrings[1])
		return
	}
	return
}

// Parse reads one command. Coordinates are given relative to origin, so a
// console passing 1 accepts "o 1 1" for the top-left cell.
func Parse(line string, origin int) (Command, error) {
	parts := strings.Fields(strings.ToLower(line))
	if len(parts) == 0 {
		return Command{}, ErrEmpty
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return Command{}, fmt.Errorf("%w %q", ErrUnknown, parts[0])
	}
	if nargs != len(parts)-1 {
		return Command{}, fmt.Errorf("%w: %q takes %d", ErrArgsCount, parts[0], nargs)
	}
	cmd := Command{Kind: commandKinds[parts[0]]}
	if nargs == 2 {
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return Command{}, err
		}
		cmd.X, cmd.Y = x-origin, y-origin
	}
	return cmd, nil
}

// Execute applies cmd to g. The first open of a game goes through
// [mines.Game.FirstClick]. Get, Help and Quit do not touch the game.
func Execute(g *mines.Game, cmd Command) error {
	switch cmd.Kind {
	case Open:
		if !g.Started() {
			_, err := g.FirstClick(cmd.X, cmd.Y)
			return err
		}
		_, err := g.Click(cmd.X, cmd.Y)
		return err
	case Flag:
		_, err := g.Flag(cmd.X, cmd.Y)
		return err
	case Chord:
		_, err := g.Chord(cmd.X, cmd.Y)
		return err
	case Get, Help, Quit:
		return nil
	}
	return ErrUnknown
}

// ParseMove maps an HTTP move name to its command kind.
func ParseMove(s string) (Kind, error) {
	switch s {
	case "open":
		return Open, nil
	case "flag":
		return Flag, nil
	case "chord":
		return Chord, nil
	}
	return 0, fmt.Errorf("%w %q: must be one of open, flag, chord", ErrUnknown, s)
}
