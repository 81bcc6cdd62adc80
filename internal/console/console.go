// Package console runs a game as a line-oriented terminal session.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/vancomm/minesweeper-engine/internal/command"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type Outcome int

const (
	Won Outcome = iota
	Lost
	Quit
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Quit:
		return "quit"
	default:
		return "Outcome(" + strconv.Itoa(int(o)) + ")"
	}
}

// ExitCode maps o to the process exit status.
func (o Outcome) ExitCode() int {
	switch o {
	case Won:
		return 0
	case Lost:
		return 1
	default:
		return 2
	}
}

type styles struct {
	hidden, flag, mine, wrong, axis, number lipgloss.Style
	counts                                   [9]lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	s := styles{
		hidden: r.NewStyle().Faint(true),
		flag:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		mine:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		wrong:  r.NewStyle().Foreground(lipgloss.Color("3")).Strikethrough(true),
		axis:   r.NewStyle().Faint(true),
		number: r.NewStyle(),
	}
	colors := []string{"8", "12", "10", "9", "4", "1", "6", "0", "7"}
	for i, c := range colors {
		s.counts[i] = r.NewStyle().Foreground(lipgloss.Color(c))
	}
	return s
}

type Console struct {
	in     *bufio.Scanner
	out    io.Writer
	log    *logrus.Logger
	clear  bool
	styles styles
}

// New returns a console reading commands from in and drawing to out. The
// screen is cleared between turns only when out is a terminal.
func New(in io.Reader, out io.Writer, logger *logrus.Logger) *Console {
	tty := false
	if f, ok := out.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}
	return &Console{
		in:     bufio.NewScanner(in),
		out:    out,
		log:    logger,
		clear:  tty,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

// Run plays g until it is won, lost, or the player quits. Coordinates typed
// by the player start at 1.
func (c *Console) Run(g *mines.Game) (Outcome, error) {
	message := command.Usage
	for {
		c.draw(g.View())

		switch g.Status() {
		case mines.Won:
			fmt.Fprintln(c.out, "You won!")
			return Won, nil
		case mines.Lost:
			fmt.Fprintln(c.out, "Boom. You lost.")
			return Lost, nil
		}

		if message != "" {
			fmt.Fprintln(c.out, message)
			message = ""
		}
		fmt.Fprint(c.out, "> ")

		if !c.in.Scan() {
			fmt.Fprintln(c.out)
			if err := c.in.Err(); err != nil {
				return Quit, fmt.Errorf("unable to read command: %w", err)
			}
			return Quit, nil
		}
		line := c.in.Text()

		cmd, err := command.Parse(line, 1)
		if errors.Is(err, command.ErrEmpty) {
			continue
		}
		if err != nil {
			message = err.Error()
			continue
		}

		switch cmd.Kind {
		case command.Quit:
			return Quit, nil
		case command.Help:
			message = command.Usage
			continue
		}

		if err := command.Execute(g, cmd); err != nil {
			c.log.WithFields(logrus.Fields{
				"command": line,
				"error":   err,
			}).Debug("command rejected")
			message = describe(err)
		}
	}
}

func describe(err error) string {
	switch {
	case errors.Is(err, mines.ErrOutOfBounds):
		return "That cell is off the board."
	case errors.Is(err, mines.ErrBlocked):
		return "That cell is flagged or already open."
	case errors.Is(err, mines.ErrRevealed):
		return "An open cell cannot be flagged."
	default:
		return err.Error()
	}
}

func (c *Console) draw(v mines.View) {
	if c.clear {
		fmt.Fprint(c.out, "\x1bc")
	}
	fmt.Fprint(c.out, c.render(v))
}

func (c *Console) render(v mines.View) string {
	var b strings.Builder
	w := len(strconv.Itoa(max(v.Width, v.Height)))
	pad := func(s string) string {
		return strings.Repeat(" ", w-len(s)) + s
	}

	b.WriteString(strings.Repeat(" ", w+1))
	for x := range v.Width {
		b.WriteString(" " + c.styles.axis.Render(pad(strconv.Itoa(x+1))))
	}
	b.WriteByte('\n')

	for y := range v.Height {
		b.WriteString(c.styles.axis.Render(pad(strconv.Itoa(y+1))) + " ")
		for x := range v.Width {
			cell := v.At(x, y)
			b.WriteString(" " + strings.Repeat(" ", w-1) + c.style(cell).Render(cell.String()))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "mines left: %d\n", v.RemainingFlags)
	return b.String()
}

func (c *Console) style(cell mines.CellView) lipgloss.Style {
	switch cell.Kind {
	case mines.CellHidden:
		return c.styles.hidden
	case mines.CellFlagged, mines.CellCorrectFlag:
		return c.styles.flag
	case mines.CellMine, mines.CellExploded:
		return c.styles.mine
	case mines.CellWrongFlag:
		return c.styles.wrong
	case mines.CellRevealed:
		return c.styles.counts[cell.Adjacency]
	default:
		return c.styles.number
	}
}
