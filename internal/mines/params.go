package mines

import (
	"fmt"
	"strings"
)

// GameParams are the dimensions and mine count of a game.
type GameParams struct {
	Width, Height, MineCount int
}

func (p GameParams) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

func (p GameParams) Cells() int {
	return p.Width * p.Height
}

// Validate rejects boards where the first click could not be made safe: at
// most Width*Height-9 mines are allowed.
func (p GameParams) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w (got %dx%d)", ErrInvalidDimensions, p.Width, p.Height)
	}
	if p.MineCount < 0 {
		return fmt.Errorf("%w (got %d)", ErrInvalidMineCount, p.MineCount)
	}
	if limit := p.Cells() - 9; p.MineCount > limit {
		return fmt.Errorf("%w: %d mines, at most %d allowed on %dx%d",
			ErrTooManyMines, p.MineCount, max(limit, 0), p.Width, p.Height)
	}
	return nil
}

func (p GameParams) ValidatePosition(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.MineCount)
}

func (p GameParams) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Width, p.Height, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Width, &p.Height, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (seed = "%s", n = %d, err = %w)`,
			seed, n, err,
		)
	}
	return p, nil
}
