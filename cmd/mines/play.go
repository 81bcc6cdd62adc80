package main

import (
	"hash/maphash"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-engine/internal/console"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var (
	flagWidth    int
	flagHeight   int
	flagMines    int
	flagBoard    string
	flagRandSeed uint64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the terminal",
	Long: `Start a game in the terminal. Board size defaults to the config.

Commands:
  o X Y   open a cell
  f X Y   flag or unflag a cell
  c X Y   open the neighbors of a satisfied number
  g       show the board
  h       show help
  q       quit

Exit status is 0 for a win, 1 for a loss, 2 for quitting, 3 on error.

Examples:
  mines play
  mines play --board 16:16:40
  mines play --width 8 --height 8 --mines 10 --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagWidth, "width", 0, "Board width")
	playCmd.Flags().IntVar(&flagHeight, "height", 0, "Board height")
	playCmd.Flags().IntVar(&flagMines, "mines", -1, "Number of mines")
	playCmd.Flags().StringVar(&flagBoard, "board", "", "Board as width:height:mines")
	playCmd.Flags().Uint64Var(&flagRandSeed, "seed", 0, "RNG seed (0 = random)")
}

func playParams(cmd *cobra.Command, defaults mines.GameParams) (mines.GameParams, error) {
	params := defaults
	if flagBoard != "" {
		parsed, err := mines.ParseSeed(flagBoard)
		if err != nil {
			return params, err
		}
		params = *parsed
	}
	if cmd.Flags().Changed("width") {
		params.Width = flagWidth
	}
	if cmd.Flags().Changed("height") {
		params.Height = flagHeight
	}
	if cmd.Flags().Changed("mines") {
		params.MineCount = flagMines
	}
	return params, params.Validate()
}

func playRand() *rand.Rand {
	if flagRandSeed != 0 {
		return rand.New(rand.NewPCG(flagRandSeed, flagRandSeed))
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func runPlay(cmd *cobra.Command, args []string) error {
	c, log, err := setup()
	if err != nil {
		return err
	}

	params, err := playParams(cmd, c.Game.Params())
	if err != nil {
		return err
	}
	g, err := mines.NewGame(params, playRand())
	if err != nil {
		return err
	}
	log.WithField("game", params.String()).Debug("starting console game")

	outcome, err := console.New(os.Stdin, os.Stdout, log).Run(g)
	if err != nil {
		return err
	}
	exitCode = outcome.ExitCode()
	return nil
}
