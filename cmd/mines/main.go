// mines is a minesweeper engine with a terminal client and an HTTP server.
//
// Usage:
//
//	mines play               - Play in the terminal
//	mines serve              - Serve games over HTTP and WebSocket
//
// Global flags:
//
//	--config <path>    - YAML config file (defaults and environment otherwise)
//	--env-file <path>  - dotenv file exported before the environment is read
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/logging"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

const exitError = 3

var (
	flagConfig  string
	flagEnvFile string

	// set by subcommands that end with a specific exit code
	exitCode int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitError)
	}
	os.Exit(exitCode)
}

var rootCmd = &cobra.Command{
	Use:   "mines",
	Short: "Minesweeper in the terminal or over HTTP",
	Long: `mines plays single-player minesweeper.

Available commands:
  play     - Play a game in the terminal
  serve    - Serve games over HTTP and WebSocket

Examples:
  mines play
  mines play --width 30 --height 16 --mines 99
  mines serve --config ./config.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "Path to a dotenv file loaded before the environment is read")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads the config and builds the logger shared with the engine.
func setup() (*config.Config, *logrus.Logger, error) {
	if flagEnvFile != "" {
		if err := config.LoadEnvFile(flagEnvFile); err != nil {
			return nil, nil, err
		}
	}
	c, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(c, os.Stderr)
	if err != nil {
		return nil, nil, err
	}
	mines.Log = log
	return c, log, nil
}
