package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-engine/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve games over HTTP and WebSocket",
	Long: `Serve games over HTTP. Games live in memory until they sit idle for
longer than session.ttl.

Routes:
  POST /game?width=&height=&mine_count=&x=&y=      new game, first click at x,y
  GET  /game/{id}                                 fetch a game
  POST /game/{id}/move?move=open|flag|chord&x=&y=  make a move
  POST /game/{id}/forfeit                         give up
  GET  /game/{id}/connect                         WebSocket, one command per line

Examples:
  mines serve
  APP_ADDR=:9000 mines serve --config ./config.yaml`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	c, log, err := setup()
	if err != nil {
		return err
	}
	log.WithFields(c.Fields()).Info("loaded config")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.New(log, c).Start(ctx); err != nil {
		log.WithField("error", err).Error("server stopped")
		return err
	}
	return nil
}
