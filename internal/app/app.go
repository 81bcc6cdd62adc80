package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	log    *logrus.Logger
	config *config.Config
	router *http.ServeMux
	store  *session.Store
	ws     *config.WebSocket
}

func New(log *logrus.Logger, c *config.Config) *App {
	app := &App{
		log:    log,
		config: c,
		router: http.NewServeMux(),
		store:  session.NewStore(),
		ws:     config.NewWebSocket(),
	}
	app.loadRoutes()
	return app
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Recover(a.log),
		middleware.Cors(),
		middleware.Logging(a.log),
	)
}

// Start serves on the configured address until ctx is done.
func (a *App) Start(ctx context.Context) error {
	l, err := net.Listen("tcp", a.config.Addr)
	if err != nil {
		return fmt.Errorf("unable to listen on %s: %w", a.config.Addr, err)
	}
	return a.Serve(ctx, l)
}

// Serve accepts connections on l and sweeps idle sessions until ctx is done,
// then shuts the server down gracefully.
func (a *App) Serve(ctx context.Context, l net.Listener) error {
	server := &http.Server{
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.WithField("addr", l.Addr().String()).Info("server listening")
		if err := server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return a.store.RunSweeper(gCtx,
			a.config.Session.SweepInterval.Duration,
			a.config.Session.TTL.Duration,
			a.log,
		)
	})

	g.Go(func() error {
		<-gCtx.Done()
		a.log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(ctx)
	})

	return g.Wait()
}
