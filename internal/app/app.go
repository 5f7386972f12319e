package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-pad/internal/config"
	"github.com/vancomm/minesweeper-pad/internal/database"
	"github.com/vancomm/minesweeper-pad/internal/handlers"
	"github.com/vancomm/minesweeper-pad/internal/middleware"
	"github.com/vancomm/minesweeper-pad/internal/repository"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	log        *logrus.Logger
	router     *http.ServeMux
	db         *pgxpool.Pool
	scores     repository.HighScoreStore
	sessions   *handlers.Registry
	ws         *config.WebSocket
	migrations fs.FS
}

func New(log *logrus.Logger, migrations fs.FS) *App {
	router := http.NewServeMux()

	app := &App{
		log:        log,
		router:     router,
		migrations: migrations,
	}

	return app
}

// setup connects to Postgres when it is configured. Without a database the
// server still plays, it just does not keep high scores.
func (a *App) setup(ctx context.Context) error {
	if config.DatabaseConfigured() {
		db, migrator, err := database.ConnectAndMigrate(ctx, a.migrations)
		if err != nil {
			return fmt.Errorf("unable to connect to db: %w", err)
		}
		migrator.Close()
		a.db = db
		a.scores = repository.New(db)
	} else {
		a.log.Warn("no database configured, high scores are disabled")
	}

	ttl, err := config.SessionTTL()
	if err != nil {
		return err
	}
	a.sessions = handlers.NewRegistry(ttl)

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}
	a.ws = ws

	a.loadRoutes()
	return nil
}

func (a *App) Handler() http.Handler {
	var h http.Handler = a.router
	if base := config.BasePath(); base != "" {
		h = http.StripPrefix(base, h)
	}
	return middleware.Wrap(
		h,
		middleware.Cors(),
		middleware.Logging(a.log),
	)
}

func (a *App) Start(ctx context.Context) error {
	if err := a.setup(ctx); err != nil {
		return err
	}
	defer a.close()

	port := config.Port()
	server := &http.Server{
		Addr:        port,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
		Handler:     a.Handler(),
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		a.log.WithField("addr", port).Info("server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen and serve: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return eg.Wait()
}

func (a *App) close() {
	a.sessions.Close()
	if a.db != nil {
		a.db.Close()
	}
}
