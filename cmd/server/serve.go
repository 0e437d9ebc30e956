package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"simaset/internal/client"
	"simaset/internal/config"
	"simaset/internal/database"
	"simaset/internal/handler"
	"simaset/internal/navigation"
	"simaset/internal/repository"
	"simaset/internal/session"
	"simaset/internal/templates"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(envFiles()...)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	log.Logger = logger

	store, ephemeral, err := session.NewCookieStore(cfg.SessionSecret, cfg.SessionSecure)
	if err != nil {
		return err
	}
	if ephemeral {
		logger.Warn().Msg("SESSION_SECRET is empty, using random keys: sessions will not survive a restart")
	}

	activity, closeDB, err := openActivity(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	tmpl, err := templates.New()
	if err != nil {
		return err
	}

	routes := handler.Routes(handler.Deps{
		API:           client.New(cfg.APIBaseURL, client.WithTimeout(cfg.APITimeout)),
		Sessions:      session.NewManager(store),
		Activity:      activity,
		Templates:     tmpl,
		Menu:          navigation.Default(),
		PageSize:      cfg.PageSize,
		ActivityLimit: cfg.ActivityLimit,
		Logger:        logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           routes,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("api", cfg.APIBaseURL).Msg("server started")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	var logger zerolog.Logger
	if cfg.LogFormat == "json" {
		logger = zerolog.New(os.Stdout)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	return logger.Level(level).With().Timestamp().Caller().Logger()
}

// openActivity keeps the activity log in Postgres when DATABASE_URL is set,
// in memory otherwise.
func openActivity(cfg config.Config) (repository.ActivityRepository, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Info().Msg("DATABASE_URL is empty, keeping activity log in memory")
		return repository.NewMemoryActivityRepository(0), func() {}, nil
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db, database.Up); err != nil {
		db.Close()
		return nil, nil, err
	}
	return repository.NewPostgresActivityRepository(db), func() { db.Close() }, nil
}
