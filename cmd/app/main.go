package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/go-pg/pg/v10"
	"github.com/namsral/flag"

	"github.com/daniilsolovey/verein-site/config"
	_ "github.com/daniilsolovey/verein-site/docs"
	"github.com/daniilsolovey/verein-site/internal/app"
	"github.com/daniilsolovey/verein-site/internal/db"
)

var (
	flConfig    = flag.String("config", "config.toml", "path to TOML configuration file")
	flDebug     = flag.Bool("debug", false, "enable debug mode")
	flJWTSecret = flag.String("jwt-secret", "", "overrides Auth.JWTSecret (JWT_SECRET)")
	cfg         config.Config
	lg          *slog.Logger
)

// @title Verein Site API
// @version 1.0
// @description Posts, authoring and form submissions of the association site
// @host localhost:3000
// @BasePath /

func main() {
	flag.Parse()

	lg = newLogger(*flDebug)

	_, err := toml.DecodeFile(*flConfig, &cfg)
	if err != nil {
		exitOnError(err)
	}
	if *flJWTSecret != "" {
		cfg.Auth.JWTSecret = *flJWTSecret
	}
	if cfg.Auth.JWTSecret == "" {
		exitOnError(errors.New("jwt secret is not configured"))
	}

	ctx := context.Background()

	if err := db.Migrate(ctx, db.URL(&cfg.Database)); err != nil {
		exitOnError(err)
	}

	pgdb := pg.Connect(&cfg.Database)
	pgdb.AddQueryHook(db.NewQueryHook(lg))
	if err := pgdb.Ping(ctx); err != nil {
		pgdb.Close()
		exitOnError(err)
	}
	defer pgdb.Close()

	service, err := app.New(&cfg, pgdb, lg)
	if err != nil {
		exitOnError(err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		err := service.Run(ctx)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("service run failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	lg.Info("service stopping")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = service.GracefulShutdown(shutdownCtx)
	if err != nil {
		lg.Error("service graceful shutdown failed", "error", err)
	}
}

func newLogger(debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func exitOnError(err error) {
	if err != nil {
		lg.Error("app init failed", "error", err)
		os.Exit(1)
	}
}
