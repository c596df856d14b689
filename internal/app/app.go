package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/verein-site/config"
	"github.com/daniilsolovey/verein-site/internal/auth"
	"github.com/daniilsolovey/verein-site/internal/db"
	"github.com/daniilsolovey/verein-site/internal/forms"
	"github.com/daniilsolovey/verein-site/internal/mailrelay"
	"github.com/daniilsolovey/verein-site/internal/metrics"
	"github.com/daniilsolovey/verein-site/internal/rest"
	"github.com/daniilsolovey/verein-site/internal/rpc"
	"github.com/daniilsolovey/verein-site/internal/session"
	"github.com/daniilsolovey/verein-site/internal/submission"
	"github.com/daniilsolovey/verein-site/internal/verein"
)

const sweepInterval = time.Minute

type App struct {
	DB       *db.Repository
	Logger   *slog.Logger
	Echo     *echo.Echo
	Config   *config.Config
	Registry *session.Registry

	unbind func()
}

func New(cfg *config.Config, dbConnect *pg.DB, logger *slog.Logger) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	repo := db.New(dbConnect)
	manager := verein.NewManager(repo, cfg.App.PublicURL)

	authService := auth.NewService(manager, auth.Config{
		Secret:     cfg.Auth.JWTSecret,
		BcryptCost: cfg.Auth.BcryptCost,
		SessionTTL: cfg.Auth.SessionTTL,
	}, logger)

	registry := session.NewRegistry(cfg.App.InstanceTTL, logger)
	unbind := registry.Bind(authService)

	observer := func(form string, s submission.State) {
		metrics.ObserveSubmission(form, s.Status.String())
	}

	relay := mailrelay.NewClient(cfg.Relay.URL, cfg.Relay.Key, cfg.Relay.Timeout)

	handler := rest.NewHandler(rest.Deps{
		Content:      manager,
		Auth:         authService,
		Forms:        forms.NewService(relay, authService, manager, registry, logger, observer),
		Registry:     registry,
		Ping:         repo.Ping,
		Location:     loc,
		Observer:     observer,
		RPC:          rpc.New(logger, manager, loc),
		CookieSecure: cfg.App.CookieSecure,
	}, logger)

	return &App{
		DB:       repo,
		Logger:   logger,
		Echo:     handler.RegisterRoutes(),
		Config:   cfg,
		Registry: registry,
		unbind:   unbind,
	}, nil
}

// Run serves HTTP and sweeps idle form state until the server stops.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.Registry.Run(ctx, sweepInterval)

	addr := fmt.Sprintf("%s:%d", a.Config.App.Host, a.Config.App.Port)
	a.Logger.Info("service started", "addr", addr)

	return a.Echo.Start(addr)
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	a.unbind()

	err := a.Echo.Shutdown(ctx)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
