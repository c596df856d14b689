package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/namsral/flag"

	"github.com/daniilsolovey/verein-site/config"
	"github.com/daniilsolovey/verein-site/internal/mailrelay"
)

var (
	flConfig       = flag.String("config", "config.toml", "path to TOML configuration file")
	flDebug        = flag.Bool("debug", false, "enable debug mode")
	flSMTPPassword = flag.String("smtp-password", "", "overrides SMTP.Password (SMTP_PASSWORD)")
	cfg            config.Config
	lg             *slog.Logger
)

func main() {
	flag.Parse()

	lg = newLogger(*flDebug)

	if _, err := toml.DecodeFile(*flConfig, &cfg); err != nil {
		exitOnError(err)
	}
	if *flSMTPPassword != "" {
		cfg.SMTP.Password = *flSMTPPassword
	}
	if cfg.Mail.Organization == "" {
		exitOnError(errors.New("mail organization address is not configured"))
	}

	relay := mailrelay.New(mailrelay.NewSMTPSender(cfg.SMTP), mailrelay.Config{
		Organization: cfg.Mail.Organization,
		Signature:    cfg.Mail.Signature,
	}, lg)
	srv := mailrelay.NewServer(relay, lg)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Mail.Host, cfg.Mail.Port)
		lg.Info("mail relay started", "addr", addr, "smtpHost", cfg.SMTP.Host)
		if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("mail relay run failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	lg.Info("mail relay stopping")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		lg.Error("mail relay graceful shutdown failed", "error", err)
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
		lg.Error("mail relay init failed", "error", err)
		os.Exit(1)
	}
}
