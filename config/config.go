package config

import (
	"time"

	"github.com/go-pg/pg/v10"

	"github.com/daniilsolovey/verein-site/internal/mailrelay"
)

type Config struct {
	Database pg.Options
	App      struct {
		Host string
		Port int
		// PublicURL prefixes stored object references.
		PublicURL    string
		Timezone     string
		CookieSecure bool
		// InstanceTTL is the idle time after which form state is dropped.
		InstanceTTL time.Duration
	}
	Auth struct {
		JWTSecret  string
		BcryptCost int
		SessionTTL time.Duration
	}
	Relay struct {
		URL     string
		Key     string
		Timeout time.Duration
	}
	Mail struct {
		Host string
		Port int
		// Organization receives the form notifications.
		Organization string
		Signature    string
	}
	SMTP mailrelay.SMTPConfig
}

// Location resolves App.Timezone, defaulting to Europe/Berlin.
func (c *Config) Location() (*time.Location, error) {
	name := c.App.Timezone
	if name == "" {
		name = "Europe/Berlin"
	}
	return time.LoadLocation(name)
}
