// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Supported datastore drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBDriver      string `env:"AVENRA_DB_DRIVER" envDefault:"sqlite"`
	DBPath        string `env:"AVENRA_DB_PATH" envDefault:"./data/avenra.db"`
	DBDSN         string `env:"AVENRA_DB_DSN"` // MySQL DSN for the managed datastore
	SessionSecret string `env:"AVENRA_SESSION_SECRET,required"`
	ServerHost    string `env:"AVENRA_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"AVENRA_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"AVENRA_ENV" envDefault:"development"`
	LogLevel      string `env:"AVENRA_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"AVENRA_UPLOADS_DIR" envDefault:"./uploads"`
	SiteURL       string `env:"AVENRA_SITE_URL" envDefault:"http://localhost:8080"`

	// ContactWebhookURL is the optional email relay endpoint for contact
	// form submissions. When empty, submissions are stored but not relayed.
	ContactWebhookURL string `env:"AVENRA_CONTACT_WEBHOOK_URL"`

	// DoSeed enables seeding of the default admin user and sample content.
	DoSeed bool `env:"AVENRA_DO_SEED" envDefault:"false"`
}

// IsDevelopment returns true if the application runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// MinSessionSecretLength is the minimum required length for the session
// secret used to sign session tokens.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("AVENRA_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("AVENRA_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	switch cfg.DBDriver {
	case DriverSQLite:
		if cfg.DBPath == "" {
			return nil, fmt.Errorf("AVENRA_DB_PATH is required for the sqlite driver")
		}
	case DriverMySQL:
		// Missing datastore credentials fail here, before any request can
		// reach a handler that would need them.
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("AVENRA_DB_DSN is required for the mysql driver")
		}
	default:
		return nil, fmt.Errorf("unsupported AVENRA_DB_DRIVER %q (use %q or %q)",
			cfg.DBDriver, DriverSQLite, DriverMySQL)
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("AVENRA_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
