// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// MinTokenSecretLength is the minimum required length for the token signing
// secret. HMAC-SHA-256 keys should be at least 32 bytes.
const MinTokenSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath      string `env:"ENSO_DB_PATH" envDefault:"./data/enso.db"`
	TokenSecret string `env:"ENSO_TOKEN_SECRET,required"`
	ServerHost  string `env:"ENSO_SERVER_HOST" envDefault:"localhost"`
	ServerPort  int    `env:"ENSO_SERVER_PORT" envDefault:"8080"`
	Env         string `env:"ENSO_ENV" envDefault:"development"`
	LogLevel    string `env:"ENSO_LOG_LEVEL" envDefault:"info"`

	// Admin provisioning (out-of-band; no HTTP surface creates admins).
	// When both are set and the email does not exist yet, the admin row is
	// created at startup with the password stored as an argon2id hash.
	AdminEmail    string `env:"ENSO_ADMIN_EMAIL"`
	AdminPassword string `env:"ENSO_ADMIN_PASSWORD"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate token secret length
	if len(cfg.TokenSecret) < MinTokenSecretLength {
		return nil, fmt.Errorf("ENSO_TOKEN_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinTokenSecretLength, len(cfg.TokenSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.TokenSecret == weak {
			return nil, fmt.Errorf("ENSO_TOKEN_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.TokenSecret) {
		slog.Warn("ENSO_TOKEN_SECRET has low character diversity; " +
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
