// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/netip"
	"strings"
	"time"
)

// StructuredConfig is the top-level configuration of the VitaScope server.
// It is populated by merging an optional .env file, environment variables,
// command-line flags, an optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds secrets, token lifetimes and runtime switches.
	App App `envPrefix:"APP_"`

	// Server holds network settings of the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Storage holds the database and the optional Redis settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Mail holds the SMTP relay used for activation and OTP emails.
	Mail Mail `envPrefix:"MAIL_"`

	// Limits holds the per-client rate limits of the login phases.
	Limits Limits `envPrefix:"LIMITS_"`

	// Legacy holds variable names understood by older deployments. They are
	// only used when the structured counterpart is empty.
	Legacy Legacy

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// EnvFilePath is the optional path to a dotenv file. When empty,
	// ".env" in the working directory is loaded if present.
	EnvFilePath string `env:"ENV_FILE"`
}

// App holds application-level configuration values.
type App struct {
	// SecretKey signs session cookies and activation links. Required.
	// Env: APP_SECRET_KEY
	SecretKey string `env:"SECRET_KEY"`

	// Debug enables the /debug/users listing.
	// Env: APP_DEBUG
	Debug bool `env:"DEBUG"`

	// LogLevel is the minimum zerolog level ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// BaseURL is the external origin used in activation links
	// (e.g. "https://vitascope.example.com"). When empty, the origin of the
	// registration request is used.
	// Env: APP_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// OTPTTL is how long an emailed login code stays usable.
	// Env: APP_OTP_TTL
	OTPTTL time.Duration `env:"OTP_TTL"`

	// SessionTTL is the lifetime of a browser session.
	// Env: APP_SESSION_TTL
	SessionTTL time.Duration `env:"SESSION_TTL"`

	// ActivationTTL is the maximum age of an activation link.
	// Env: APP_ACTIVATION_TTL
	ActivationTTL time.Duration `env:"ACTIVATION_TTL"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address the HTTP server listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the handling of a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	// CORSOrigins lists the origins allowed to call the API from a browser.
	// Env: SERVER_CORS_ORIGINS (comma separated)
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	// TrustedProxies lists the proxy addresses or CIDR ranges whose
	// X-Forwarded-For / X-Real-IP headers are believed. Requests from any
	// other peer are identified by their TCP address.
	// Env: SERVER_TRUSTED_PROXIES (comma separated)
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// TrustedProxyPrefixes parses TrustedProxies. A bare address becomes a
// single-host prefix.
func (s Server) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(s.TrustedProxies))
	for _, raw := range s.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.Contains(raw, "/") {
			prefix, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", raw, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", raw, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// Storage groups the configuration of all storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// RedisURL enables Redis-backed sessions and rate limits when set
	// (e.g. "redis://localhost:6379/0").
	// Env: STORAGE_REDIS_URL
	RedisURL string `env:"REDIS_URL"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is either a SQLite file path / URI or a PostgreSQL URL.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Driver names the database/sql driver selected by the DSN.
func (d DB) Driver() string {
	if strings.HasPrefix(d.DSN, "postgres://") || strings.HasPrefix(d.DSN, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// Supported database drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// Mail holds the SMTP relay settings.
type Mail struct {
	// Server is the SMTP host.
	// Env: MAIL_SERVER
	Server string `env:"SERVER"`

	// Port is the SMTP submission port (STARTTLS).
	// Env: MAIL_PORT
	Port int `env:"PORT"`

	// Address is the sender mailbox and the SMTP username.
	// Env: MAIL_ADDRESS
	Address string `env:"ADDRESS"`

	// Password is the SMTP password.
	// Env: MAIL_PASSWORD
	Password string `env:"PASSWORD"`

	// FromName is the display name of the sender.
	// Env: MAIL_FROM_NAME
	FromName string `env:"FROM_NAME"`
}

// Limits holds the fixed-window rate limits of the login phases.
type Limits struct {
	// Env: LIMITS_LOGIN_MAX
	LoginMax int `env:"LOGIN_MAX"`
	// Env: LIMITS_LOGIN_WINDOW
	LoginWindow time.Duration `env:"LOGIN_WINDOW"`
	// Env: LIMITS_OTP_MAX
	OTPMax int `env:"OTP_MAX"`
	// Env: LIMITS_OTP_WINDOW
	OTPWindow time.Duration `env:"OTP_WINDOW"`
}

// Legacy holds the unprefixed variables of earlier deployments.
type Legacy struct {
	SecretKey     string `env:"SECRET_KEY"`
	EmailAddress  string `env:"EMAIL_ADDRESS"`
	EmailPassword string `env:"EMAIL_PASSWORD"`
}

// GetStructuredConfig loads, merges, and validates the server configuration.
// For every field the first non-zero value wins, in this order:
//  1. Environment variables (including values loaded from the dotenv file)
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

// defaults returns the built-in configuration values.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel:      "debug",
			OTPTTL:        5 * time.Minute,
			SessionTTL:    24 * time.Hour,
			ActivationTTL: time.Hour,
		},
		Server: Server{
			HTTPAddress:     "127.0.0.1:5000",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: Storage{
			DB: DB{DSN: "vitascope.db"},
		},
		Mail: Mail{
			Server:   "smtp.gmail.com",
			Port:     587,
			FromName: "VitaScope",
		},
		Limits: Limits{
			LoginMax:    10,
			LoginWindow: time.Hour,
			OTPMax:      5,
			OTPWindow:   5 * time.Minute,
		},
	}
}

// applyLegacy fills empty structured fields from their legacy names.
func (cfg *StructuredConfig) applyLegacy() {
	if cfg.App.SecretKey == "" {
		cfg.App.SecretKey = cfg.Legacy.SecretKey
	}
	if cfg.Mail.Address == "" {
		cfg.Mail.Address = cfg.Legacy.EmailAddress
	}
	if cfg.Mail.Password == "" {
		cfg.Mail.Password = cfg.Legacy.EmailPassword
	}
}
