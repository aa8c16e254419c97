// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"time"
)

// StructuredConfig is the configuration shared by the server and the client
// agent. It is populated by merging environment variables, command-line
// flags, an optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix - prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       - direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token validation keys, the request integrity key, the
	// reported version and the log level.
	App App `envPrefix:"APP_"`

	// Storage holds the server database and the client local store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the HTTP listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's view of the server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the client sync scheduler cadence and retry policy.
	Workers Workers `envPrefix:"WORKERS_"`

	// Realtime holds the event fanout settings of both sides.
	Realtime Realtime `envPrefix:"REALTIME_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// TokenSignKey verifies bearer token signatures.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim of bearer tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// HashKey is the HMAC key of the HashSHA256 request integrity header.
	// Integrity checking is disabled when empty.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version is exposed via /api/version/.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is the minimum zerolog level.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the persistence settings of both binaries.
type Storage struct {
	// DB is the server PostgreSQL database.
	DB DB `envPrefix:"DB_"`

	// Local is the client SQLite state store.
	Local Local `envPrefix:"LOCAL_"`
}

// DB holds connection settings for the server database.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Local holds the client state store settings.
type Local struct {
	// DSN is the SQLite database file path.
	// Env: STORAGE_LOCAL_DSN
	DSN string `env:"DSN"`
}

// Server holds the inbound HTTP settings.
type Server struct {
	// HTTPAddress is the "host:port" listen address.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the handling of one non-streaming request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the client's outbound settings.
type Adapter struct {
	// HTTPAddress is the server base URL or "host:port".
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// AccessToken is the bearer token issued to this device session by the
	// identity provider.
	// Env: ADAPTER_ACCESS_TOKEN
	AccessToken string `env:"ACCESS_TOKEN"`
}

// Workers holds the sync scheduler settings.
type Workers struct {
	// ForegroundInterval is the cadence while the host app is visible.
	// Env: WORKERS_FOREGROUND_INTERVAL
	ForegroundInterval time.Duration `env:"FOREGROUND_INTERVAL"`

	// BackgroundInterval is the cadence while the host app is hidden.
	// Env: WORKERS_BACKGROUND_INTERVAL
	BackgroundInterval time.Duration `env:"BACKGROUND_INTERVAL"`

	// Flex is the maximum random deviation applied to each interval.
	// Env: WORKERS_FLEX
	Flex time.Duration `env:"FLEX"`

	// MaxRetries caps the backoff retries of one failed cycle.
	// Env: WORKERS_MAX_RETRIES
	MaxRetries uint64 `env:"MAX_RETRIES"`

	// BackoffBase is the first backoff delay; it doubles per retry.
	// Env: WORKERS_BACKOFF_BASE
	BackoffBase time.Duration `env:"BACKOFF_BASE"`

	// StartInBackground starts the scheduler with the background cadence.
	// Env: WORKERS_START_IN_BACKGROUND
	StartInBackground bool `env:"START_IN_BACKGROUND"`
}

// Realtime holds the event fanout settings.
type Realtime struct {
	// SubscriberBuffer is the per-connection outbound queue length on the
	// server. Events beyond it are dropped for that subscriber.
	// Env: REALTIME_SUBSCRIBER_BUFFER
	SubscriberBuffer int `env:"SUBSCRIBER_BUFFER"`

	// ReconnectDelay is the first client pause between realtime reconnects.
	// It doubles per failed attempt and starts over after a connect.
	// Env: REALTIME_RECONNECT_DELAY
	ReconnectDelay time.Duration `env:"RECONNECT_DELAY"`

	// Disabled turns the client realtime subscriber off.
	// Env: REALTIME_DISABLED
	Disabled bool `env:"DISABLED"`
}

// Defaults applied to every field left empty by all other sources.
const (
	DefaultHTTPAddress        = "localhost:8080"
	DefaultRequestTimeout     = 15 * time.Second
	DefaultLocalDSN           = "grocery-sync.db"
	DefaultForegroundInterval = 15 * time.Second
	DefaultBackgroundInterval = 30 * time.Second
	DefaultFlex               = 5 * time.Second
	DefaultMaxRetries         = 3
	DefaultBackoffBase        = time.Second
	DefaultSubscriberBuffer   = 16
	DefaultReconnectDelay     = 5 * time.Second
	DefaultLogLevel           = "debug"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{LogLevel: DefaultLogLevel},
		Storage: Storage{
			Local: Local{DSN: DefaultLocalDSN},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Workers: Workers{
			ForegroundInterval: DefaultForegroundInterval,
			BackgroundInterval: DefaultBackgroundInterval,
			Flex:               DefaultFlex,
			MaxRetries:         DefaultMaxRetries,
			BackoffBase:        DefaultBackoffBase,
		},
		Realtime: Realtime{
			SubscriberBuffer: DefaultSubscriberBuffer,
			ReconnectDelay:   DefaultReconnectDelay,
		},
	}
}

// GetStructuredConfig loads, merges and validates the server configuration.
// For every field the first non-empty value wins, in this order:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, err
	}

	if err = cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}

	return cfg, nil
}
