// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// HashKey signs resolve requests with the HashSHA256 header.
	HashKey string
	// LogLevel is the minimum log level.
	LogLevel string
}

// ClientAdapter holds the settings of the client transport.
type ClientAdapter struct {
	HTTPAddress    string
	RequestTimeout time.Duration
	AccessToken    string
}

// ClientDB contains the local state store settings.
type ClientDB struct {
	// DSN is the SQLite file path.
	DSN string
}

// ClientStorage groups client storage settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientWorkers contains the sync scheduler settings.
type ClientWorkers struct {
	ForegroundInterval time.Duration
	BackgroundInterval time.Duration
	Flex               time.Duration
	MaxRetries         uint64
	BackoffBase        time.Duration
	StartInBackground  bool
}

// ClientRealtime contains the realtime subscriber settings.
type ClientRealtime struct {
	Enabled        bool
	ReconnectDelay time.Duration
}

// ClientConfig is the client view of [StructuredConfig].
type ClientConfig struct {
	App      ClientApp
	Adapter  ClientAdapter
	Storage  ClientStorage
	Workers  ClientWorkers
	Realtime ClientRealtime
}

// GetClientConfig builds and validates the client configuration from the
// same sources as [GetStructuredConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := cfg.ClientView()
	if err = clientCfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}

	return clientCfg, nil
}

// ClientView maps the fields relevant to the client agent.
func (cfg *StructuredConfig) ClientView() *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			HashKey:  cfg.App.HashKey,
			LogLevel: cfg.App.LogLevel,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			AccessToken:    cfg.Adapter.AccessToken,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.Local.DSN},
		},
		Workers: ClientWorkers{
			ForegroundInterval: cfg.Workers.ForegroundInterval,
			BackgroundInterval: cfg.Workers.BackgroundInterval,
			Flex:               cfg.Workers.Flex,
			MaxRetries:         cfg.Workers.MaxRetries,
			BackoffBase:        cfg.Workers.BackoffBase,
			StartInBackground:  cfg.Workers.StartInBackground,
		},
		Realtime: ClientRealtime{
			Enabled:        !cfg.Realtime.Disabled,
			ReconnectDelay: cfg.Realtime.ReconnectDelay,
		},
	}
}
