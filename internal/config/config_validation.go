// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks the settings the server cannot start without.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}

// validate checks the settings the client agent cannot start without.
func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, ":memory:") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.AccessToken == "" {
		return ErrInvalidAdapterConfigs
	}

	w := cfg.Workers
	if w.ForegroundInterval <= 0 || w.BackgroundInterval <= 0 || w.Flex < 0 ||
		w.Flex >= w.ForegroundInterval || w.BackoffBase <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
