// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_EarlierSourceWins verifies that mergo keeps the first non-empty
// value and only fills gaps from later sources.
func TestBuild_EarlierSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "env"}},
		&StructuredConfig{App: App{Version: "json", TokenIssuer: "json-issuer"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "env", cfg.App.Version)
	assert.Equal(t, "json-issuer", cfg.App.TokenIssuer)
}

func TestWithDefaults_FillsOnlyGaps(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Workers: Workers{ForegroundInterval: time.Second}})

	cfg, err := b.withDefaults().build()
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Workers.ForegroundInterval)
	assert.Equal(t, DefaultBackgroundInterval, cfg.Workers.BackgroundInterval)
	assert.Equal(t, DefaultFlex, cfg.Workers.Flex)
	assert.Equal(t, uint64(DefaultMaxRetries), cfg.Workers.MaxRetries)
	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultSubscriberBuffer, cfg.Realtime.SubscriberBuffer)
}

// ── sources ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("WORKERS_FOREGROUND_INTERVAL", "10s")

	b := newConfigBuilder().withEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, 10*time.Second, b.configs[0].Workers.ForegroundInterval)
}

func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	t.Setenv("WORKERS_MAX_RETRIES", "many")

	b := newConfigBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithFlags_AppendsParsedConfig(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-token", "abc"})

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "abc", b.configs[0].Adapter.AccessToken)
}

func TestWithFlags_SetsErrorOnUnknownFlag(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-unknown"})
	assert.Error(t, b.err)
}

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.Adapter.AccessToken = "json-token"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, "json-token", b.configs[1].Adapter.AccessToken)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})
	b.withJSON()

	assert.Error(t, b.err)
}

// ── validation ────────────────────────────────────────────────────────────────

func validServerConfig() *StructuredConfig {
	return &StructuredConfig{
		App:     App{TokenSignKey: "k", TokenIssuer: "iss"},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/db"}},
		Server:  Server{HTTPAddress: "localhost:8080"},
	}
}

func TestStructuredConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StructuredConfig)
		wantErr error
	}{
		{"valid", func(*StructuredConfig) {}, nil},
		{"no dsn", func(c *StructuredConfig) { c.Storage.DB.DSN = "" }, ErrInvalidStorageConfigs},
		{"no address", func(c *StructuredConfig) { c.Server.HTTPAddress = "" }, ErrInvalidServerConfigs},
		{"no sign key", func(c *StructuredConfig) { c.App.TokenSignKey = "" }, ErrInvalidAppConfigs},
		{"no issuer", func(c *StructuredConfig) { c.App.TokenIssuer = "" }, ErrInvalidAppConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validServerConfig()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClientConfig_Validate(t *testing.T) {
	base := func() *StructuredConfig {
		cfg := defaultConfig()
		cfg.Adapter.AccessToken = "token"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*StructuredConfig)
		wantErr error
	}{
		{"defaults with token", func(*StructuredConfig) {}, nil},
		{"no token", func(c *StructuredConfig) { c.Adapter.AccessToken = "" }, ErrInvalidAdapterConfigs},
		{"memory dsn", func(c *StructuredConfig) { c.Storage.Local.DSN = ":memory:" }, ErrInvalidStorageConfigs},
		{"flex too large", func(c *StructuredConfig) { c.Workers.Flex = c.Workers.ForegroundInterval }, ErrInvalidWorkerConfigs},
		{"zero backoff", func(c *StructuredConfig) { c.Workers.BackoffBase = 0 }, ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.ClientView().validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClientView_MapsFields(t *testing.T) {
	cfg := defaultConfig()
	cfg.Storage.Local.DSN = "/tmp/state.db"
	cfg.Realtime.Disabled = true
	cfg.App.HashKey = "hk"

	view := cfg.ClientView()
	assert.Equal(t, "/tmp/state.db", view.Storage.DB.DSN)
	assert.False(t, view.Realtime.Enabled)
	assert.Equal(t, "hk", view.App.HashKey)
	assert.Equal(t, DefaultForegroundInterval, view.Workers.ForegroundInterval)
	assert.Equal(t, DefaultReconnectDelay, view.Realtime.ReconnectDelay)
}
