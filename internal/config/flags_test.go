// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{"empty address", NetAddress{}, ""},
		{"localhost with port", NetAddress{Host: "localhost", Port: 8080}, "localhost:8080"},
		{"IP address with port", NetAddress{Host: "127.0.0.1", Port: 9090}, "127.0.0.1:9090"},
		{"only port no host", NetAddress{Port: 8080}, ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		host        string
		port        int
	}{
		{"localhost", "localhost:8080", false, "localhost", 8080},
		{"ipv4", "0.0.0.0:80", false, "0.0.0.0", 80},
		{"empty host", ":8080", false, "", 8080},
		{"missing port", "localhost", true, "", 0},
		{"non numeric port", "localhost:http", true, "", 0},
		{"zero port", "localhost:0", true, "", 0},
		{"port out of range", "localhost:70000", true, "", 0},
		{"hostname is rejected", "example.com:80", true, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.host, addr.Host)
			assert.Equal(t, tt.port, addr.Port)
		})
	}
}

func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := ParseFlags([]string{
		"-a", "127.0.0.1:9000",
		"-d", "postgres://db",
		"-config", "/etc/grocery.json",
		"-token-sign-key", "sign",
		"-token-issuer", "iss",
		"-hash-key", "hk",
		"-request-timeout", "7s",
		"-log-level", "warn",
		"-server", "http://api",
		"-token", "tok",
		"-local-db", "/tmp/state.db",
		"-fg-interval", "10s",
		"-bg-interval", "20s",
		"-flex", "2s",
		"-max-retries", "5",
		"-background",
		"-no-realtime",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, "postgres://db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/etc/grocery.json", cfg.JSONFilePath)
	assert.Equal(t, "sign", cfg.App.TokenSignKey)
	assert.Equal(t, "iss", cfg.App.TokenIssuer)
	assert.Equal(t, "hk", cfg.App.HashKey)
	assert.Equal(t, 7*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 7*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, "http://api", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "tok", cfg.Adapter.AccessToken)
	assert.Equal(t, "/tmp/state.db", cfg.Storage.Local.DSN)
	assert.Equal(t, 10*time.Second, cfg.Workers.ForegroundInterval)
	assert.Equal(t, 20*time.Second, cfg.Workers.BackgroundInterval)
	assert.Equal(t, 2*time.Second, cfg.Workers.Flex)
	assert.Equal(t, uint64(5), cfg.Workers.MaxRetries)
	assert.True(t, cfg.Workers.StartInBackground)
	assert.True(t, cfg.Realtime.Disabled)
}

func TestParseFlags_NoArgs(t *testing.T) {
	cfg, err := ParseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Server.HTTPAddress)
	assert.False(t, cfg.Realtime.Disabled)
}

func TestParseFlags_InvalidAddress(t *testing.T) {
	_, err := ParseFlags([]string{"-a", "nowhere"})
	assert.Error(t, err)
}
