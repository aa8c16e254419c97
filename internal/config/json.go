// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey string `json:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer"`
		HashKey      string `json:"hash_key"`
		Version      string `json:"version"`
		LogLevel     string `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		Local struct {
			DSN string `json:"dsn"`
		} `json:"local,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		AccessToken    string   `json:"access_token"`
	} `json:"adapter,omitempty"`

	Workers struct {
		ForegroundInterval Duration `json:"foreground_interval"`
		BackgroundInterval Duration `json:"background_interval"`
		Flex               Duration `json:"flex"`
		MaxRetries         uint64   `json:"max_retries"`
		BackoffBase        Duration `json:"backoff_base"`
		StartInBackground  bool     `json:"start_in_background"`
	} `json:"workers,omitempty"`

	Realtime struct {
		SubscriberBuffer int      `json:"subscriber_buffer"`
		ReconnectDelay   Duration `json:"reconnect_delay"`
		Disabled         bool     `json:"disabled"`
	} `json:"realtime,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey: jsonCfg.App.TokenSignKey,
			TokenIssuer:  jsonCfg.App.TokenIssuer,
			HashKey:      jsonCfg.App.HashKey,
			Version:      jsonCfg.App.Version,
			LogLevel:     jsonCfg.App.LogLevel,
		},
		Storage: Storage{
			DB:    DB{DSN: jsonCfg.Storage.DB.DSN},
			Local: Local{DSN: jsonCfg.Storage.Local.DSN},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			AccessToken:    jsonCfg.Adapter.AccessToken,
		},
		Workers: Workers{
			ForegroundInterval: time.Duration(jsonCfg.Workers.ForegroundInterval),
			BackgroundInterval: time.Duration(jsonCfg.Workers.BackgroundInterval),
			Flex:               time.Duration(jsonCfg.Workers.Flex),
			MaxRetries:         jsonCfg.Workers.MaxRetries,
			BackoffBase:        time.Duration(jsonCfg.Workers.BackoffBase),
			StartInBackground:  jsonCfg.Workers.StartInBackground,
		},
		Realtime: Realtime{
			SubscriberBuffer: jsonCfg.Realtime.SubscriberBuffer,
			ReconnectDelay:   time.Duration(jsonCfg.Realtime.ReconnectDelay),
			Disabled:         jsonCfg.Realtime.Disabled,
		},
	}, nil
}

// Duration is a time.Duration that unmarshals from JSON strings like "1h"
// or from integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	case nil:
		*d = 0
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
