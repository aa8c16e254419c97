// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds a host and port. It implements flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses command-line configuration flags from args.
//
// Flags:
//
//	-a            server listen address host:port
//	-d            server database DSN
//	-c / -config  JSON config file path
//	-token-sign-key, -token-issuer  bearer token validation
//	-hash-key     request integrity key
//	-request-timeout  server request timeout (e.g. "30s")
//	-log-level    minimum log level
//	-server       client: server address
//	-token        client: bearer access token
//	-local-db     client: SQLite state store path
//	-fg-interval, -bg-interval, -flex  client: sync cadence
//	-max-retries  client: capped retries per failed cycle
//	-background   client: start with the background cadence
//	-no-realtime  client: disable the realtime subscriber
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("grocery-sync", flag.ContinueOnError)

	var (
		serverAddress     NetAddress
		databaseDSN       string
		jsonConfigPath    string
		tokenSignKey      string
		tokenIssuer       string
		hashKey           string
		requestTimeout    time.Duration
		logLevel          string
		adapterAddress    string
		accessToken       string
		localDSN          string
		fgInterval        time.Duration
		bgInterval        time.Duration
		flex              time.Duration
		maxRetries        uint64
		startInBackground bool
		realtimeDisabled  bool
	)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.StringVar(&hashKey, "hash-key", "", "Request integrity hash key")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&adapterAddress, "server", "", "Server address for the client")
	fs.StringVar(&accessToken, "token", "", "Bearer access token for the client")
	fs.StringVar(&localDSN, "local-db", "", "Client SQLite state store path")
	fs.DurationVar(&fgInterval, "fg-interval", 0, "Foreground sync interval")
	fs.DurationVar(&bgInterval, "bg-interval", 0, "Background sync interval")
	fs.DurationVar(&flex, "flex", 0, "Sync interval flex")
	fs.Uint64Var(&maxRetries, "max-retries", 0, "Retries per failed sync cycle")
	fs.BoolVar(&startInBackground, "background", false, "Start with the background cadence")
	fs.BoolVar(&realtimeDisabled, "no-realtime", false, "Disable the realtime subscriber")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey: tokenSignKey,
			TokenIssuer:  tokenIssuer,
			HashKey:      hashKey,
			LogLevel:     logLevel,
		},
		Storage: Storage{
			DB:    DB{DSN: databaseDSN},
			Local: Local{DSN: localDSN},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress,
			RequestTimeout: requestTimeout,
			AccessToken:    accessToken,
		},
		Workers: Workers{
			ForegroundInterval: fgInterval,
			BackgroundInterval: bgInterval,
			Flex:               flex,
			MaxRetries:         maxRetries,
			StartInBackground:  startInBackground,
		},
		Realtime:     Realtime{Disabled: realtimeDisabled},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns host:port, or an empty string when nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The host must be "localhost", empty or an IP address.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(strings.TrimSpace(s))
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
