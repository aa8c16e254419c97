// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads, merges and validates configuration for the sync
// server and the client agent.
//
// Sources are consulted in priority order, the first non-empty value wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// [GetStructuredConfig] returns the server configuration and
// [GetClientConfig] the client view.
package config
