// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport layer of the grocery-sync
// server.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API and the realtime websocket route. Cross-cutting concerns such as
// authentication, role checks, request tracing, access logging, response
// compression, and integrity checks are handled in this package before
// requests are delegated to the service layer.
package http
