// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the grocery-sync HTTP server.
//
// It owns the listener lifecycle: startup, signal handling and graceful
// shutdown. Shutdown also cancels the base context of every request, which
// closes the hijacked realtime connections [http.Server.Shutdown] does not
// track.
package server
