// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")

	// ErrServerUnavailable wraps network level failures: refused
	// connections, timeouts, cancelled requests.
	ErrServerUnavailable = errors.New("server unavailable")
	// ErrDecodeResponse is returned when a 2xx body is not a valid envelope.
	ErrDecodeResponse = errors.New("invalid server response")
	// ErrSnapshotFetch marks a failed sync state fetch.
	ErrSnapshotFetch = errors.New("sync state fetch failed")
)
