// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client transport to the grocery-sync server.
//
// [ServerAdapter] decouples the sync services from the protocol. The package
// ships an HTTP/REST implementation ([NewHTTPServerAdapter]) built on resty.
//
// Non-2xx responses are mapped by mapHTTPError onto the sentinels in
// errors.go so that callers can match them with [errors.Is]
// (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/grocery-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the grocery-sync server.
type ServerAdapter interface {
	// SetToken replaces the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the current bearer token, or an empty string.
	Token() string

	// Ping checks that the server is reachable. It calls the unauthenticated
	// version endpoint and is used as the connectivity precondition of a
	// sync cycle.
	Ping(ctx context.Context) error

	// GetSyncState fetches the server snapshot of cart, orders and profile
	// in one round trip. Any failure is wrapped with [ErrSnapshotFetch]
	// and the transport sentinel.
	GetSyncState(ctx context.Context) (models.SyncSnapshot, error)

	// Resolve pushes a locally newer entity state. The server adjudicates,
	// stores the state if the local side still wins and returns the
	// authoritative resolution.
	Resolve(ctx context.Context, req models.ResolveRequest) (models.ConflictResolution, error)
}
