// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/grocery-sync/models"
)

// ClientSyncService reconciles the local state store with the server.
type ClientSyncService interface {
	// PerformFullSync runs one sync pass: fetch the server snapshot, then
	// resolve and persist cart, orders and profile independently.
	//
	// The summary is always returned and reports failures per entity. The
	// error wraps [ErrSyncIncomplete] and its cause when the snapshot fetch
	// failed, or when the server rejected the session while pushing
	// ([ErrSessionUnauthorized]). Other entity failures leave it nil: they
	// are retried by the next cycle.
	PerformFullSync(ctx context.Context) (models.SyncSummary, error)
}

// ClientStateService is the UI-facing writer of the local state. Every
// mutation goes through the state store and requests an out-of-cycle sync.
type ClientStateService interface {
	GetCart(ctx context.Context) ([]models.CartItem, error)
	GetOrders(ctx context.Context) ([]models.OrderSummary, error)
	// GetProfile returns the zero profile when none is stored.
	GetProfile(ctx context.Context) (models.Profile, error)

	SetCart(ctx context.Context, items []models.CartItem) error
	// AddToCart appends item, or adds its quantity to an existing line of
	// the same product.
	AddToCart(ctx context.Context, item models.CartItem) error
	RemoveFromCart(ctx context.Context, productID string) error
	UpdateProfile(ctx context.Context, profile models.Profile) error

	// CompleteCheckout clears the local cart after an order was placed.
	CompleteCheckout(ctx context.Context) error

	// Logout stops background sync and wipes every entity.
	Logout(ctx context.Context) error
}

// ClientSyncJob is the periodic sync scheduler.
type ClientSyncJob interface {
	// Start launches the scheduler. It reports false and does nothing when
	// the scheduler is already running.
	Start(ctx context.Context) bool

	// Stop cancels the scheduler and blocks until its goroutine exits. Safe
	// to call when not running.
	Stop()

	// Trigger requests a sync outside the regular cadence. Requests made
	// while a cycle runs are coalesced into one re-run.
	Trigger()

	// SetForeground switches between the foreground and background cadence.
	SetForeground(foreground bool)

	Running() bool

	// OnAuthFailure registers a hook called when the server rejects the
	// session. Unauthorized cycles are not retried.
	OnAuthFailure(fn func(error))
}
