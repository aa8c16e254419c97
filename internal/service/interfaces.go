// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/grocery-sync/models"
)

// SyncService serves the server half of the sync protocol.
type SyncService interface {
	// GetSnapshot reads cart, orders and profile of userID and computes the
	// checksums and totals of the snapshot.
	GetSnapshot(ctx context.Context, userID string) (models.SyncSnapshot, error)

	// Resolve adjudicates a pushed local state against the stored one. When
	// the local side wins the stored copy is replaced and the change is
	// published.
	Resolve(ctx context.Context, userID string, req models.ResolveRequest) (models.ConflictResolution, error)
}

// OrderService owns the order lifecycle mutations.
type OrderService interface {
	// CreateOrder converts the current server cart of userID into a pending
	// order and empties the cart.
	CreateOrder(ctx context.Context, userID string) (models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (models.Order, error)
	AssignDriver(ctx context.Context, orderID, driverID string) (models.Order, error)

	// ReportLocation records a driver position. Drivers may only report for
	// orders assigned to them.
	ReportLocation(ctx context.Context, identity models.Identity, location models.DriverLocation) (models.DriverLocation, error)

	// OrderOwner returns the user and the driver of an order. The realtime
	// access policy uses it for tracking channels.
	OrderOwner(ctx context.Context, orderID string) (userID, driverID string, err error)
}

type ProductService interface {
	UpdateStock(ctx context.Context, productID string, stock int) (models.StockChanged, error)
}

type AuthService interface {
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.VersionInfo
}

// EventPublisher delivers realtime events to the subscribers of a channel.
// Publish must not block and must not fail the caller.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, event models.Event)
}

// SyncServiceWrapper defines middleware composition for SyncService.
// Implementations wrap an existing SyncService to add behavior such as
// validating.
type SyncServiceWrapper interface {
	Wrap(SyncService) SyncService
}
