// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/grocery-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ErrorClassificator decides whether a database error is transient.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// CartRepository owns the server cart rows of every user.
type CartRepository interface {
	// GetCart returns the ordered cart lines and the cart stamp. A user
	// without a cart gets an empty list and the epoch.
	GetCart(ctx context.Context, userID string) ([]models.CartItem, time.Time, error)

	// ReplaceCart deletes every line of the user and inserts items in one
	// transaction, stamping the cart with updatedAt. It writes nothing and
	// returns [ErrStaleWrite] unless updatedAt is later than the stored stamp.
	ReplaceCart(ctx context.Context, userID string, items []models.CartItem, updatedAt time.Time) error
}

// OrderRepository owns orders and their lines.
type OrderRepository interface {
	GetOrders(ctx context.Context, userID string) ([]models.OrderSummary, error)
	GetOrder(ctx context.Context, orderID string) (models.Order, error)

	// CreateOrderFromCart turns the current cart of the user into a pending
	// order and empties the cart, all in one transaction.
	CreateOrderFromCart(ctx context.Context, userID, orderID string, at time.Time) (models.Order, error)

	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus, at time.Time) (models.Order, error)
	AssignDriver(ctx context.Context, orderID, driverID string, at time.Time) (models.Order, error)
}

// ProfileRepository owns the single profile row of each user.
type ProfileRepository interface {
	// GetProfile returns nil and the epoch for a user without a profile.
	GetProfile(ctx context.Context, userID string) (*models.Profile, time.Time, error)
	// UpsertProfile returns [ErrStaleWrite] without writing unless updatedAt
	// is later than the stored stamp.
	UpsertProfile(ctx context.Context, userID string, profile models.Profile, updatedAt time.Time) error
}

type ProductRepository interface {
	UpdateStock(ctx context.Context, productID string, stock int, at time.Time) error
}

type DriverLocationRepository interface {
	SaveLocation(ctx context.Context, location models.DriverLocation, at time.Time) error
}
