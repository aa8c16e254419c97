// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/grocery-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// MutateFunc receives the current state of an entity and returns the new
// payload to store.
type MutateFunc func(current models.EntityState) (any, error)

// LocalStateStore is the on-device copy of every sync entity. Each method
// is atomic with respect to every other method of the same instance.
type LocalStateStore interface {
	// SaveEntityState serializes items, computes the checksum and writes the
	// whole triple at once. An empty timestamp means "now" on the store clock.
	SaveEntityState(ctx context.Context, entity models.SyncEntity, items any, timestamp string) (models.EntityState, error)

	// GetEntityState returns the stored triple, or the empty epoch state when
	// nothing was written or the stored data is corrupt.
	GetEntityState(ctx context.Context, entity models.SyncEntity) (models.EntityState, error)

	// CompareAndSaveEntityState writes only when the stored timestamp still
	// equals expectedTimestamp. It reports false when it did not write.
	CompareAndSaveEntityState(ctx context.Context, entity models.SyncEntity, expectedTimestamp string, items any, timestamp string) (bool, error)

	// MutateEntityState runs a read-modify-write under the store lock and
	// stamps the result with the store clock.
	MutateEntityState(ctx context.Context, entity models.SyncEntity, fn MutateFunc) (models.EntityState, error)

	ClearEntityState(ctx context.Context, entity models.SyncEntity) error
	ClearAll(ctx context.Context) error

	// Changes delivers the entity name after every successful write. Slow
	// readers miss notifications; they are hints, not a log.
	Changes() <-chan models.SyncEntity
}
