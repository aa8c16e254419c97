// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/grocery-sync/internal/config"
	"github.com/MKhiriev/grocery-sync/internal/logger"
)

// Storages groups the server repositories so they can be handed to the
// service layer as one value.
type Storages struct {
	CartRepository           CartRepository
	OrderRepository          OrderRepository
	ProfileRepository        ProfileRepository
	ProductRepository        ProductRepository
	DriverLocationRepository DriverLocationRepository

	db *DB
}

// NewStorages connects to PostgreSQL, applies pending migrations and wires
// every repository to the same pool.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newStorages(db, logger), nil
}

func newStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		CartRepository:           NewCartRepository(db, logger),
		OrderRepository:          NewOrderRepository(db, logger),
		ProfileRepository:        NewProfileRepository(db, logger),
		ProductRepository:        NewProductRepository(db, logger),
		DriverLocationRepository: NewDriverLocationRepository(db, logger),
		db:                       db,
	}
}

// Close releases the connection pool.
func (s *Storages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
