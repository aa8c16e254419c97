// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/models"
)

type productRepository struct {
	*DB
	logger *logger.Logger
}

func NewProductRepository(db *DB, logger *logger.Logger) ProductRepository {
	return &productRepository{DB: db, logger: logger}
}

func (r *productRepository) UpdateStock(ctx context.Context, productID string, stock int, at time.Time) error {
	query, args, err := buildUpdateStockQuery(productID, stock, at)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var affected int64
	err = r.withRetry(ctx, func(ctx context.Context) error {
		res, execErr := r.DB.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		affected, execErr = res.RowsAffected()
		return execErr
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "productRepository.UpdateStock").
			Str("product_id", productID).
			Msg("failed to update stock")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

type driverLocationRepository struct {
	*DB
	logger *logger.Logger
}

func NewDriverLocationRepository(db *DB, logger *logger.Logger) DriverLocationRepository {
	return &driverLocationRepository{DB: db, logger: logger}
}

func (r *driverLocationRepository) SaveLocation(ctx context.Context, location models.DriverLocation, at time.Time) error {
	query, args, err := buildInsertLocationQuery(location, at)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return ErrOrderNotFound
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "driverLocationRepository.SaveLocation").
			Str("order_id", location.OrderID).
			Msg("failed to save driver location")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
