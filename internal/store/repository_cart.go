// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/models"
)

// cartRepository is the PostgreSQL-backed [CartRepository]. The carts table
// carries the entity stamp; cart_items carries the ordered lines.
type cartRepository struct {
	*DB
	logger *logger.Logger
}

// NewCartRepository constructs a [CartRepository] over db.
func NewCartRepository(db *DB, logger *logger.Logger) CartRepository {
	return &cartRepository{DB: db, logger: logger}
}

func (r *cartRepository) GetCart(ctx context.Context, userID string) ([]models.CartItem, time.Time, error) {
	log := logger.FromContext(ctx)

	updatedAt := time.Unix(0, 0).UTC()

	query, args, err := buildGetCartTimestampQuery(userID)
	if err != nil {
		return nil, updatedAt, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return []models.CartItem{}, time.Unix(0, 0).UTC(), nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "cartRepository.GetCart").
			Str("user_id", userID).
			Msg("failed to read cart stamp")
		return nil, updatedAt, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	items, err := queryLines(ctx, r.DB.DB, buildGetCartItemsQuery, userID, false)
	if err != nil {
		log.Err(err).
			Str("func", "cartRepository.GetCart").
			Str("user_id", userID).
			Msg("failed to read cart lines")
		return nil, updatedAt, err
	}

	return items, updatedAt.UTC(), nil
}

func (r *cartRepository) ReplaceCart(ctx context.Context, userID string, items []models.CartItem, updatedAt time.Time) error {
	log := logger.FromContext(ctx)

	err := r.withRetry(ctx, func(ctx context.Context) error {
		tx, err := r.DB.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
		}
		defer tx.Rollback()

		if err = replaceCartTx(ctx, tx, userID, items, updatedAt); err != nil {
			return err
		}

		if err = tx.Commit(); err != nil {
			return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
		}
		return nil
	})
	if errors.Is(err, ErrStaleWrite) {
		log.Debug().
			Str("func", "cartRepository.ReplaceCart").
			Str("user_id", userID).
			Time("updated_at", updatedAt).
			Msg("stored cart is newer, write skipped")
		return err
	}
	if err != nil {
		log.Err(err).
			Str("func", "cartRepository.ReplaceCart").
			Str("user_id", userID).
			Int("items", len(items)).
			Msg("failed to replace cart")
		return err
	}

	log.Debug().
		Str("func", "cartRepository.ReplaceCart").
		Str("user_id", userID).
		Int("items", len(items)).
		Time("updated_at", updatedAt).
		Msg("cart replaced")
	return nil
}

// replaceCartTx stamps the cart and rewrites its lines inside tx. The stamp
// upsert locks the cart row, so concurrent replaces are ordered by it; an
// update that would not move the stamp forward returns [ErrStaleWrite].
func replaceCartTx(ctx context.Context, tx *sql.Tx, userID string, items []models.CartItem, updatedAt time.Time) error {
	query, args, err := buildTouchCartQuery(userID, updatedAt)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrStaleWrite
	}

	query, args, err = buildDeleteCartItemsQuery(userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if len(items) == 0 {
		return nil
	}

	query, args, err = buildInsertLinesQuery(tableCartItems, "user_id", userID, items)
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func queryLines(
	ctx context.Context,
	q querier,
	build func(ownerID string, forUpdate bool) (string, []any, error),
	ownerID string,
	forUpdate bool,
) ([]models.CartItem, error) {
	query, args, err := build(ownerID, forUpdate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.CartItem, 0, 8)
	for rows.Next() {
		var item models.CartItem
		if err = rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}
