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

// orderRepository is the PostgreSQL-backed [OrderRepository].
type orderRepository struct {
	*DB
	logger *logger.Logger
}

// NewOrderRepository constructs an [OrderRepository] over db.
func NewOrderRepository(db *DB, logger *logger.Logger) OrderRepository {
	return &orderRepository{DB: db, logger: logger}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (models.Order, error) {
	var (
		order                models.Order
		status               string
		createdAt, updatedAt time.Time
	)

	err := row.Scan(
		&order.ID,
		&status,
		&order.Total,
		&order.ItemsCount,
		&order.DriverID,
		&createdAt,
		&updatedAt,
		&order.UserID,
	)
	if err != nil {
		return models.Order{}, err
	}

	order.Status = models.OrderStatus(status)
	order.CreatedAt = models.FormatTimestamp(createdAt)
	order.UpdatedAt = models.FormatTimestamp(updatedAt)
	return order, nil
}

// GetOrders returns the summaries of every order of the user, newest first.
func (r *orderRepository) GetOrders(ctx context.Context, userID string) ([]models.OrderSummary, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetOrdersQuery(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "orderRepository.GetOrders").
			Str("user_id", userID).
			Msg("failed to execute orders query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	summaries := make([]models.OrderSummary, 0, 16)
	for rows.Next() {
		order, scanErr := scanOrder(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "orderRepository.GetOrders").
				Str("user_id", userID).
				Msg("failed to scan order row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		summaries = append(summaries, order.OrderSummary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return summaries, nil
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID string) (models.Order, error) {
	query, args, err := buildGetOrderQuery(orderID)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	order, err := scanOrder(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "orderRepository.GetOrder").
			Str("order_id", orderID).
			Msg("failed to read order")
		return models.Order{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return order, nil
}

// CreateOrderFromCart locks the cart lines of the user, copies them into a
// new pending order, empties the cart and stamps it with at.
func (r *orderRepository) CreateOrderFromCart(ctx context.Context, userID, orderID string, at time.Time) (models.Order, error) {
	log := logger.FromContext(ctx)

	var order models.Order

	err := r.withRetry(ctx, func(ctx context.Context) error {
		tx, err := r.DB.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
		}
		defer tx.Rollback()

		items, err := queryLines(ctx, tx, buildGetCartItemsQuery, userID, true)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		order = newPendingOrder(orderID, userID, items, at)

		query, args, err := buildInsertOrderQuery(order, at)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		query, args, err = buildInsertLinesQuery(tableOrderItems, "order_id", orderID, items)
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		query, args, err = buildDeleteCartItemsQuery(userID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		query, args, err = buildTouchCartOnlyQuery(userID, at)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		if err = tx.Commit(); err != nil {
			return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "orderRepository.CreateOrderFromCart").
			Str("user_id", userID).
			Str("order_id", orderID).
			Msg("failed to create order from cart")
		return models.Order{}, err
	}

	log.Info().
		Str("func", "orderRepository.CreateOrderFromCart").
		Str("user_id", userID).
		Str("order_id", orderID).
		Float64("total", order.Total).
		Msg("order created")
	return order, nil
}

func newPendingOrder(orderID, userID string, items []models.CartItem, at time.Time) models.Order {
	var (
		total float64
		units int
	)
	for _, item := range items {
		total += float64(item.Quantity) * item.Price
		units += item.Quantity
	}

	stamp := models.FormatTimestamp(at)
	return models.Order{
		OrderSummary: models.OrderSummary{
			ID:         orderID,
			Status:     models.OrderStatusPending,
			Total:      total,
			ItemsCount: units,
			CreatedAt:  stamp,
			UpdatedAt:  stamp,
		},
		UserID: userID,
		Items:  items,
	}
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus, at time.Time) (models.Order, error) {
	return r.updateOrder(ctx, "orderRepository.UpdateStatus", orderID, map[string]any{"status": string(status)}, at)
}

func (r *orderRepository) AssignDriver(ctx context.Context, orderID, driverID string, at time.Time) (models.Order, error) {
	return r.updateOrder(ctx, "orderRepository.AssignDriver", orderID, map[string]any{"driver_id": driverID}, at)
}

func (r *orderRepository) updateOrder(ctx context.Context, funcName, orderID string, set map[string]any, at time.Time) (models.Order, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateOrderQuery(orderID, set, at)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var order models.Order
	err = r.withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		order, scanErr = scanOrder(r.DB.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn().
			Str("func", funcName).
			Str("order_id", orderID).
			Msg("order not found")
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Str("order_id", orderID).
			Msg("failed to update order")
		return models.Order{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return order, nil
}
