// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/grocery-sync/models"
)

var (
	psql   = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)
)

const (
	tableCarts           = "carts"
	tableCartItems       = "cart_items"
	tableOrders          = "orders"
	tableOrderItems      = "order_items"
	tableProfiles        = "profiles"
	tableProducts        = "products"
	tableDriverLocations = "driver_locations"
	tablePreferences     = "preferences"
)

var (
	lineColumns  = []string{"product_id", "product_name", "quantity", "price"}
	orderColumns = []string{"id", "status", "total", "items_count", "COALESCE(driver_id, '')", "created_at", "updated_at", "user_id"}
)

// ── cart ─────────────────────────────────────────────────────────────────────

func buildGetCartTimestampQuery(userID string) (string, []any, error) {
	return psql.Select("updated_at").
		From(tableCarts).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildGetCartItemsQuery(userID string, forUpdate bool) (string, []any, error) {
	q := psql.Select(lineColumns...).
		From(tableCartItems).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("position")
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}
	return q.ToSql()
}

// buildTouchCartQuery stamps the cart only when the stored stamp is older.
// A skipped update affects zero rows.
func buildTouchCartQuery(userID string, updatedAt time.Time) (string, []any, error) {
	return psql.Insert(tableCarts).
		Columns("user_id", "updated_at").
		Values(userID, updatedAt).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET updated_at = EXCLUDED.updated_at WHERE carts.updated_at < EXCLUDED.updated_at").
		ToSql()
}

func buildDeleteCartItemsQuery(userID string) (string, []any, error) {
	return psql.Delete(tableCartItems).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// buildInsertLinesQuery inserts items into cart_items or order_items keyed
// by ownerColumn. Position keeps the payload order stable across reads.
func buildInsertLinesQuery(table, ownerColumn, ownerID string, items []models.CartItem) (string, []any, error) {
	if len(items) == 0 {
		return "", nil, fmt.Errorf("%w: no lines to insert", ErrBuildingSQLQuery)
	}

	q := psql.Insert(table).
		Columns(ownerColumn, "position", "product_id", "product_name", "quantity", "price")
	for i, item := range items {
		q = q.Values(ownerID, i, item.ProductID, item.ProductName, item.Quantity, item.Price)
	}
	return q.ToSql()
}

// ── orders ───────────────────────────────────────────────────────────────────

func buildGetOrdersQuery(userID string) (string, []any, error) {
	return psql.Select(orderColumns...).
		From(tableOrders).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id").
		ToSql()
}

func buildGetOrderQuery(orderID string) (string, []any, error) {
	return psql.Select(orderColumns...).
		From(tableOrders).
		Where(sq.Eq{"id": orderID}).
		ToSql()
}

func buildInsertOrderQuery(order models.Order, at time.Time) (string, []any, error) {
	return psql.Insert(tableOrders).
		Columns("id", "user_id", "status", "total", "items_count", "created_at", "updated_at").
		Values(order.ID, order.UserID, string(order.Status), order.Total, order.ItemsCount, at, at).
		ToSql()
}

func buildUpdateOrderQuery(orderID string, set map[string]any, at time.Time) (string, []any, error) {
	return psql.Update(tableOrders).
		SetMap(set).
		Set("updated_at", at).
		Where(sq.Eq{"id": orderID}).
		Suffix("RETURNING " + joinColumns(orderColumns)).
		ToSql()
}

func buildTouchCartOnlyQuery(userID string, at time.Time) (string, []any, error) {
	return psql.Update(tableCarts).
		Set("updated_at", at).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// ── profile ──────────────────────────────────────────────────────────────────

func buildGetProfileQuery(userID string) (string, []any, error) {
	return psql.Select("full_name", "phone", "address", "email", "updated_at").
		From(tableProfiles).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildUpsertProfileQuery(userID string, p models.Profile, updatedAt time.Time) (string, []any, error) {
	return psql.Insert(tableProfiles).
		Columns("user_id", "full_name", "phone", "address", "email", "updated_at").
		Values(userID, p.FullName, p.Phone, p.Address, p.Email, updatedAt).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			email = EXCLUDED.email,
			updated_at = EXCLUDED.updated_at
		WHERE profiles.updated_at < EXCLUDED.updated_at`).
		ToSql()
}

// ── products & tracking ──────────────────────────────────────────────────────

func buildUpdateStockQuery(productID string, stock int, at time.Time) (string, []any, error) {
	return psql.Update(tableProducts).
		Set("stock", stock).
		Set("updated_at", at).
		Where(sq.Eq{"id": productID}).
		ToSql()
}

func buildInsertLocationQuery(loc models.DriverLocation, at time.Time) (string, []any, error) {
	return psql.Insert(tableDriverLocations).
		Columns("order_id", "driver_id", "latitude", "longitude", "recorded_at").
		Values(loc.OrderID, loc.DriverID, loc.Latitude, loc.Longitude, at).
		ToSql()
}

// ── local preferences ────────────────────────────────────────────────────────

func buildGetPreferencesQuery(keys ...string) (string, []any, error) {
	return sqlite.Select("key", "value").
		From(tablePreferences).
		Where(sq.Eq{"key": keys}).
		ToSql()
}

func buildPutPreferencesQuery(values map[string]string) (string, []any, error) {
	if len(values) == 0 {
		return "", nil, fmt.Errorf("%w: no preferences to write", ErrBuildingSQLQuery)
	}

	q := sqlite.Insert(tablePreferences).Columns("key", "value")
	for _, key := range sortedKeys(values) {
		q = q.Values(key, values[key])
	}
	return q.Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value").ToSql()
}

func buildDeletePreferencesQuery() (string, []any, error) {
	return sqlite.Delete(tablePreferences).ToSql()
}
