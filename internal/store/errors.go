// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrOrderNotFound is returned when an order update or a driver location
	// targets an order id that does not exist.
	ErrOrderNotFound = errors.New("order was not found")

	// ErrProductNotFound is returned when a stock update targets an unknown
	// product.
	ErrProductNotFound = errors.New("product was not found")

	// ErrEmptyCart is returned when an order is requested for a cart without
	// lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrStateChanged is returned by conditional local writes when the stored
	// timestamp no longer matches the expected one.
	ErrStateChanged = errors.New("local state changed concurrently")

	// ErrStaleWrite is returned by conditional server writes when the stored
	// stamp is not older than the one being written.
	ErrStaleWrite = errors.New("stored state is newer than the write")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
	ErrEncodingValue        = errors.New("failed to encode value")
)
