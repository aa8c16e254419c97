// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidProductID   = errors.New("invalid product ID")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrInvalidPrice       = errors.New("price must not be negative")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidEntity      = errors.New("invalid sync entity")
	ErrInvalidLocalState  = errors.New("invalid local state")
	ErrInvalidTimestamp   = errors.New("invalid timestamp")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrInvalidOrderID     = errors.New("invalid order ID")
	ErrInvalidDriverID    = errors.New("invalid driver ID")
	ErrInvalidStock       = errors.New("stock must not be negative")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)
