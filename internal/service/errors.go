// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrAccessDenied is returned when the caller's role or ownership does
	// not allow the operation.
	ErrAccessDenied = errors.New("access denied")

	ErrInvalidOrderStatus = errors.New("invalid order status")
)

// Client side errors.
var (
	// ErrSessionUnauthorized means the server rejected the access token.
	// The scheduler reports it through the auth failure hook instead of
	// retrying.
	ErrSessionUnauthorized = errors.New("session unauthorized")

	// ErrServerOffline means the connectivity precheck failed.
	ErrServerOffline = errors.New("server offline")

	// ErrSyncIncomplete is returned by a sync cycle whose snapshot fetch
	// failed or whose session was rejected.
	ErrSyncIncomplete = errors.New("sync cycle incomplete")

	ErrRejectedByServer = errors.New("rejected by server")
)
