// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains message constants shared by the grocery-sync server
// handlers and the client error mapping.
//
// The Msg* constants are written into the "error" field of failed API
// responses. The client matches on the same strings to turn a transport
// error back into a service error, so the wording must stay stable.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgUnknownEntity is returned when a resolve request names an entity
	// outside cart, orders and profile.
	MsgUnknownEntity = "unknown sync entity"

	// MsgInternalServerError is returned for unexpected server failures.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is expired
	// or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoUserIDProvided is returned when an authenticated route runs
	// without an identity in the request context.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgAccessDenied is returned when the caller's role or ownership does
	// not allow the operation.
	MsgAccessDenied = "access denied"

	// MsgIntegrityCheckFailed is returned when the HashSHA256 header does not
	// match the request body.
	MsgIntegrityCheckFailed = "integrity check failed"

	MsgOrderNotFound   = "order not found"
	MsgProductNotFound = "product not found"

	// MsgEmptyCart is returned when an order is requested for an empty
	// server cart.
	MsgEmptyCart = "cart is empty"

	// MsgInvalidOrderStatus is returned for status values outside the
	// delivery lifecycle.
	MsgInvalidOrderStatus = "invalid order status"
)
