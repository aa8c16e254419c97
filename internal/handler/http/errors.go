// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")
)

var (
	// ErrIntegrityCheckFailed is returned when the HashSHA256 header of a
	// request does not match its body.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")

	// ErrMissingPathParam is returned when a route parameter is empty.
	ErrMissingPathParam = errors.New("missing path parameter")
)
