// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/service"
	"github.com/MKhiriev/grocery-sync/internal/utils"
	"github.com/MKhiriev/grocery-sync/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token of the "Authorization" header, validates it
// via [service.AuthService.ParseToken] and stores the caller
// [models.Identity] in the request context with [utils.WithIdentity].
//
// Requests without a header, with a malformed header or with an expired or
// invalid token are rejected with 401 Unauthorized.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, "*Handler.auth", ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, "*Handler.auth", fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err))
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, "*Handler.auth", err)
			return
		}

		identity := token.Identity()
		logger.FromRequest(r).Debug().
			Str("user_id", identity.UserID).
			Str("role", string(identity.Role)).
			Msg("request authenticated")

		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(ctx, identity)))
	})
}

// requireRole admits only callers whose role is one of roles. It must run
// after [Handler.auth].
func requireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := utils.GetIdentityFromContext(r.Context())
			if !ok {
				writeError(w, r, "requireRole", service.ErrTokenIsExpiredOrInvalid)
				return
			}

			if !slices.Contains(roles, identity.Role) {
				writeError(w, r, "requireRole", fmt.Errorf("%w: role %q", service.ErrAccessDenied, identity.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
