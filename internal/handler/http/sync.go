// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/service"
	"github.com/MKhiriev/grocery-sync/internal/utils"
	"github.com/MKhiriev/grocery-sync/models"
)

// getSyncState returns the server snapshot of the caller: cart, orders and
// profile with their timestamps and checksums.
func (h *Handler) getSyncState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, "*Handler.getSyncState", service.ErrTokenIsExpiredOrInvalid)
		return
	}

	snapshot, err := h.services.SyncService.GetSnapshot(ctx, userID)
	if err != nil {
		writeError(w, r, "*Handler.getSyncState", err)
		return
	}

	logger.FromRequest(r).Debug().
		Str("func", "*Handler.getSyncState").
		Int("cart_items", len(snapshot.Cart.Items)).
		Int("orders", len(snapshot.Orders.Items)).
		Msg("snapshot served")

	_, _ = utils.WriteSuccess(w, snapshot, http.StatusOK)
}

// resolve adjudicates one pushed entity state against the server copy.
func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, "*Handler.resolve", service.ErrTokenIsExpiredOrInvalid)
		return
	}

	var req models.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "*Handler.resolve", fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}

	resolution, err := h.services.SyncService.Resolve(ctx, userID, req)
	if err != nil {
		writeError(w, r, "*Handler.resolve", err)
		return
	}

	logger.FromRequest(r).Info().
		Str("func", "*Handler.resolve").
		Str("entity", req.Entity.String()).
		Str("action", string(resolution.Action)).
		Msg("entity resolved")

	_, _ = utils.WriteSuccess(w, resolution, http.StatusOK)
}
