// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/grocery-sync/internal/service"
	"github.com/MKhiriev/grocery-sync/internal/utils"
	"github.com/MKhiriev/grocery-sync/models"
	"github.com/go-chi/chi/v5"
)

// createOrder turns the current server cart of the caller into a pending
// order.
func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, "*Handler.createOrder", service.ErrTokenIsExpiredOrInvalid)
		return
	}

	order, err := h.services.OrderService.CreateOrder(ctx, userID)
	if err != nil {
		writeError(w, r, "*Handler.createOrder", err)
		return
	}

	_, _ = utils.WriteSuccess(w, order, http.StatusCreated)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathParam(r, "orderID")
	if err != nil {
		writeError(w, r, "*Handler.updateOrderStatus", err)
		return
	}

	var update models.StatusUpdate
	if err = h.decodeAndValidate(r, &update); err != nil {
		writeError(w, r, "*Handler.updateOrderStatus", err)
		return
	}

	order, err := h.services.OrderService.UpdateStatus(r.Context(), orderID, update.Status)
	if err != nil {
		writeError(w, r, "*Handler.updateOrderStatus", err)
		return
	}

	_, _ = utils.WriteSuccess(w, order, http.StatusOK)
}

func (h *Handler) assignDriver(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathParam(r, "orderID")
	if err != nil {
		writeError(w, r, "*Handler.assignDriver", err)
		return
	}

	var req models.AssignmentRequest
	if err = h.decodeAndValidate(r, &req); err != nil {
		writeError(w, r, "*Handler.assignDriver", err)
		return
	}

	order, err := h.services.OrderService.AssignDriver(r.Context(), orderID, req.DriverID)
	if err != nil {
		writeError(w, r, "*Handler.assignDriver", err)
		return
	}

	_, _ = utils.WriteSuccess(w, order, http.StatusOK)
}

// reportLocation records a driver position for an order. The order id of
// the path overrides the body.
func (h *Handler) reportLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		writeError(w, r, "*Handler.reportLocation", service.ErrTokenIsExpiredOrInvalid)
		return
	}

	orderID, err := pathParam(r, "orderID")
	if err != nil {
		writeError(w, r, "*Handler.reportLocation", err)
		return
	}

	var location models.DriverLocation
	if err = json.NewDecoder(r.Body).Decode(&location); err != nil {
		writeError(w, r, "*Handler.reportLocation", fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}
	location.OrderID = orderID
	if identity.Role == models.RoleDriver {
		location.DriverID = identity.UserID
	}

	if err = h.validator.Validate(ctx, location); err != nil {
		writeError(w, r, "*Handler.reportLocation", fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}

	saved, err := h.services.OrderService.ReportLocation(ctx, identity, location)
	if err != nil {
		writeError(w, r, "*Handler.reportLocation", err)
		return
	}

	_, _ = utils.WriteSuccess(w, saved, http.StatusOK)
}

// decodeAndValidate decodes the JSON body into dst and validates it. Both
// failures are reported as invalid data.
func (h *Handler) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err)
	}
	if err := h.validator.Validate(r.Context(), dst); err != nil {
		return fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err)
	}
	return nil
}

func pathParam(r *http.Request, name string) (string, error) {
	value := chi.URLParam(r, name)
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingPathParam, name)
	}
	return value, nil
}
