// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/grocery-sync/internal/app"
	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/realtime"
	"github.com/MKhiriev/grocery-sync/internal/service"
	"github.com/MKhiriev/grocery-sync/internal/store"
	"github.com/MKhiriev/grocery-sync/internal/utils"
	"github.com/MKhiriev/grocery-sync/models"
)

type errorStatus struct {
	target  error
	status  int
	message string
}

// errorStatuses is checked in order; the first match wins. Unknown entity
// comes before invalid data because the sync service wraps one in the other.
var errorStatuses = []errorStatus{
	{models.ErrUnknownEntity, http.StatusBadRequest, app.MsgUnknownEntity},
	{service.ErrInvalidOrderStatus, http.StatusBadRequest, app.MsgInvalidOrderStatus},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{ErrIntegrityCheckFailed, http.StatusBadRequest, app.MsgIntegrityCheckFailed},
	{ErrMissingPathParam, http.StatusBadRequest, app.MsgInvalidDataProvided},

	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},

	{service.ErrAccessDenied, http.StatusForbidden, app.MsgAccessDenied},
	{realtime.ErrChannelForbidden, http.StatusForbidden, app.MsgAccessDenied},
	{realtime.ErrUnknownChannel, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{realtime.ErrNoChannels, http.StatusBadRequest, app.MsgInvalidDataProvided},

	{store.ErrOrderNotFound, http.StatusNotFound, app.MsgOrderNotFound},
	{store.ErrProductNotFound, http.StatusNotFound, app.MsgProductNotFound},
	{store.ErrEmptyCart, http.StatusConflict, app.MsgEmptyCart},
}

// statusFromError returns the response status and the client-facing
// message for err. Anything unknown is an internal error.
func statusFromError(err error) (int, string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status, e.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeError logs err with the request logger and writes the matching
// error envelope.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status, message := statusFromError(err)

	event := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Str("func", funcName).Int("status", status).Msg("request failed")

	utils.WriteError(w, message, status)
}
