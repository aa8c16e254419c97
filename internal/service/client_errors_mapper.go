// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/grocery-sync/internal/adapter"
	"github.com/MKhiriev/grocery-sync/internal/app"
)

// mapAdapterError translates the adapter's transport error into a service
// error. The original error stays in the chain.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return fmt.Errorf("%w: %w", ErrSessionUnauthorized, err)

	case errors.Is(err, adapter.ErrServerUnavailable):
		return fmt.Errorf("%w: %w", ErrServerOffline, err)

	case errors.Is(err, adapter.ErrForbidden):
		return fmt.Errorf("%w: %w", ErrAccessDenied, err)

	case errors.Is(err, adapter.ErrBadRequest):
		if extractBody(err) == app.MsgInvalidDataProvided {
			return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
		return fmt.Errorf("%w: %w", ErrRejectedByServer, err)
	}

	return err
}

// extractBody extracts the server message from an error of the form
// "...: bad request: <body>".
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
