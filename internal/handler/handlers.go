// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/MKhiriev/grocery-sync/internal/config"
	"github.com/MKhiriev/grocery-sync/internal/handler/http"
	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/realtime"
	"github.com/MKhiriev/grocery-sync/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers creates the transport handlers. hub may be nil when realtime
// is disabled; the websocket route is then not registered.
func NewHandlers(services *service.Services, hub *realtime.Hub, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, hub, cfg.App.HashKey, logger),
	}, nil
}
