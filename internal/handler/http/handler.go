// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/realtime"
	"github.com/MKhiriev/grocery-sync/internal/service"
	"github.com/MKhiriev/grocery-sync/internal/utils"
	"github.com/MKhiriev/grocery-sync/internal/validators"
)

type Handler struct {
	services *service.Services

	// hub serves the realtime websocket route. A nil hub disables it.
	hub    *realtime.Hub
	policy *realtime.AccessPolicy

	signer    *utils.Signer
	validator validators.Validator

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. Request bodies of the resolve route
// are checked against hashKey when it is not empty.
func NewHandler(services *service.Services, hub *realtime.Hub, hashKey string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		hub:       hub,
		policy:    realtime.NewAccessPolicy(services.OrderService),
		signer:    utils.NewSigner(hashKey),
		validator: validators.NewGroceryValidator(),
		logger:    logger,
	}
}
