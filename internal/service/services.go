// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/grocery-sync/internal/config"
	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/store"
	"github.com/MKhiriev/grocery-sync/models"
)

type Services struct {
	AuthService    AuthService
	SyncService    SyncService
	OrderService   OrderService
	ProductService ProductService
	AppInfoService AppInfoService
}

// NewServices wires the server services. Every mutation is announced
// through publisher.
func NewServices(storages *store.Storages, publisher EventPublisher, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) *Services {
	syncService := NewSyncValidationService().Wrap(NewSyncService(storages, publisher, logger))

	return &Services{
		AuthService:    NewAuthService(cfg.App, logger),
		SyncService:    syncService,
		OrderService:   NewOrderService(storages, publisher, logger),
		ProductService: NewProductService(storages, publisher, logger),
		AppInfoService: NewAppInfoService(cfg.App, buildInfo, logger),
	}
}
