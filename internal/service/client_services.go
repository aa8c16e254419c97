// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/grocery-sync/internal/adapter"
	"github.com/MKhiriev/grocery-sync/internal/config"
	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/store"
)

type ClientServices struct {
	SyncService  ClientSyncService
	StateService ClientStateService
	SyncJob      ClientSyncJob
}

func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, cfg config.ClientWorkers, logger *logger.Logger) *ClientServices {
	syncSvc := NewClientSyncService(storages.StateStore, serverAdapter, logger.WithComponent("sync"))
	job := NewClientSyncJob(syncSvc, serverAdapter, cfg, logger.WithComponent("scheduler"))

	return &ClientServices{
		SyncService:  syncSvc,
		StateService: NewClientStateService(storages.StateStore, job, logger),
		SyncJob:      job,
	}
}
