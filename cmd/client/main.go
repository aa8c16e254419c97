// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/grocery-sync/internal/adapter"
	"github.com/MKhiriev/grocery-sync/internal/client"
	"github.com/MKhiriev/grocery-sync/internal/config"
	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/realtime"
	"github.com/MKhiriev/grocery-sync/internal/service"
	"github.com/MKhiriev/grocery-sync/internal/store"
	"github.com/MKhiriev/grocery-sync/internal/workers"
	"github.com/MKhiriev/grocery-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewClientLogger("grocery-sync-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	localStorage, err := store.NewClientStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	services := service.NewClientServices(localStorage, serverAdapter, cfg.Workers, log)

	agentWorkers := []workers.Worker{
		workers.NewSyncJobWorker(services.SyncJob, log.WithComponent("scheduler")),
	}

	if cfg.Realtime.Enabled {
		codec, err := realtime.NewCodec()
		if err != nil {
			log.Fatal().Err(err).Msg("compile realtime schemas")
		}

		rtLog := log.WithComponent("realtime")
		subscriber, err := realtime.NewSubscriber(cfg.Adapter, cfg.Realtime, serverAdapter, codec,
			realtime.NewSyncDispatcher(services.SyncJob, rtLog), rtLog)
		if err != nil {
			log.Fatal().Err(err).Msg("create realtime subscriber")
		}
		agentWorkers = append(agentWorkers, workers.NewRealtimeWorker(subscriber, rtLog))
	}

	app, err := client.NewApp(services, workers.NewWorkers(agentWorkers...), log, localStorage)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
