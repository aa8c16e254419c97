// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/grocery-sync/internal/config"
	"github.com/MKhiriev/grocery-sync/internal/handler"
	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/realtime"
	"github.com/MKhiriev/grocery-sync/internal/server"
	"github.com/MKhiriev/grocery-sync/internal/service"
	"github.com/MKhiriev/grocery-sync/internal/store"
	"github.com/MKhiriev/grocery-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("grocery-sync-server").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLoggerWithLevel("grocery-sync-server", cfg.App.LogLevel)
	log.Debug().
		Str("address", cfg.Server.HTTPAddress).
		Bool("realtime", !cfg.Realtime.Disabled).
		Bool("integrity_check", cfg.App.HashKey != "").
		Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	var hub *realtime.Hub
	// a nil publisher makes the services skip announcements
	var publisher service.EventPublisher
	if !cfg.Realtime.Disabled {
		codec, err := realtime.NewCodec()
		if err != nil {
			log.Fatal().Err(err).Msg("error compiling realtime schemas")
		}
		hub = realtime.NewHub(cfg.Realtime, codec, log.WithComponent("realtime"))
		publisher = hub
	}

	services := service.NewServices(storages, publisher, cfg, buildInfo, log)

	handlers, err := handler.NewHandlers(services, hub, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
