// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/service"
	"github.com/MKhiriev/grocery-sync/internal/workers"
)

// Closer releases the resources the agent opened, such as the local store.
type Closer interface {
	Close() error
}

var _ Client = (*App)(nil)

type App struct {
	services *service.ClientServices
	workers  *workers.Workers
	closers  []Closer

	logger *logger.Logger
}

// NewApp assembles the agent. closers run in reverse order after the
// workers stop.
func NewApp(services *service.ClientServices, workers *workers.Workers, logger *logger.Logger, closers ...Closer) (*App, error) {
	if services == nil || workers == nil {
		return nil, errors.New("client app needs services and workers")
	}

	services.SyncJob.OnAuthFailure(func(err error) {
		logger.Error().Err(err).Msg("server rejected the access token; sync is paused until it is replaced")
	})

	return &App{
		services: services,
		workers:  workers,
		closers:  closers,
		logger:   logger,
	}, nil
}

// Run blocks until SIGINT, SIGTERM or SIGQUIT, or until a worker fails.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	a.logger.Info().Msg("client agent started")

	err := a.workers.Run(ctx)

	for i := len(a.closers) - 1; i >= 0; i-- {
		if closeErr := a.closers[i].Close(); closeErr != nil {
			a.logger.Err(closeErr).Msg("release client resources")
			err = errors.Join(err, closeErr)
		}
	}

	if err != nil {
		return fmt.Errorf("client agent: %w", err)
	}

	a.logger.Info().Msg("client agent stopped")
	return nil
}
