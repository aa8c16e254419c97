// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/realtime"
	"golang.org/x/sync/errgroup"
)

type Workers struct {
	workers []Worker
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker and waits for all of them. The first failure
// cancels the others and is returned.
func (w *Workers) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(gctx)
		})
	}
	return g.Wait()
}

type syncJobWorker struct {
	job    SyncJob
	logger *logger.Logger
}

// NewSyncJobWorker runs the sync scheduler for the lifetime of the context.
func NewSyncJobWorker(job SyncJob, logger *logger.Logger) Worker {
	return &syncJobWorker{job: job, logger: logger}
}

func (s *syncJobWorker) Run(ctx context.Context) error {
	if !s.job.Start(ctx) {
		s.logger.Warn().Msg("sync job is already running")
	}

	<-ctx.Done()
	s.job.Stop()
	s.logger.Info().Msg("sync job stopped")
	return nil
}

type realtimeWorker struct {
	subscription Subscription
	logger       *logger.Logger
}

// NewRealtimeWorker keeps the realtime subscription open for the lifetime
// of the context. A missing session is not fatal: the agent keeps syncing
// on its schedule.
func NewRealtimeWorker(subscription Subscription, logger *logger.Logger) Worker {
	return &realtimeWorker{subscription: subscription, logger: logger}
}

func (r *realtimeWorker) Run(ctx context.Context) error {
	if err := r.subscription.Start(ctx); err != nil {
		if errors.Is(err, realtime.ErrNoSession) {
			r.logger.Warn().Err(err).Msg("realtime disabled until a session exists")
			return nil
		}
		return fmt.Errorf("start realtime subscription: %w", err)
	}

	<-ctx.Done()
	if err := r.subscription.Close(); err != nil {
		return fmt.Errorf("close realtime subscription: %w", err)
	}
	r.logger.Info().Msg("realtime subscription closed")
	return nil
}
