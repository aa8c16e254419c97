// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/grocery-sync/internal/config"
	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/sethvargo/go-retry"
)

// Pinger is the connectivity precondition of a sync cycle.
type Pinger interface {
	Ping(ctx context.Context) error
}

type clientSyncJob struct {
	syncService ClientSyncService
	pinger      Pinger
	cfg         config.ClientWorkers

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running atomic.Bool

	foreground  atomic.Bool
	trigger     chan struct{}
	modeChanged chan struct{}

	hookMu        sync.RWMutex
	onAuthFailure func(error)

	// jitter returns a value in [-1, 1) that scales cfg.Flex.
	jitter func() float64

	logger *logger.Logger
}

// NewClientSyncJob creates the scheduler. It is idle until Start is called.
func NewClientSyncJob(syncService ClientSyncService, pinger Pinger, cfg config.ClientWorkers, logger *logger.Logger) ClientSyncJob {
	if cfg.ForegroundInterval <= 0 {
		cfg.ForegroundInterval = config.DefaultForegroundInterval
	}
	if cfg.BackgroundInterval <= 0 {
		cfg.BackgroundInterval = config.DefaultBackgroundInterval
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = config.DefaultBackoffBase
	}

	j := &clientSyncJob{
		syncService: syncService,
		pinger:      pinger,
		cfg:         cfg,
		trigger:     make(chan struct{}, 1),
		modeChanged: make(chan struct{}, 1),
		jitter:      func() float64 { return rand.Float64()*2 - 1 },
		logger:      logger,
	}
	j.foreground.Store(!cfg.StartInBackground)
	return j
}

// Start implements [ClientSyncJob]. The first cycle runs right away.
func (j *clientSyncJob) Start(ctx context.Context) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.cancel != nil {
		return false
	}

	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.done = make(chan struct{})
	j.running.Store(true)

	go j.run(jobCtx, j.done)
	return true
}

// Stop implements [ClientSyncJob].
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel, done := j.cancel, j.done
	j.cancel, j.done = nil, nil
	j.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (j *clientSyncJob) Trigger() {
	select {
	case j.trigger <- struct{}{}:
	default:
		// a re-run is already pending
	}
}

func (j *clientSyncJob) SetForeground(foreground bool) {
	if j.foreground.Swap(foreground) == foreground {
		return
	}
	select {
	case j.modeChanged <- struct{}{}:
	default:
	}
}

func (j *clientSyncJob) Running() bool {
	return j.running.Load()
}

func (j *clientSyncJob) OnAuthFailure(fn func(error)) {
	j.hookMu.Lock()
	defer j.hookMu.Unlock()
	j.onAuthFailure = fn
}

func (j *clientSyncJob) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer j.running.Store(false)

	j.runCycle(ctx)

	timer := time.NewTimer(j.nextDelay())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			j.runCycle(ctx)
		case <-j.trigger:
			j.runCycle(ctx)
		case <-j.modeChanged:
		}

		timer.Stop()
		// drain a tick that fired while a cycle ran
		select {
		case <-timer.C:
		default:
		}
		timer.Reset(j.nextDelay())
	}
}

// runCycle runs one sync cycle with capped exponential backoff. A cycle
// that exhausts its retries is abandoned until the next tick.
func (j *clientSyncJob) runCycle(ctx context.Context) {
	if err := j.pinger.Ping(ctx); err != nil {
		j.logger.Debug().Err(err).Msg("server unreachable, skipping sync tick")
		return
	}

	backoff := retry.WithMaxRetries(j.cfg.MaxRetries, retry.NewExponential(j.cfg.BackoffBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, err := j.syncService.PerformFullSync(ctx)
		if err == nil || errors.Is(err, ErrSessionUnauthorized) {
			return err
		}
		return retry.RetryableError(err)
	})

	switch {
	case err == nil:
	case errors.Is(err, ErrSessionUnauthorized):
		j.logger.Warn().Err(err).Msg("session rejected by server")
		j.hookMu.RLock()
		hook := j.onAuthFailure
		j.hookMu.RUnlock()
		if hook != nil {
			hook(err)
		}
	case errors.Is(err, context.Canceled):
	default:
		j.logger.Warn().Err(err).Msg("sync cycle abandoned until next tick")
	}
}

// nextDelay returns the current cadence shifted by up to ±Flex.
func (j *clientSyncJob) nextDelay() time.Duration {
	interval := j.cfg.BackgroundInterval
	if j.foreground.Load() {
		interval = j.cfg.ForegroundInterval
	}

	delay := interval + time.Duration(j.jitter()*float64(j.cfg.Flex))
	if delay <= 0 {
		delay = interval
	}
	return delay
}
