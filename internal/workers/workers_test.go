// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// funcWorker adapts a function to [Worker].
type funcWorker func(ctx context.Context) error

func (f funcWorker) Run(ctx context.Context) error { return f(ctx) }

type fakeJob struct {
	started   atomic.Int32
	stopped   atomic.Int32
	alreadyOn bool
}

func (f *fakeJob) Start(context.Context) bool {
	f.started.Add(1)
	return !f.alreadyOn
}

func (f *fakeJob) Stop() { f.stopped.Add(1) }

type fakeSubscription struct {
	startErr error
	closeErr error
	started  atomic.Int32
	closed   atomic.Int32
}

func (f *fakeSubscription) Start(context.Context) error {
	f.started.Add(1)
	return f.startErr
}

func (f *fakeSubscription) Close() error {
	f.closed.Add(1)
	return f.closeErr
}

// runFor runs w until timeout passes and returns its error.
func runFor(t *testing.T, w Worker, timeout time.Duration) error {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout + 2*time.Second):
		t.Fatal("worker did not return after cancellation")
		return nil
	}
}

func TestWorkers_RunsAllUntilCancelled(t *testing.T) {
	var running atomic.Int32
	worker := funcWorker(func(ctx context.Context) error {
		running.Add(1)
		<-ctx.Done()
		return nil
	})

	err := runFor(t, NewWorkers(worker, worker, worker), 50*time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, int32(3), running.Load())
}

func TestWorkers_FirstFailureCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	var cancelled atomic.Bool

	failing := funcWorker(func(context.Context) error { return boom })
	waiting := funcWorker(func(ctx context.Context) error {
		<-ctx.Done()
		cancelled.Store(true)
		return nil
	})

	err := runFor(t, NewWorkers(waiting, failing), 5*time.Second)

	require.ErrorIs(t, err, boom)
	assert.True(t, cancelled.Load())
}

func TestWorkers_Empty(t *testing.T) {
	assert.NoError(t, NewWorkers().Run(context.Background()))
}

func TestSyncJobWorker_StartsAndStops(t *testing.T) {
	job := &fakeJob{}

	err := runFor(t, NewSyncJobWorker(job, logger.Nop()), 20*time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, int32(1), job.started.Load())
	assert.Equal(t, int32(1), job.stopped.Load())
}

func TestSyncJobWorker_AlreadyRunningStillStops(t *testing.T) {
	job := &fakeJob{alreadyOn: true}

	err := runFor(t, NewSyncJobWorker(job, logger.Nop()), 20*time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, int32(1), job.stopped.Load())
}

func TestRealtimeWorker(t *testing.T) {
	closeErr := errors.New("close failed")

	tests := []struct {
		name       string
		startErr   error
		closeErr   error
		wantErr    bool
		wantIs     error
		wantClosed int32
	}{
		{name: "runs until cancelled", wantClosed: 1},
		{name: "no session is not fatal", startErr: fmt.Errorf("wrap: %w", realtime.ErrNoSession)},
		{name: "start failure", startErr: errors.New("bad address"), wantErr: true},
		{name: "close failure", closeErr: closeErr, wantErr: true, wantIs: closeErr, wantClosed: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &fakeSubscription{startErr: tt.startErr, closeErr: tt.closeErr}

			err := runFor(t, NewRealtimeWorker(sub, logger.Nop()), 20*time.Millisecond)

			assert.Equal(t, int32(1), sub.started.Load())
			assert.Equal(t, tt.wantClosed, sub.closed.Load())
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}
