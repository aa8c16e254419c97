// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/service"
	"github.com/MKhiriev/grocery-sync/internal/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJob struct {
	service.ClientSyncJob
	hook func(error)
}

func (s *stubJob) OnAuthFailure(fn func(error)) { s.hook = fn }

type recordingCloser struct {
	name  string
	order *[]string
	err   error
}

func (r recordingCloser) Close() error {
	*r.order = append(*r.order, r.name)
	return r.err
}

type funcWorker func(ctx context.Context) error

func (f funcWorker) Run(ctx context.Context) error { return f(ctx) }

func waitWorker() workers.Worker {
	return funcWorker(func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})
}

func TestNewApp_RegistersAuthHook(t *testing.T) {
	job := &stubJob{}
	services := &service.ClientServices{SyncJob: job}

	app, err := NewApp(services, workers.NewWorkers(), logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, app)
	require.NotNil(t, job.hook)
	job.hook(service.ErrSessionUnauthorized)
}

func TestNewApp_MissingParts(t *testing.T) {
	_, err := NewApp(nil, workers.NewWorkers(), logger.Nop())
	assert.Error(t, err)

	_, err = NewApp(&service.ClientServices{SyncJob: &stubJob{}}, nil, logger.Nop())
	assert.Error(t, err)
}

func TestApp_RunClosesInReverseOrder(t *testing.T) {
	var order []string
	app, err := NewApp(
		&service.ClientServices{SyncJob: &stubJob{}},
		workers.NewWorkers(waitWorker()),
		logger.Nop(),
		recordingCloser{name: "store", order: &order},
		recordingCloser{name: "adapter", order: &order},
	)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	require.NoError(t, app.run(ctx))
	assert.Equal(t, []string{"adapter", "store"}, order)
}

func TestApp_RunReportsWorkerAndCloseErrors(t *testing.T) {
	boom := errors.New("boom")
	closeErr := errors.New("close failed")

	var order []string
	app, err := NewApp(
		&service.ClientServices{SyncJob: &stubJob{}},
		workers.NewWorkers(funcWorker(func(context.Context) error { return boom })),
		logger.Nop(),
		recordingCloser{name: "store", order: &order, err: closeErr},
	)
	require.NoError(t, err)

	err = app.run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, closeErr)
	assert.Equal(t, []string{"store"}, order)
}
