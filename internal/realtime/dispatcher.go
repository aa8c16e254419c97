// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"context"
	"sync"

	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/models"
)

// EventHandler reacts to one decoded event.
type EventHandler func(ctx context.Context, event models.Event)

// Dispatcher routes decoded events to the handlers registered for their
// name.
type Dispatcher struct {
	mu        sync.RWMutex
	handlers  map[models.EventName][]EventHandler
	onConnect []func(ctx context.Context)

	logger *logger.Logger
}

func NewDispatcher(logger *logger.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[models.EventName][]EventHandler),
		logger:   logger,
	}
}

// On registers h for events named name.
func (d *Dispatcher) On(name models.EventName, h EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = append(d.handlers[name], h)
}

// OnConnect registers fn to run after every successful (re)connect.
func (d *Dispatcher) OnConnect(fn func(ctx context.Context)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onConnect = append(d.onConnect, fn)
}

func (d *Dispatcher) Dispatch(ctx context.Context, event models.Event) {
	d.mu.RLock()
	handlers := d.handlers[event.EventName()]
	d.mu.RUnlock()

	if len(handlers) == 0 {
		d.logger.Debug().Str("event", string(event.EventName())).Msg("no handler for event")
		return
	}
	for _, h := range handlers {
		h(ctx, event)
	}
}

func (d *Dispatcher) connected(ctx context.Context) {
	d.mu.RLock()
	hooks := d.onConnect
	d.mu.RUnlock()

	for _, fn := range hooks {
		fn(ctx)
	}
}

// Triggerer requests an out-of-cycle sync.
type Triggerer interface {
	Trigger()
}

// NewSyncDispatcher returns a dispatcher that asks job for a sync whenever
// the server reports a cart or order change, and after every reconnect to
// catch up on events missed while offline.
func NewSyncDispatcher(job Triggerer, logger *logger.Logger) *Dispatcher {
	d := NewDispatcher(logger)

	trigger := func(ctx context.Context, event models.Event) {
		logger.Debug().Str("event", string(event.EventName())).Msg("server change announced, requesting sync")
		job.Trigger()
	}
	for _, name := range []models.EventName{
		models.EventCartUpdated,
		models.EventOrderCreated,
		models.EventOrderStatusChanged,
		models.EventOrderAssigned,
	} {
		d.On(name, trigger)
	}
	d.OnConnect(func(context.Context) { job.Trigger() })

	return d
}
