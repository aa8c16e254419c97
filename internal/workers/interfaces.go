// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the long-lived background tasks of the client agent
// (the sync scheduler and the realtime subscriber) under one lifecycle.
package workers

import "context"

// Worker is a background task bound to a context.
//
// Run blocks until ctx is done or the worker fails and must release
// everything it started before returning.
type Worker interface {
	Run(ctx context.Context) error
}

// SyncJob is the part of the client scheduler the sync worker drives.
type SyncJob interface {
	Start(ctx context.Context) bool
	Stop()
}

// Subscription is the part of the realtime subscriber the realtime worker
// drives.
type Subscription interface {
	Start(ctx context.Context) error
	Close() error
}
