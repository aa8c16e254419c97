// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the headless device sync agent.
//
// It runs the sync scheduler and the realtime subscriber as workers under
// one process lifecycle and releases the local store on exit.
package client
