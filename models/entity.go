// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SyncEntity identifies one of the independently synchronized sub-states
// of a user session.
type SyncEntity string

const (
	// EntityCart is the ordered list of cart lines.
	EntityCart SyncEntity = "cart"
	// EntityOrders is the ordered list of order summaries. It is
	// server-authoritative and never pushed by a client.
	EntityOrders SyncEntity = "orders"
	// EntityProfile is the single profile record of the user.
	EntityProfile SyncEntity = "profile"
)

// ErrUnknownEntity is returned by [ParseSyncEntity] for names outside the
// supported entity set.
var ErrUnknownEntity = errors.New("unknown sync entity")

// AllEntities lists every synchronized entity in the order a sync cycle
// reports them.
var AllEntities = []SyncEntity{EntityCart, EntityOrders, EntityProfile}

// ParseSyncEntity converts a wire name into a [SyncEntity].
func ParseSyncEntity(name string) (SyncEntity, error) {
	entity := SyncEntity(name)
	if !entity.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownEntity, name)
	}
	return entity, nil
}

// Valid reports whether e is one of the supported entities.
func (e SyncEntity) Valid() bool {
	switch e {
	case EntityCart, EntityOrders, EntityProfile:
		return true
	}
	return false
}

// HasChecksum reports whether the entity carries a checksum. Profile is a
// single record and is compared by timestamp alone.
func (e SyncEntity) HasChecksum() bool {
	return e == EntityCart || e == EntityOrders
}

// EmptyPayload returns the payload written when the entity is cleared or
// has never been populated.
func (e SyncEntity) EmptyPayload() json.RawMessage {
	if e == EntityProfile {
		return json.RawMessage(`{}`)
	}
	return json.RawMessage(`[]`)
}

func (e SyncEntity) String() string {
	return string(e)
}
