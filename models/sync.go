// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
)

// EntityState is the generic per-entity sync unit: a serialized payload, the
// time it was last written and the checksum of the payload.
type EntityState struct {
	// Items is the serialized payload: a JSON array for cart and orders, a
	// JSON object for profile.
	Items json.RawMessage `json:"items"`

	// Timestamp is the last write time in [TimestampLayout].
	// [EpochTimestamp] means the entity was never populated.
	Timestamp string `json:"timestamp"`

	// Checksum is the lowercase hex MD5 of the canonical payload form.
	// Empty means "unknown" and is always treated as changed.
	Checksum string `json:"checksum"`
}

// EmptyEntityState returns the never-populated state of entity.
func EmptyEntityState(entity SyncEntity) EntityState {
	return EntityState{
		Items:     entity.EmptyPayload(),
		Timestamp: EpochTimestamp,
		Checksum:  "",
	}
}

// CartState is the cart slice of a [SyncSnapshot].
type CartState struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
	UpdatedAt  string     `json:"updated_at"`
	Checksum   string     `json:"checksum"`
}

// OrdersState is the orders slice of a [SyncSnapshot].
type OrdersState struct {
	Items     []OrderSummary `json:"items"`
	Count     int            `json:"count"`
	UpdatedAt string         `json:"updated_at"`
	Checksum  string         `json:"checksum"`
}

// ProfileState is the profile slice of a [SyncSnapshot]. Data is nil when
// the user has no profile yet.
type ProfileState struct {
	Data      *Profile `json:"data"`
	UpdatedAt string   `json:"updated_at"`
}

// SyncSnapshot is the server view of all entities returned in one round trip.
type SyncSnapshot struct {
	Cart      CartState    `json:"cart"`
	Orders    OrdersState  `json:"orders"`
	Profile   ProfileState `json:"profile"`
	Timestamp string       `json:"timestamp,omitempty"`
}

// EntityState projects one slice of the snapshot onto the generic
// [EntityState] shape used by conflict resolution.
func (s SyncSnapshot) EntityState(entity SyncEntity) (EntityState, error) {
	var (
		payload   any
		updatedAt string
		checksum  string
	)

	switch entity {
	case EntityCart:
		items := s.Cart.Items
		if items == nil {
			items = []CartItem{}
		}
		payload, updatedAt, checksum = items, s.Cart.UpdatedAt, s.Cart.Checksum
	case EntityOrders:
		items := s.Orders.Items
		if items == nil {
			items = []OrderSummary{}
		}
		payload, updatedAt, checksum = items, s.Orders.UpdatedAt, s.Orders.Checksum
	case EntityProfile:
		if s.Profile.Data == nil {
			payload = json.RawMessage(`{}`)
		} else {
			payload = s.Profile.Data
		}
		updatedAt = s.Profile.UpdatedAt
	default:
		return EntityState{}, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return EntityState{}, fmt.Errorf("marshal %s snapshot payload: %w", entity, err)
	}

	if updatedAt == "" {
		updatedAt = EpochTimestamp
	}

	return EntityState{Items: raw, Timestamp: NormalizeTimestamp(updatedAt), Checksum: checksum}, nil
}

// ResolutionAction is the outcome of comparing a local and a server state.
type ResolutionAction string

const (
	ActionLocalWins  ResolutionAction = "local_wins"
	ActionServerWins ResolutionAction = "server_wins"
	ActionNoConflict ResolutionAction = "no_conflict"
)

// ConflictResolution is produced per entity per cycle and never persisted.
type ConflictResolution struct {
	Action        ResolutionAction `json:"action"`
	ResolvedState json.RawMessage  `json:"resolved_state"`
	Timestamp     string           `json:"timestamp"`
}

// ResolveRequest is the body of the single-entity resolve endpoint.
type ResolveRequest struct {
	Entity         SyncEntity      `json:"entity"`
	LocalState     json.RawMessage `json:"local_state"`
	LocalTimestamp string          `json:"local_timestamp"`
}

// SyncSummary aggregates the outcome of one full sync pass.
type SyncSummary struct {
	CartSynced    bool                            `json:"cart_synced"`
	OrdersSynced  bool                            `json:"orders_synced"`
	ProfileSynced bool                            `json:"profile_synced"`
	Actions       map[SyncEntity]ResolutionAction `json:"actions"`
	Errors        []string                        `json:"errors"`
	Timestamp     string                          `json:"timestamp"`
}

// Synced reports whether entity was reconciled in this pass.
func (s SyncSummary) Synced(entity SyncEntity) bool {
	switch entity {
	case EntityCart:
		return s.CartSynced
	case EntityOrders:
		return s.OrdersSynced
	case EntityProfile:
		return s.ProfileSynced
	}
	return false
}

// MarkSynced records that entity was reconciled with action.
func (s *SyncSummary) MarkSynced(entity SyncEntity, action ResolutionAction) {
	if s.Actions == nil {
		s.Actions = make(map[SyncEntity]ResolutionAction, len(AllEntities))
	}
	s.Actions[entity] = action

	switch entity {
	case EntityCart:
		s.CartSynced = true
	case EntityOrders:
		s.OrdersSynced = true
	case EntityProfile:
		s.ProfileSynced = true
	}
}

// Failed reports whether the pass recorded any error.
func (s SyncSummary) Failed() bool {
	return len(s.Errors) > 0
}
