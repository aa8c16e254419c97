// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareTimestamps(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"equal", "2025-01-30T10:00:05.000Z", "2025-01-30T10:00:05.000Z", 0},
		{"before", "2025-01-30T10:00:00.000Z", "2025-01-30T10:00:05.000Z", -1},
		{"after", "2025-01-30T10:00:05.000Z", "2025-01-30T10:00:00.000Z", 1},
		{"rfc3339 without millis", "2025-01-30T10:00:05Z", "2025-01-30T10:00:05.000Z", 0},
		{"sub-millisecond difference is ignored", "2025-01-30T10:00:05.0001Z", "2025-01-30T10:00:05.000Z", 0},
		{"garbage counts as epoch", "not-a-time", EpochTimestamp, 0},
		{"empty counts as epoch", "", "2025-01-30T10:00:00.000Z", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareTimestamps(tt.a, tt.b))
		})
	}
}

func TestMaxTimestamp(t *testing.T) {
	assert.Equal(t, "2025-01-30T10:00:05.000Z", MaxTimestamp("2025-01-30T10:00:05Z", "2025-01-30T10:00:00.000Z"))
	assert.Equal(t, "2025-01-30T10:00:05.000Z", MaxTimestamp(EpochTimestamp, "2025-01-30T10:00:05.000Z"))
	assert.Equal(t, EpochTimestamp, MaxTimestamp("", ""))
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2025, 1, 30, 13, 0, 5, 123_456_789, time.FixedZone("MSK", 3*3600))
	assert.Equal(t, "2025-01-30T10:00:05.123Z", FormatTimestamp(ts))
}

func TestParseSyncEntity(t *testing.T) {
	for _, name := range []string{"cart", "orders", "profile"} {
		e, err := ParseSyncEntity(name)
		require.NoError(t, err)
		assert.Equal(t, name, e.String())
	}

	_, err := ParseSyncEntity("wishlist")
	assert.ErrorIs(t, err, ErrUnknownEntity)
}

func TestEmptyEntityState(t *testing.T) {
	cart := EmptyEntityState(EntityCart)
	assert.JSONEq(t, `[]`, string(cart.Items))
	assert.Equal(t, EpochTimestamp, cart.Timestamp)
	assert.Empty(t, cart.Checksum)

	profile := EmptyEntityState(EntityProfile)
	assert.JSONEq(t, `{}`, string(profile.Items))
}

func TestSyncSnapshot_EntityState(t *testing.T) {
	snapshot := SyncSnapshot{
		Cart: CartState{
			Items:     []CartItem{{ProductID: "P1", Quantity: 2, Price: 10}},
			UpdatedAt: "2025-01-30T10:00:00Z",
			Checksum:  "abc",
		},
		Orders:  OrdersState{},
		Profile: ProfileState{Data: &Profile{FullName: "Jane"}, UpdatedAt: "2025-01-30T09:00:00.000Z"},
	}

	cart, err := snapshot.EntityState(EntityCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"product_id":"P1","quantity":2,"price":10}]`, string(cart.Items))
	assert.Equal(t, "2025-01-30T10:00:00.000Z", cart.Timestamp)
	assert.Equal(t, "abc", cart.Checksum)

	orders, err := snapshot.EntityState(EntityOrders)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(orders.Items))
	assert.Equal(t, EpochTimestamp, orders.Timestamp)

	profile, err := snapshot.EntityState(EntityProfile)
	require.NoError(t, err)
	assert.JSONEq(t, `{"full_name":"Jane","phone":"","address":"","email":""}`, string(profile.Items))
	assert.Empty(t, profile.Checksum)

	_, err = snapshot.EntityState("wishlist")
	assert.ErrorIs(t, err, ErrUnknownEntity)
}

func TestSyncSummary_MarkSynced(t *testing.T) {
	var s SyncSummary
	s.MarkSynced(EntityOrders, ActionServerWins)

	assert.True(t, s.Synced(EntityOrders))
	assert.False(t, s.Synced(EntityCart))
	assert.Equal(t, ActionServerWins, s.Actions[EntityOrders])
	assert.False(t, s.Failed())
}

func TestChannelKind(t *testing.T) {
	kind, id := ChannelKind(CartChannel("u1"))
	assert.Equal(t, "cart", kind)
	assert.Equal(t, "u1", id)

	kind, id = ChannelKind(AdminOrdersChannel)
	assert.Equal(t, AdminOrdersChannel, kind)
	assert.Empty(t, id)

	kind, id = ChannelKind(TrackingChannel("o-1"))
	assert.Equal(t, "tracking", kind)
	assert.Equal(t, "o-1", id)
}
