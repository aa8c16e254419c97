// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/grocery-sync/internal/config"
	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/models"
)

// fixedClock always returns the same instant, forcing the store clock to
// step by one millisecond on every call.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestStateStore(t *testing.T, now func() time.Time) *localStateStore {
	t.Helper()

	cfg := config.ClientDB{DSN: filepath.Join(t.TempDir(), "nested", "state.db")}
	db, err := NewConnectSQLite(testContext(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate())

	return newLocalStateStore(db, logger.Nop(), now)
}

func putRaw(t *testing.T, s *localStateStore, values map[string]string) {
	t.Helper()
	require.NoError(t, s.putLocked(testContext(), values))
}

func TestLocalStateStore_EmptyByDefault(t *testing.T) {
	s := newTestStateStore(t, time.Now)

	for _, entity := range models.AllEntities {
		state, err := s.GetEntityState(testContext(), entity)
		require.NoError(t, err)
		assert.Equal(t, models.EmptyEntityState(entity), state, entity)
	}
}

func TestLocalStateStore_SaveAndGet(t *testing.T) {
	s := newTestStateStore(t, time.Now)
	ctx := testContext()

	items := []models.CartItem{{ProductID: "P1", Quantity: 2, Price: 10}}
	saved, err := s.SaveEntityState(ctx, models.EntityCart, items, "2025-01-30T10:00:05Z")
	require.NoError(t, err)

	assert.Equal(t, "2025-01-30T10:00:05.000Z", saved.Timestamp)
	assert.Equal(t, "535f2e5e5c4607f73ff6e1ea6b1c7a6d", saved.Checksum)

	got, err := s.GetEntityState(ctx, models.EntityCart)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
	assert.JSONEq(t, `[{"product_id":"P1","quantity":2,"price":10}]`, string(got.Items))
}

func TestLocalStateStore_ProfileHasNoChecksum(t *testing.T) {
	s := newTestStateStore(t, time.Now)
	ctx := testContext()

	_, err := s.SaveEntityState(ctx, models.EntityProfile, models.Profile{FullName: "Jane"}, "")
	require.NoError(t, err)

	got, err := s.GetEntityState(ctx, models.EntityProfile)
	require.NoError(t, err)
	assert.Empty(t, got.Checksum)
	assert.JSONEq(t, `{"full_name":"Jane","phone":"","address":"","email":""}`, string(got.Items))
}

func TestLocalStateStore_ClearSemantics(t *testing.T) {
	s := newTestStateStore(t, time.Now)
	ctx := testContext()

	_, err := s.SaveEntityState(ctx, models.EntityCart, []models.CartItem{{ProductID: "P1", Quantity: 1}}, "")
	require.NoError(t, err)

	require.NoError(t, s.ClearEntityState(ctx, models.EntityCart))

	got, err := s.GetEntityState(ctx, models.EntityCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(got.Items))
	assert.Equal(t, models.EpochTimestamp, got.Timestamp)
	assert.Empty(t, got.Checksum)
}

func TestLocalStateStore_ClearAll(t *testing.T) {
	s := newTestStateStore(t, time.Now)
	ctx := testContext()

	_, err := s.SaveEntityState(ctx, models.EntityCart, []models.CartItem{{ProductID: "P1", Quantity: 1}}, "")
	require.NoError(t, err)
	_, err = s.SaveEntityState(ctx, models.EntityProfile, models.Profile{FullName: "Jane"}, "")
	require.NoError(t, err)

	require.NoError(t, s.ClearAll(ctx))

	for _, entity := range models.AllEntities {
		got, err := s.GetEntityState(ctx, entity)
		require.NoError(t, err)
		assert.Equal(t, models.EmptyEntityState(entity), got, entity)
	}
}

func TestLocalStateStore_CorruptDataFallsBackToEmpty(t *testing.T) {
	s := newTestStateStore(t, time.Now)
	ctx := testContext()

	tests := []struct {
		name   string
		entity models.SyncEntity
		values map[string]string
	}{
		{
			name:   "truncated json",
			entity: models.EntityCart,
			values: map[string]string{"cart_items": `[{"product_id":`, "cart_timestamp": models.EpochTimestamp},
		},
		{
			name:   "object where list expected",
			entity: models.EntityOrders,
			values: map[string]string{"orders_items": `{}`, "orders_timestamp": "2025-01-30T10:00:00.000Z"},
		},
		{
			name:   "bad timestamp",
			entity: models.EntityProfile,
			values: map[string]string{"profile_data": `{}`, "profile_timestamp": "yesterday"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			putRaw(t, s, tt.values)

			got, err := s.GetEntityState(ctx, tt.entity)
			require.NoError(t, err)
			assert.Equal(t, models.EmptyEntityState(tt.entity), got)
		})
	}
}

func TestLocalStateStore_TimestampsStrictlyIncrease(t *testing.T) {
	s := newTestStateStore(t, fixedClock(time.Date(2025, 1, 30, 10, 0, 0, 0, time.UTC)))
	ctx := testContext()

	prev := models.EpochTimestamp
	for i := 0; i < 5; i++ {
		state, err := s.SaveEntityState(ctx, models.EntityCart, []models.CartItem{{ProductID: "P1", Quantity: i + 1}}, "")
		require.NoError(t, err)
		assert.Equal(t, 1, models.CompareTimestamps(state.Timestamp, prev), "write %d", i)
		prev = state.Timestamp
	}
}

func TestLocalStateStore_LocalEditSortsAfterServerState(t *testing.T) {
	// device clock lags behind the server
	s := newTestStateStore(t, fixedClock(time.Date(2025, 1, 30, 9, 0, 0, 0, time.UTC)))
	ctx := testContext()

	_, err := s.SaveEntityState(ctx, models.EntityCart, []models.CartItem{}, "2025-01-30T10:00:00.000Z")
	require.NoError(t, err)

	edited, err := s.MutateEntityState(ctx, models.EntityCart, func(models.EntityState) (any, error) {
		return []models.CartItem{{ProductID: "P1", Quantity: 1}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-30T10:00:00.001Z", edited.Timestamp)
}

func TestLocalStateStore_CompareAndSave(t *testing.T) {
	s := newTestStateStore(t, time.Now)
	ctx := testContext()

	first, err := s.SaveEntityState(ctx, models.EntityCart, []models.CartItem{}, "2025-01-30T10:00:00.000Z")
	require.NoError(t, err)

	ok, err := s.CompareAndSaveEntityState(ctx, models.EntityCart, "2025-01-30T09:00:00.000Z",
		[]models.CartItem{{ProductID: "P9", Quantity: 1}}, "2025-01-30T11:00:00.000Z")
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := s.GetEntityState(ctx, models.EntityCart)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	ok, err = s.CompareAndSaveEntityState(ctx, models.EntityCart, first.Timestamp,
		[]models.CartItem{{ProductID: "P9", Quantity: 1}}, "2025-01-30T11:00:00.000Z")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = s.GetEntityState(ctx, models.EntityCart)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-30T11:00:00.000Z", got.Timestamp)
}

func TestLocalStateStore_ConcurrentMutationsAreSerialized(t *testing.T) {
	s := newTestStateStore(t, time.Now)
	ctx := testContext()

	const writers = 20

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.MutateEntityState(ctx, models.EntityCart, func(current models.EntityState) (any, error) {
				var items []models.CartItem
				if err := json.Unmarshal(current.Items, &items); err != nil {
					return nil, err
				}
				return append(items, models.CartItem{ProductID: "P", Quantity: 1}), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.GetEntityState(ctx, models.EntityCart)
	require.NoError(t, err)

	var items []models.CartItem
	require.NoError(t, json.Unmarshal(got.Items, &items))
	assert.Len(t, items, writers)
}

func TestLocalStateStore_Changes(t *testing.T) {
	s := newTestStateStore(t, time.Now)

	_, err := s.SaveEntityState(testContext(), models.EntityProfile, models.Profile{}, "")
	require.NoError(t, err)

	select {
	case entity := <-s.Changes():
		assert.Equal(t, models.EntityProfile, entity)
	case <-time.After(time.Second):
		t.Fatal("no change notification")
	}
}

func TestLocalStateStore_UnknownEntity(t *testing.T) {
	s := newTestStateStore(t, time.Now)

	_, err := s.GetEntityState(testContext(), "wishlist")
	assert.ErrorIs(t, err, models.ErrUnknownEntity)
}
