// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/utils"
	"github.com/MKhiriev/grocery-sync/models"
)

const changesBuffer = 16

// entityKeys are the preference keys holding one entity. Profile has no
// checksum key.
type entityKeys struct {
	items, timestamp, checksum string
}

func keysFor(entity models.SyncEntity) entityKeys {
	switch entity {
	case models.EntityCart:
		return entityKeys{items: "cart_items", timestamp: "cart_timestamp", checksum: "cart_checksum"}
	case models.EntityOrders:
		return entityKeys{items: "orders_items", timestamp: "orders_timestamp", checksum: "orders_checksum"}
	default:
		return entityKeys{items: "profile_data", timestamp: "profile_timestamp"}
	}
}

func (k entityKeys) list() []string {
	if k.checksum == "" {
		return []string{k.items, k.timestamp}
	}
	return []string{k.items, k.timestamp, k.checksum}
}

// monotonicClock hands out millisecond timestamps that never repeat and
// never go backwards, even when the wall clock does.
type monotonicClock struct {
	now  func() time.Time
	last time.Time
}

func (c *monotonicClock) next() time.Time {
	t := c.now().UTC().Truncate(time.Millisecond)
	if !t.After(c.last) {
		t = c.last.Add(time.Millisecond)
	}
	c.last = t
	return t
}

// observe moves the clock past a timestamp written from elsewhere (server
// state), so the next local edit sorts after it.
func (c *monotonicClock) observe(ts string) {
	if t := models.ParseTimestamp(ts).Truncate(time.Millisecond); t.After(c.last) {
		c.last = t
	}
}

// localStateStore is the SQLite-backed [LocalStateStore]. Every entity is
// kept under a few rows of the preferences table and all access goes
// through one mutex.
type localStateStore struct {
	*DB
	logger *logger.Logger

	mu      sync.Mutex
	clock   monotonicClock
	changes chan models.SyncEntity
}

// NewLocalStateStore constructs a [LocalStateStore] over a migrated SQLite
// connection.
func NewLocalStateStore(db *DB, log *logger.Logger) LocalStateStore {
	return newLocalStateStore(db, log, time.Now)
}

func newLocalStateStore(db *DB, log *logger.Logger, now func() time.Time) *localStateStore {
	return &localStateStore{
		DB:      db,
		logger:  log,
		clock:   monotonicClock{now: now},
		changes: make(chan models.SyncEntity, changesBuffer),
	}
}

func (s *localStateStore) Changes() <-chan models.SyncEntity {
	return s.changes
}

func (s *localStateStore) notify(entities ...models.SyncEntity) {
	for _, e := range entities {
		select {
		case s.changes <- e:
		default:
		}
	}
}

func (s *localStateStore) SaveEntityState(ctx context.Context, entity models.SyncEntity, items any, timestamp string) (models.EntityState, error) {
	if !entity.Valid() {
		return models.EntityState{}, fmt.Errorf("%w: %q", models.ErrUnknownEntity, entity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveLocked(ctx, entity, items, timestamp)
}

func (s *localStateStore) GetEntityState(ctx context.Context, entity models.SyncEntity) (models.EntityState, error) {
	if !entity.Valid() {
		return models.EntityState{}, fmt.Errorf("%w: %q", models.ErrUnknownEntity, entity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readLocked(ctx, entity)
}

func (s *localStateStore) CompareAndSaveEntityState(
	ctx context.Context,
	entity models.SyncEntity,
	expectedTimestamp string,
	items any,
	timestamp string,
) (bool, error) {
	if !entity.Valid() {
		return false, fmt.Errorf("%w: %q", models.ErrUnknownEntity, entity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.readLocked(ctx, entity)
	if err != nil {
		return false, err
	}

	if models.CompareTimestamps(current.Timestamp, expectedTimestamp) != 0 {
		logger.FromContext(ctx).Debug().
			Str("func", "localStateStore.CompareAndSaveEntityState").
			Str("entity", entity.String()).
			Str("expected", expectedTimestamp).
			Str("actual", current.Timestamp).
			Msg("local state changed since it was read, skipping write")
		return false, nil
	}

	if _, err = s.saveLocked(ctx, entity, items, timestamp); err != nil {
		return false, err
	}
	return true, nil
}

func (s *localStateStore) MutateEntityState(ctx context.Context, entity models.SyncEntity, fn MutateFunc) (models.EntityState, error) {
	if !entity.Valid() {
		return models.EntityState{}, fmt.Errorf("%w: %q", models.ErrUnknownEntity, entity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.readLocked(ctx, entity)
	if err != nil {
		return models.EntityState{}, err
	}

	next, err := fn(current)
	if err != nil {
		return models.EntityState{}, err
	}

	return s.saveLocked(ctx, entity, next, "")
}

func (s *localStateStore) ClearEntityState(ctx context.Context, entity models.SyncEntity) error {
	if !entity.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownEntity, entity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	empty := models.EmptyEntityState(entity)
	return s.writeLocked(ctx, entity, empty)
}

func (s *localStateStore) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := make(map[string]string, 8)
	for _, entity := range models.AllEntities {
		for k, v := range preferenceValues(entity, models.EmptyEntityState(entity)) {
			values[k] = v
		}
	}

	if err := s.putLocked(ctx, values); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStateStore.ClearAll").
			Msg("failed to clear local state")
		return err
	}

	s.notify(models.AllEntities...)
	return nil
}

// saveLocked serializes items and writes the full triple. The caller holds s.mu.
func (s *localStateStore) saveLocked(ctx context.Context, entity models.SyncEntity, items any, timestamp string) (models.EntityState, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return models.EntityState{}, fmt.Errorf("%w: %w", ErrEncodingValue, err)
	}
	if bytes.Equal(raw, []byte("null")) {
		raw = entity.EmptyPayload()
	}

	if timestamp == "" {
		current, readErr := s.readLocked(ctx, entity)
		if readErr != nil {
			return models.EntityState{}, readErr
		}
		s.clock.observe(current.Timestamp)
		timestamp = models.FormatTimestamp(s.clock.next())
	} else {
		timestamp = models.NormalizeTimestamp(timestamp)
		s.clock.observe(timestamp)
	}

	state := models.EntityState{Items: raw, Timestamp: timestamp}
	if entity.HasChecksum() {
		state.Checksum = utils.ChecksumRaw(raw)
	}

	if err = s.writeLocked(ctx, entity, state); err != nil {
		return models.EntityState{}, err
	}
	return state, nil
}

func (s *localStateStore) writeLocked(ctx context.Context, entity models.SyncEntity, state models.EntityState) error {
	if err := s.putLocked(ctx, preferenceValues(entity, state)); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStateStore.writeLocked").
			Str("entity", entity.String()).
			Msg("failed to write entity state")
		return err
	}

	s.notify(entity)
	return nil
}

func preferenceValues(entity models.SyncEntity, state models.EntityState) map[string]string {
	keys := keysFor(entity)
	values := map[string]string{
		keys.items:     string(state.Items),
		keys.timestamp: state.Timestamp,
	}
	if keys.checksum != "" {
		values[keys.checksum] = state.Checksum
	}
	return values
}

// putLocked upserts values in a single transaction so a reader never sees
// a payload paired with a foreign timestamp or checksum.
func (s *localStateStore) putLocked(ctx context.Context, values map[string]string) error {
	query, args, err := buildPutPreferencesQuery(values)
	if err != nil {
		return err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

// readLocked loads the triple of entity. Missing rows yield the empty state;
// rows that do not decode are reported at warn level and also yield the
// empty state. Only I/O failures are returned as errors.
func (s *localStateStore) readLocked(ctx context.Context, entity models.SyncEntity) (models.EntityState, error) {
	log := logger.FromContext(ctx)
	keys := keysFor(entity)

	query, args, err := buildGetPreferencesQuery(keys.list()...)
	if err != nil {
		return models.EntityState{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "localStateStore.readLocked").
			Str("entity", entity.String()).
			Msg("failed to read entity state")
		return models.EntityState{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	values := make(map[string]string, 3)
	for rows.Next() {
		var key, value string
		if err = rows.Scan(&key, &value); err != nil {
			return models.EntityState{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		values[key] = value
	}
	if err = rows.Err(); err != nil {
		return models.EntityState{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	rawItems, hasItems := values[keys.items]
	if !hasItems {
		return models.EmptyEntityState(entity), nil
	}

	state, ok := decodeEntityState(entity, rawItems, values[keys.timestamp], values[keys.checksum])
	if !ok {
		log.Warn().
			Str("func", "localStateStore.readLocked").
			Str("entity", entity.String()).
			Msg("stored entity state is corrupt, falling back to empty state")
		return models.EmptyEntityState(entity), nil
	}

	return state, nil
}

func decodeEntityState(entity models.SyncEntity, rawItems, timestamp, checksum string) (models.EntityState, bool) {
	items := bytes.TrimSpace([]byte(rawItems))
	if !json.Valid(items) {
		return models.EntityState{}, false
	}

	wantOpen := byte('[')
	if entity == models.EntityProfile {
		wantOpen = '{'
	}
	if items[0] != wantOpen {
		return models.EntityState{}, false
	}

	if _, err := time.Parse(time.RFC3339Nano, timestamp); err != nil {
		return models.EntityState{}, false
	}

	state := models.EntityState{
		Items:     json.RawMessage(items),
		Timestamp: models.NormalizeTimestamp(timestamp),
	}
	if entity.HasChecksum() {
		state.Checksum = checksum
	}
	return state, true
}
