// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/grocery-sync/internal/adapter"
	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/store"
	"github.com/MKhiriev/grocery-sync/models"
	"golang.org/x/sync/errgroup"
)

// errLocalStateChanged marks an entity whose local state was rewritten by
// the UI while the cycle ran. The next cycle picks the new state up.
var errLocalStateChanged = errors.New("local state changed during sync")

type clientSyncService struct {
	stateStore store.LocalStateStore
	adapter    adapter.ServerAdapter

	now func() time.Time

	logger *logger.Logger
}

func NewClientSyncService(stateStore store.LocalStateStore, serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientSyncService {
	return &clientSyncService{
		stateStore: stateStore,
		adapter:    serverAdapter,
		now:        time.Now,
		logger:     logger,
	}
}

// entityOutcome is the result of reconciling one entity.
type entityOutcome struct {
	entity models.SyncEntity
	action models.ResolutionAction
	err    error
}

// PerformFullSync implements [ClientSyncService].
//
// Entities are reconciled concurrently. A failure of one never cancels the
// others, so the group is created without a derived context.
func (s *clientSyncService) PerformFullSync(ctx context.Context) (models.SyncSummary, error) {
	summary := models.SyncSummary{
		Actions: make(map[models.SyncEntity]models.ResolutionAction, len(models.AllEntities)),
		Errors:  []string{},
	}

	snapshot, err := s.adapter.GetSyncState(ctx)
	if err != nil {
		err = mapAdapterError(err)
		s.logger.Warn().Err(err).Msg("sync state fetch failed, skipping cycle")

		summary.Errors = append(summary.Errors, err.Error())
		summary.Timestamp = models.FormatTimestamp(s.now())
		return summary, fmt.Errorf("%w: %w", ErrSyncIncomplete, err)
	}

	var (
		mu       sync.Mutex
		outcomes = make([]entityOutcome, 0, len(models.AllEntities))
		g        errgroup.Group
	)
	for _, entity := range models.AllEntities {
		g.Go(func() error {
			action, err := s.syncEntity(ctx, entity, snapshot)

			mu.Lock()
			outcomes = append(outcomes, entityOutcome{entity: entity, action: action, err: err})
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	var authErr error
	// report in the fixed entity order
	for _, entity := range models.AllEntities {
		for _, o := range outcomes {
			if o.entity != entity {
				continue
			}

			switch {
			case o.err == nil:
				summary.MarkSynced(entity, o.action)
			case errors.Is(o.err, errLocalStateChanged):
				s.logger.Debug().Str("entity", entity.String()).Msg("entity left for the next cycle")
			default:
				s.logger.Warn().Err(o.err).Str("entity", entity.String()).Msg("entity sync failed")
				summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", entity, o.err))
				if authErr == nil && errors.Is(o.err, ErrSessionUnauthorized) {
					authErr = o.err
				}
			}
		}
	}

	summary.Timestamp = models.FormatTimestamp(s.now())

	s.logger.Info().
		Bool("cart_synced", summary.CartSynced).
		Bool("orders_synced", summary.OrdersSynced).
		Bool("profile_synced", summary.ProfileSynced).
		Int("errors", len(summary.Errors)).
		Msg("sync cycle finished")

	// the cycle counts once every entity was attempted; only a rejected
	// session is surfaced so the caller stops using it
	if authErr != nil {
		return summary, fmt.Errorf("%w: %w", ErrSyncIncomplete, authErr)
	}
	return summary, nil
}

// syncEntity reconciles one entity and persists the outcome with the later
// of the two timestamps.
func (s *clientSyncService) syncEntity(ctx context.Context, entity models.SyncEntity, snapshot models.SyncSnapshot) (models.ResolutionAction, error) {
	local, err := s.stateStore.GetEntityState(ctx, entity)
	if err != nil {
		return "", fmt.Errorf("read local state: %w", err)
	}

	server, err := snapshot.EntityState(entity)
	if err != nil {
		return "", err
	}

	action := DecideResolution(entity, local, server)
	target := models.MaxTimestamp(local.Timestamp, server.Timestamp)

	switch action {
	case models.ActionServerWins:
		return action, s.persist(ctx, entity, local, server.Items, target)

	case models.ActionLocalWins:
		resolution, err := s.adapter.Resolve(ctx, models.ResolveRequest{
			Entity:         entity,
			LocalState:     local.Items,
			LocalTimestamp: local.Timestamp,
		})
		if err != nil {
			// local state stays untouched and is pushed again next cycle
			return action, fmt.Errorf("push local state: %w", mapAdapterError(err))
		}

		target = models.MaxTimestamp(local.Timestamp, resolution.Timestamp)
		if resolution.Action == models.ActionServerWins {
			// another device got there first
			return resolution.Action, s.persist(ctx, entity, local, resolution.ResolvedState, target)
		}
		return action, s.touch(ctx, entity, local, target)

	default:
		return action, s.touch(ctx, entity, local, target)
	}
}

// touch advances the local timestamp to target without changing the
// payload. It writes nothing when the timestamp is already there.
func (s *clientSyncService) touch(ctx context.Context, entity models.SyncEntity, local models.EntityState, target string) error {
	if models.CompareTimestamps(local.Timestamp, target) == 0 {
		return nil
	}
	return s.persist(ctx, entity, local, local.Items, target)
}

func (s *clientSyncService) persist(ctx context.Context, entity models.SyncEntity, local models.EntityState, items json.RawMessage, timestamp string) error {
	if len(items) == 0 {
		items = entity.EmptyPayload()
	}

	saved, err := s.stateStore.CompareAndSaveEntityState(ctx, entity, local.Timestamp, items, timestamp)
	if err != nil {
		return fmt.Errorf("persist resolved state: %w", err)
	}
	if !saved {
		return errLocalStateChanged
	}
	return nil
}
