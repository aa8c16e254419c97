// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/store"
	"github.com/MKhiriev/grocery-sync/internal/utils"
	"github.com/MKhiriev/grocery-sync/models"
	"golang.org/x/sync/errgroup"
)

// syncService is the server implementation of [SyncService].
type syncService struct {
	cartRepository    store.CartRepository
	orderRepository   store.OrderRepository
	profileRepository store.ProfileRepository

	publisher EventPublisher
	now       func() time.Time

	logger *logger.Logger
}

// NewSyncService constructs a [SyncService] over the cart, order and profile
// repositories of storages. A nil publisher disables event publishing.
func NewSyncService(storages *store.Storages, publisher EventPublisher, logger *logger.Logger) SyncService {
	if publisher == nil {
		publisher = nopPublisher{}
	}

	return &syncService{
		cartRepository:    storages.CartRepository,
		orderRepository:   storages.OrderRepository,
		profileRepository: storages.ProfileRepository,
		publisher:         publisher,
		now:               time.Now,
		logger:            logger,
	}
}

// GetSnapshot implements [SyncService]. The three entities are read
// concurrently and independently; the snapshot is stamped with the server
// time it was taken at.
func (s *syncService) GetSnapshot(ctx context.Context, userID string) (models.SyncSnapshot, error) {
	snapshot := models.SyncSnapshot{Timestamp: models.FormatTimestamp(s.now())}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cart, err := s.cartState(gctx, userID)
		snapshot.Cart = cart
		return err
	})
	g.Go(func() error {
		orders, err := s.ordersState(gctx, userID)
		snapshot.Orders = orders
		return err
	})
	g.Go(func() error {
		profile, err := s.profileState(gctx, userID)
		snapshot.Profile = profile
		return err
	})

	if err := g.Wait(); err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", userID).Msg("failed to build sync snapshot")
		return models.SyncSnapshot{}, fmt.Errorf("build sync snapshot: %w", err)
	}

	return snapshot, nil
}

// Resolve implements [SyncService].
//
// The pushed state is checked against the stored one with
// [DecideResolution]: the client may have lost a race with another device
// since it fetched. Only a local_wins outcome writes, and the write is
// conditional on the stored stamp still being older. A push that loses that
// race is answered with server_wins and the state that beat it.
func (s *syncService) Resolve(ctx context.Context, userID string, req models.ResolveRequest) (models.ConflictResolution, error) {
	log := logger.FromContext(ctx)

	server, err := s.entityState(ctx, userID, req.Entity)
	if err != nil {
		return models.ConflictResolution{}, err
	}

	local := models.EntityState{
		Items:     req.LocalState,
		Timestamp: models.NormalizeTimestamp(req.LocalTimestamp),
	}
	if req.Entity.HasChecksum() {
		local.Checksum = utils.ChecksumRaw(req.LocalState)
	}

	action := DecideResolution(req.Entity, local, server)
	log.Debug().
		Str("func", "*syncService.Resolve").
		Str("entity", req.Entity.String()).
		Str("local_timestamp", local.Timestamp).
		Str("server_timestamp", server.Timestamp).
		Str("action", string(action)).
		Msg("resolve decided")

	switch action {
	case models.ActionLocalWins:
		err = s.applyLocal(ctx, userID, req.Entity, local)
		if errors.Is(err, store.ErrStaleWrite) {
			log.Info().
				Str("func", "*syncService.Resolve").
				Str("entity", req.Entity.String()).
				Str("local_timestamp", local.Timestamp).
				Msg("newer state stored concurrently, push rejected")
			return s.currentServerState(ctx, userID, req.Entity)
		}
		if err != nil {
			return models.ConflictResolution{}, err
		}
		return models.ConflictResolution{Action: action, ResolvedState: local.Items, Timestamp: local.Timestamp}, nil
	case models.ActionServerWins:
		return models.ConflictResolution{Action: action, ResolvedState: server.Items, Timestamp: server.Timestamp}, nil
	default:
		return models.ConflictResolution{
			Action:        action,
			ResolvedState: server.Items,
			Timestamp:     models.MaxTimestamp(local.Timestamp, server.Timestamp),
		}, nil
	}
}

// currentServerState re-reads entity after a rejected conditional write.
func (s *syncService) currentServerState(ctx context.Context, userID string, entity models.SyncEntity) (models.ConflictResolution, error) {
	server, err := s.entityState(ctx, userID, entity)
	if err != nil {
		return models.ConflictResolution{}, err
	}
	return models.ConflictResolution{
		Action:        models.ActionServerWins,
		ResolvedState: server.Items,
		Timestamp:     server.Timestamp,
	}, nil
}

// entityState reads a single entity and projects it the same way the
// snapshot does.
func (s *syncService) entityState(ctx context.Context, userID string, entity models.SyncEntity) (models.EntityState, error) {
	var (
		snapshot models.SyncSnapshot
		err      error
	)

	switch entity {
	case models.EntityCart:
		snapshot.Cart, err = s.cartState(ctx, userID)
	case models.EntityOrders:
		snapshot.Orders, err = s.ordersState(ctx, userID)
	case models.EntityProfile:
		snapshot.Profile, err = s.profileState(ctx, userID)
	default:
		return models.EntityState{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, models.ErrUnknownEntity)
	}
	if err != nil {
		return models.EntityState{}, err
	}

	return snapshot.EntityState(entity)
}

func (s *syncService) applyLocal(ctx context.Context, userID string, entity models.SyncEntity, local models.EntityState) error {
	at := models.ParseTimestamp(local.Timestamp)

	switch entity {
	case models.EntityCart:
		var items []models.CartItem
		if err := json.Unmarshal(local.Items, &items); err != nil {
			return fmt.Errorf("%w: decode cart: %w", ErrInvalidDataProvided, err)
		}
		if err := s.cartRepository.ReplaceCart(ctx, userID, items, at); err != nil {
			return fmt.Errorf("replace cart: %w", err)
		}
		s.publisher.Publish(ctx, models.CartChannel(userID), models.CartUpdated{
			UserID:     userID,
			TotalItems: totalItems(items),
			UpdatedAt:  local.Timestamp,
		})
	case models.EntityProfile:
		var profile models.Profile
		if err := json.Unmarshal(local.Items, &profile); err != nil {
			return fmt.Errorf("%w: decode profile: %w", ErrInvalidDataProvided, err)
		}
		if err := s.profileRepository.UpsertProfile(ctx, userID, profile, at); err != nil {
			return fmt.Errorf("upsert profile: %w", err)
		}
	default:
		// orders never resolve to local_wins
		return fmt.Errorf("%w: %s is read-only", ErrInvalidDataProvided, entity)
	}

	return nil
}

func (s *syncService) cartState(ctx context.Context, userID string) (models.CartState, error) {
	items, updatedAt, err := s.cartRepository.GetCart(ctx, userID)
	if err != nil {
		return models.CartState{}, fmt.Errorf("get cart: %w", err)
	}
	if items == nil {
		items = []models.CartItem{}
	}

	return models.CartState{
		Items:      items,
		TotalItems: totalItems(items),
		TotalPrice: totalPrice(items),
		UpdatedAt:  models.FormatTimestamp(updatedAt),
		Checksum:   utils.Checksum(items),
	}, nil
}

func (s *syncService) ordersState(ctx context.Context, userID string) (models.OrdersState, error) {
	orders, err := s.orderRepository.GetOrders(ctx, userID)
	if err != nil {
		return models.OrdersState{}, fmt.Errorf("get orders: %w", err)
	}
	if orders == nil {
		orders = []models.OrderSummary{}
	}

	// the list is as new as its most recently touched order
	updatedAt := models.EpochTimestamp
	for _, order := range orders {
		updatedAt = models.MaxTimestamp(updatedAt, order.UpdatedAt)
	}

	return models.OrdersState{
		Items:     orders,
		Count:     len(orders),
		UpdatedAt: updatedAt,
		Checksum:  utils.Checksum(orders),
	}, nil
}

func (s *syncService) profileState(ctx context.Context, userID string) (models.ProfileState, error) {
	profile, updatedAt, err := s.profileRepository.GetProfile(ctx, userID)
	if err != nil {
		return models.ProfileState{}, fmt.Errorf("get profile: %w", err)
	}

	return models.ProfileState{Data: profile, UpdatedAt: models.FormatTimestamp(updatedAt)}, nil
}

func totalItems(items []models.CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

func totalPrice(items []models.CartItem) float64 {
	total := 0.0
	for _, item := range items {
		total += float64(item.Quantity) * item.Price
	}
	return total
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, models.Event) {}
