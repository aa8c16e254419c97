// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/store"
	"github.com/MKhiriev/grocery-sync/internal/validators"
	"github.com/MKhiriev/grocery-sync/models"
)

// ErrCartItemNotFound is returned by RemoveFromCart for a product that is
// not in the cart.
var ErrCartItemNotFound = errors.New("product is not in the cart")

type clientStateService struct {
	stateStore store.LocalStateStore
	job        ClientSyncJob
	validator  validators.Validator

	logger *logger.Logger
}

// NewClientStateService returns the UI-facing state writer. job receives a
// Trigger after every successful mutation and is stopped on Logout.
func NewClientStateService(stateStore store.LocalStateStore, job ClientSyncJob, logger *logger.Logger) ClientStateService {
	return &clientStateService{
		stateStore: stateStore,
		job:        job,
		validator:  validators.NewGroceryValidator(),
		logger:     logger,
	}
}

func (c *clientStateService) GetCart(ctx context.Context) ([]models.CartItem, error) {
	state, err := c.stateStore.GetEntityState(ctx, models.EntityCart)
	if err != nil {
		return nil, err
	}
	return decodeCart(state.Items)
}

func (c *clientStateService) GetOrders(ctx context.Context) ([]models.OrderSummary, error) {
	state, err := c.stateStore.GetEntityState(ctx, models.EntityOrders)
	if err != nil {
		return nil, err
	}

	orders := []models.OrderSummary{}
	if err = json.Unmarshal(state.Items, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (c *clientStateService) GetProfile(ctx context.Context) (models.Profile, error) {
	state, err := c.stateStore.GetEntityState(ctx, models.EntityProfile)
	if err != nil {
		return models.Profile{}, err
	}

	var profile models.Profile
	if err = json.Unmarshal(state.Items, &profile); err != nil {
		return models.Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	return profile, nil
}

func (c *clientStateService) SetCart(ctx context.Context, items []models.CartItem) error {
	if items == nil {
		items = []models.CartItem{}
	}
	if err := c.validator.Validate(ctx, items); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if _, err := c.stateStore.SaveEntityState(ctx, models.EntityCart, items, ""); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}

	c.requestSync()
	return nil
}

func (c *clientStateService) AddToCart(ctx context.Context, item models.CartItem) error {
	if err := c.validator.Validate(ctx, item); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	_, err := c.stateStore.MutateEntityState(ctx, models.EntityCart, func(current models.EntityState) (any, error) {
		items, err := decodeCart(current.Items)
		if err != nil {
			return nil, err
		}

		for i := range items {
			if items[i].ProductID == item.ProductID {
				items[i].Quantity += item.Quantity
				return items, nil
			}
		}
		return append(items, item), nil
	})
	if err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}

	c.requestSync()
	return nil
}

func (c *clientStateService) RemoveFromCart(ctx context.Context, productID string) error {
	_, err := c.stateStore.MutateEntityState(ctx, models.EntityCart, func(current models.EntityState) (any, error) {
		items, err := decodeCart(current.Items)
		if err != nil {
			return nil, err
		}

		kept := make([]models.CartItem, 0, len(items))
		for _, item := range items {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		if len(kept) == len(items) {
			return nil, ErrCartItemNotFound
		}
		return kept, nil
	})
	if err != nil {
		return fmt.Errorf("remove from cart: %w", err)
	}

	c.requestSync()
	return nil
}

func (c *clientStateService) UpdateProfile(ctx context.Context, profile models.Profile) error {
	if err := c.validator.Validate(ctx, profile); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if _, err := c.stateStore.SaveEntityState(ctx, models.EntityProfile, profile, ""); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	c.requestSync()
	return nil
}

// CompleteCheckout implements [ClientStateService]. The cart is reset to
// the never-populated state; the server cart emptied by order creation is
// newer and wins on the next cycle.
func (c *clientStateService) CompleteCheckout(ctx context.Context) error {
	if err := c.stateStore.ClearEntityState(ctx, models.EntityCart); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	c.requestSync()
	return nil
}

func (c *clientStateService) Logout(ctx context.Context) error {
	if c.job != nil {
		c.job.Stop()
	}

	if err := c.stateStore.ClearAll(ctx); err != nil {
		return fmt.Errorf("clear local state: %w", err)
	}

	c.logger.Info().Msg("local state wiped on logout")
	return nil
}

func (c *clientStateService) requestSync() {
	if c.job != nil {
		c.job.Trigger()
	}
}

func decodeCart(raw json.RawMessage) ([]models.CartItem, error) {
	items := []models.CartItem{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return items, nil
}
