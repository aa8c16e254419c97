// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/grocery-sync/internal/validators"
	"github.com/MKhiriev/grocery-sync/models"
)

// SyncValidationService rejects malformed resolve requests before they
// reach the wrapped [SyncService].
type SyncValidationService struct {
	inner     SyncService
	validator validators.Validator
}

func NewSyncValidationService() SyncServiceWrapper {
	return &SyncValidationService{
		validator: validators.NewGroceryValidator(),
	}
}

func (v *SyncValidationService) GetSnapshot(ctx context.Context, userID string) (models.SyncSnapshot, error) {
	if strings.TrimSpace(userID) == "" {
		return models.SyncSnapshot{}, ErrInvalidDataProvided
	}
	return v.inner.GetSnapshot(ctx, userID)
}

func (v *SyncValidationService) Resolve(ctx context.Context, userID string, req models.ResolveRequest) (models.ConflictResolution, error) {
	if strings.TrimSpace(userID) == "" {
		return models.ConflictResolution{}, ErrInvalidDataProvided
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.ConflictResolution{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Resolve(ctx, userID, req)
}

func (v *SyncValidationService) Wrap(wrapped SyncService) SyncService {
	v.inner = wrapped
	return v
}
