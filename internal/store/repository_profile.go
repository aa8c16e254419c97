// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/models"
)

type profileRepository struct {
	*DB
	logger *logger.Logger
}

// NewProfileRepository constructs a [ProfileRepository] over db.
func NewProfileRepository(db *DB, logger *logger.Logger) ProfileRepository {
	return &profileRepository{DB: db, logger: logger}
}

func (r *profileRepository) GetProfile(ctx context.Context, userID string) (*models.Profile, time.Time, error) {
	epoch := time.Unix(0, 0).UTC()

	query, args, err := buildGetProfileQuery(userID)
	if err != nil {
		return nil, epoch, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		profile   models.Profile
		updatedAt time.Time
	)
	err = r.DB.QueryRowContext(ctx, query, args...).
		Scan(&profile.FullName, &profile.Phone, &profile.Address, &profile.Email, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, epoch, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "profileRepository.GetProfile").
			Str("user_id", userID).
			Msg("failed to read profile")
		return nil, epoch, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return &profile, updatedAt.UTC(), nil
}

func (r *profileRepository) UpsertProfile(ctx context.Context, userID string, profile models.Profile, updatedAt time.Time) error {
	query, args, err := buildUpsertProfileQuery(userID, profile, updatedAt)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var affected int64
	err = r.withRetry(ctx, func(ctx context.Context) error {
		res, execErr := r.DB.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		affected, execErr = res.RowsAffected()
		return execErr
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "profileRepository.UpsertProfile").
			Str("user_id", userID).
			Msg("failed to upsert profile")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	// the stored profile carries the same or a later stamp
	if affected == 0 {
		return ErrStaleWrite
	}

	return nil
}
