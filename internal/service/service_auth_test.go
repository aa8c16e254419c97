// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/grocery-sync/internal/config"
	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/utils"
	"github.com/MKhiriev/grocery-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "grocery-sync-test"
)

func newTestAuthService() AuthService {
	return NewAuthService(config.App{TokenSignKey: testSignKey, TokenIssuer: testIssuer}, logger.Nop())
}

func TestAuthService_ParseToken_Valid(t *testing.T) {
	issued, err := utils.GenerateJWTToken(testIssuer, "user-1", models.RoleDriver, time.Hour, testSignKey)
	require.NoError(t, err)

	token, err := newTestAuthService().ParseToken(context.Background(), issued.SignedString)

	require.NoError(t, err)
	assert.Equal(t, "user-1", token.UserID)
	assert.Equal(t, models.Identity{UserID: "user-1", Role: models.RoleDriver}, token.Identity())
}

func TestAuthService_ParseToken_Rejected(t *testing.T) {
	wrongKey, err := utils.GenerateJWTToken(testIssuer, "user-1", models.RoleCustomer, time.Hour, "other-key")
	require.NoError(t, err)
	wrongIssuer, err := utils.GenerateJWTToken("someone-else", "user-1", models.RoleCustomer, time.Hour, testSignKey)
	require.NoError(t, err)
	expired, err := utils.GenerateJWTToken(testIssuer, "user-1", models.RoleCustomer, -time.Minute, testSignKey)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "wrong sign key", token: wrongKey.SignedString},
		{name: "wrong issuer", token: wrongIssuer.SignedString},
		{name: "expired", token: expired.SignedString},
		{name: "garbage", token: "not.a.jwt"},
		{name: "empty", token: ""},
	}

	svc := newTestAuthService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ParseToken(context.Background(), tt.token)
			assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
		})
	}
}
