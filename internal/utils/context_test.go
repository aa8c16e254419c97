// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/grocery-sync/models"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestGetIdentityFromContext_Success(t *testing.T) {
	want := models.Identity{UserID: "u-42", Role: models.RoleDriver}
	ctx := WithIdentity(context.Background(), want)

	got, ok := GetIdentityFromContext(ctx)
	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	userID, ok := GetUserIDFromContext(ctx)
	if !ok || userID != "u-42" {
		t.Errorf("expected user u-42, got %q (ok=%v)", userID, ok)
	}
}

func TestGetIdentityFromContext_Missing(t *testing.T) {
	if _, ok := GetIdentityFromContext(context.Background()); ok {
		t.Error("expected ok=false for empty context")
	}
}

func TestGetIdentityFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), IdentityCtxKey, "u-42")
	if _, ok := GetIdentityFromContext(ctx); ok {
		t.Error("expected ok=false for wrong value type")
	}
}

func TestGetIdentityFromContext_EmptyUser(t *testing.T) {
	ctx := WithIdentity(context.Background(), models.Identity{Role: models.RoleAdmin})
	if _, ok := GetIdentityFromContext(ctx); ok {
		t.Error("expected ok=false for identity without user ID")
	}
}
