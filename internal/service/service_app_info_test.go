// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/grocery-sync/internal/config"
	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService_ReturnsAppInfoServiceInterface(t *testing.T) {
	svc := NewAppInfoService(config.App{Version: "2.5.1"}, models.NewAppBuildInfo("", "", ""), logger.Nop())
	require.NotNil(t, svc)

	var _ AppInfoService = svc
}

// ─────────────────────────────────────────────
// GetAppVersion
// ─────────────────────────────────────────────

func TestAppInfoService_GetAppVersion(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		build      models.AppBuildInfo
		want       models.VersionInfo
	}{
		{
			name:       "configured version wins",
			configured: "1.0.0",
			build:      models.NewAppBuildInfo("0.9.0", "2026-01-01", "abc123"),
			want:       models.VersionInfo{Version: "1.0.0", Date: "2026-01-01", Commit: "abc123"},
		},
		{
			name:       "build version used when nothing configured",
			configured: "",
			build:      models.NewAppBuildInfo("0.9.0", "2026-01-01", "abc123"),
			want:       models.VersionInfo{Version: "0.9.0", Date: "2026-01-01", Commit: "abc123"},
		},
		{
			name:       "nothing known",
			configured: "",
			build:      models.NewAppBuildInfo("", "", ""),
			want:       models.VersionInfo{Version: "N/A", Date: "N/A", Commit: "N/A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAppInfoService(config.App{Version: tt.configured}, tt.build, logger.Nop())
			assert.Equal(t, tt.want, svc.GetAppVersion(context.Background()))
		})
	}
}

func TestAppInfoService_GetAppVersion_Stable(t *testing.T) {
	svc := NewAppInfoService(config.App{Version: "3.0.0"}, models.NewAppBuildInfo("", "", ""), logger.Nop())

	first := svc.GetAppVersion(context.Background())
	second := svc.GetAppVersion(context.Background())
	assert.Equal(t, first, second)
}
