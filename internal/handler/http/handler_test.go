// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/grocery-sync/internal/config"
	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/realtime"
	"github.com/MKhiriev/grocery-sync/internal/service"
	"github.com/MKhiriev/grocery-sync/internal/utils"
	"github.com/MKhiriev/grocery-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "grocery-sync-test"
	testHashKey = "test-hash-key"
)

// ─────────────────────────────────────────────
// fakes
// ─────────────────────────────────────────────

type fakeSyncService struct {
	getSnapshotFn func(ctx context.Context, userID string) (models.SyncSnapshot, error)
	resolveFn     func(ctx context.Context, userID string, req models.ResolveRequest) (models.ConflictResolution, error)
}

func (f *fakeSyncService) GetSnapshot(ctx context.Context, userID string) (models.SyncSnapshot, error) {
	return f.getSnapshotFn(ctx, userID)
}

func (f *fakeSyncService) Resolve(ctx context.Context, userID string, req models.ResolveRequest) (models.ConflictResolution, error) {
	return f.resolveFn(ctx, userID, req)
}

type fakeOrderService struct {
	createOrderFn    func(ctx context.Context, userID string) (models.Order, error)
	updateStatusFn   func(ctx context.Context, orderID string, status models.OrderStatus) (models.Order, error)
	assignDriverFn   func(ctx context.Context, orderID, driverID string) (models.Order, error)
	reportLocationFn func(ctx context.Context, identity models.Identity, location models.DriverLocation) (models.DriverLocation, error)

	// owners maps order id to {user, driver}
	owners map[string][2]string
}

func (f *fakeOrderService) CreateOrder(ctx context.Context, userID string) (models.Order, error) {
	return f.createOrderFn(ctx, userID)
}

func (f *fakeOrderService) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (models.Order, error) {
	return f.updateStatusFn(ctx, orderID, status)
}

func (f *fakeOrderService) AssignDriver(ctx context.Context, orderID, driverID string) (models.Order, error) {
	return f.assignDriverFn(ctx, orderID, driverID)
}

func (f *fakeOrderService) ReportLocation(ctx context.Context, identity models.Identity, location models.DriverLocation) (models.DriverLocation, error) {
	return f.reportLocationFn(ctx, identity, location)
}

func (f *fakeOrderService) OrderOwner(_ context.Context, orderID string) (string, string, error) {
	owner, ok := f.owners[orderID]
	if !ok {
		return "", "", errors.New("order was not found")
	}
	return owner[0], owner[1], nil
}

type fakeProductService struct {
	updateStockFn func(ctx context.Context, productID string, stock int) (models.StockChanged, error)
}

func (f *fakeProductService) UpdateStock(ctx context.Context, productID string, stock int) (models.StockChanged, error) {
	return f.updateStockFn(ctx, productID, stock)
}

type fakeAppInfoService struct {
	version string
}

func (f *fakeAppInfoService) GetAppVersion(context.Context) models.VersionInfo {
	return models.VersionInfo{Version: f.version}
}

// ─────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────

type testDeps struct {
	sync     *fakeSyncService
	orders   *fakeOrderService
	products *fakeProductService
	hub      *realtime.Hub
}

// newTestHandler builds a Handler over fakes with the real JWT auth
// service. hashKey enables the integrity check of the resolve route.
func newTestHandler(t *testing.T, hashKey string) (*Handler, *testDeps) {
	t.Helper()

	codec, err := realtime.NewCodec()
	require.NoError(t, err)

	deps := &testDeps{
		sync:     &fakeSyncService{},
		orders:   &fakeOrderService{owners: map[string][2]string{}},
		products: &fakeProductService{},
		hub:      realtime.NewHub(config.Realtime{}, codec, logger.Nop()),
	}

	services := &service.Services{
		AuthService:    service.NewAuthService(config.App{TokenSignKey: testSignKey, TokenIssuer: testIssuer}, logger.Nop()),
		SyncService:    deps.sync,
		OrderService:   deps.orders,
		ProductService: deps.products,
		AppInfoService: &fakeAppInfoService{version: "v1.2.3"},
	}

	return NewHandler(services, deps.hub, hashKey, logger.Nop()), deps
}

func bearer(t *testing.T, userID string, role models.Role) string {
	t.Helper()

	token, err := utils.GenerateJWTToken(testIssuer, userID, role, time.Hour, testSignKey)
	require.NoError(t, err)
	return "Bearer " + token.SignedString
}

func newRequest(t *testing.T, method, path, body string) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	return httptest.NewRequest(method, path, reader)
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

// do sends a request through the full router and returns the recorder.
func do(t *testing.T, h *Handler, method, path, auth, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := newRequest(t, method, path, body)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	return serve(h, req)
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler(t *testing.T) {
	svc := &service.Services{OrderService: &fakeOrderService{}}
	log := logger.Nop()

	h := NewHandler(svc, nil, "", log)

	require.NotNil(t, h)
	assert.Same(t, svc, h.services)
	assert.Same(t, log, h.logger)
	assert.NotNil(t, h.policy)
	assert.NotNil(t, h.validator)
	assert.False(t, h.signer.Enabled())
}

func TestNewHandler_HashKeyEnablesSigner(t *testing.T) {
	h := NewHandler(&service.Services{}, nil, testHashKey, logger.Nop())

	assert.True(t, h.signer.Enabled())
}

func TestNewHandler_IndependentInstances(t *testing.T) {
	h1 := NewHandler(&service.Services{}, nil, "", logger.Nop())
	h2 := NewHandler(&service.Services{}, nil, "", logger.Nop())

	assert.NotSame(t, h1, h2)
}

func TestVersion_NoAuthRequired(t *testing.T) {
	h, _ := newTestHandler(t, "")

	rec := do(t, h, http.MethodGet, "/api/version/", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), `"version":"v1.2.3"`)
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}
