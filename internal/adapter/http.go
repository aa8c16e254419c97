// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/grocery-sync/internal/config"
	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/utils"
	"github.com/MKhiriev/grocery-sync/models"
	"github.com/go-resty/resty/v2"
)

const (
	versionPath = "/api/version/"
	statePath   = "/api/sync/state"
	resolvePath = "/api/sync/resolve"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	signer *utils.Signer

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP/REST [ServerAdapter].
// adapterCfg.HTTPAddress may be a full URL or a bare "host:port"; the
// access token from adapterCfg is installed as the initial bearer token.
// appCfg.HashKey enables the HashSHA256 header on resolve requests.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	a := &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		signer: utils.NewSigner(appCfg.HashKey),
		logger: logger,
	}
	a.SetToken(adapterCfg.AccessToken)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. Surrounding whitespace is trimmed.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Ping implements [ServerAdapter].
func (h *httpServerAdapter) Ping(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Get(versionPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrServerUnavailable, err)
	}

	return mapHTTPError(resp)
}

// GetSyncState implements [ServerAdapter]. It calls GET /api/sync/state and
// unwraps the response envelope. A snapshot without its own timestamp gets
// the envelope timestamp.
func (h *httpServerAdapter) GetSyncState(ctx context.Context) (models.SyncSnapshot, error) {
	resp, err := h.authedRequest(ctx).Get(statePath)
	if err != nil {
		return models.SyncSnapshot{}, fmt.Errorf("%w: %w: %w", ErrSnapshotFetch, ErrServerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SyncSnapshot{}, fmt.Errorf("%w: %w", ErrSnapshotFetch, err)
	}

	envelope, err := decodeEnvelope[models.SyncSnapshot](resp.Body())
	if err != nil {
		return models.SyncSnapshot{}, fmt.Errorf("%w: %w", ErrSnapshotFetch, err)
	}

	snapshot := envelope.Data
	if snapshot.Timestamp == "" {
		snapshot.Timestamp = envelope.Timestamp
	}

	h.logger.Debug().
		Str("func", "httpServerAdapter.GetSyncState").
		Int("cart_items", len(snapshot.Cart.Items)).
		Int("orders", len(snapshot.Orders.Items)).
		Msg("sync state fetched")

	return snapshot, nil
}

// Resolve implements [ServerAdapter]. The body is serialized once so that
// the integrity signature covers exactly the bytes sent.
func (h *httpServerAdapter) Resolve(ctx context.Context, req models.ResolveRequest) (models.ConflictResolution, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return models.ConflictResolution{}, fmt.Errorf("marshal resolve request: %w", err)
	}

	r := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if signature := h.signer.Sign(body); signature != "" {
		r.SetHeader(utils.IntegrityHeader, signature)
	}

	resp, err := r.Post(resolvePath)
	if err != nil {
		return models.ConflictResolution{}, fmt.Errorf("resolve %s: %w: %w", req.Entity, ErrServerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ConflictResolution{}, fmt.Errorf("resolve %s: %w", req.Entity, err)
	}

	envelope, err := decodeEnvelope[models.ConflictResolution](resp.Body())
	if err != nil {
		return models.ConflictResolution{}, fmt.Errorf("resolve %s: %w", req.Entity, err)
	}

	return envelope.Data, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	r := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		r.SetAuthToken(token)
	}
	return r
}

func decodeEnvelope[T any](body []byte) (models.Response[T], error) {
	var envelope models.Response[T]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return envelope, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	if !envelope.Success {
		return envelope, fmt.Errorf("%w: %w", ErrDecodeResponse, errors.New("success flag is false"))
	}
	return envelope, nil
}
