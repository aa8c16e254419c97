// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/MKhiriev/grocery-sync/internal/adapter"
	"github.com/MKhiriev/grocery-sync/internal/app"
	"github.com/stretchr/testify/assert"
)

func TestMapAdapterError(t *testing.T) {
	plain := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "unauthorized", err: fmt.Errorf("%w: token expired", adapter.ErrUnauthorized), want: ErrSessionUnauthorized},
		{name: "offline", err: fmt.Errorf("%w: dial tcp", adapter.ErrServerUnavailable), want: ErrServerOffline},
		{name: "forbidden", err: fmt.Errorf("%w: %s", adapter.ErrForbidden, app.MsgAccessDenied), want: ErrAccessDenied},
		{name: "bad request with known message", err: fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgInvalidDataProvided), want: ErrInvalidDataProvided},
		{name: "bad request with other message", err: fmt.Errorf("%w: %s", adapter.ErrBadRequest, "something else"), want: ErrRejectedByServer},
		{name: "unmapped", err: plain, want: plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapAdapterError(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err, "исходная ошибка остаётся в цепочке")
		})
	}

	assert.NoError(t, mapAdapterError(nil))
}
