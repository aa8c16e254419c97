// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/json"
	"testing"

	"github.com/MKhiriev/grocery-sync/models"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalJSON_Golden(t *testing.T) {
	g := goldie.New(t)

	cart := []models.CartItem{
		{ProductID: "P1", ProductName: "Milk & Honey <1L>", Quantity: 2, Price: 10},
		{ProductID: "P2", ProductName: "Bread", Quantity: 1, Price: 2.5},
	}
	got, err := CanonicalJSON(cart)
	require.NoError(t, err)
	g.Assert(t, "canonical_cart", got)

	profile := models.Profile{FullName: "Jane Doe", Phone: "+100", Address: "1 Main St", Email: "jane@example.com"}
	got, err = CanonicalJSON(profile)
	require.NoError(t, err)
	g.Assert(t, "canonical_profile", got)
}

func TestCanonicalJSON_KeyOrderAndNumbersDoNotMatter(t *testing.T) {
	a := json.RawMessage(`[ {"quantity": 2, "product_id": "P1", "price": 10.0} ]`)
	b := json.RawMessage(`[{"price":1e1,"product_id":"P1","quantity":2}]`)

	ca, err := CanonicalJSON(a)
	require.NoError(t, err)
	cb, err := CanonicalJSON(b)
	require.NoError(t, err)

	assert.Equal(t, string(ca), string(cb))
	assert.Equal(t, `[{"price":10,"product_id":"P1","quantity":2}]`, string(ca))
}

func TestChecksum(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{
			name:  "typed cart line",
			input: []models.CartItem{{ProductID: "P1", Quantity: 2, Price: 10}},
			want:  "535f2e5e5c4607f73ff6e1ea6b1c7a6d",
		},
		{
			name:  "same cart as raw json",
			input: json.RawMessage(`[{"product_id":"P1","quantity":2,"price":10.0}]`),
			want:  "535f2e5e5c4607f73ff6e1ea6b1c7a6d",
		},
		{
			name:  "empty list",
			input: []models.CartItem{},
			want:  "d751713988987e9331980363e24189ce",
		},
		{
			name:  "unserializable value",
			input: make(chan int),
			want:  "",
		},
		{
			name:  "malformed raw json",
			input: json.RawMessage(`[{"product_id":`),
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Checksum(tt.input))
		})
	}
}

func TestChecksumRaw_Empty(t *testing.T) {
	assert.Empty(t, ChecksumRaw(nil))
	assert.Empty(t, ChecksumRaw(json.RawMessage("  ")))
	assert.Equal(t, "d751713988987e9331980363e24189ce", ChecksumRaw(json.RawMessage(`[]`)))
}
