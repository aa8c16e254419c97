// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// IntegrityHeader carries the hex HMAC-SHA256 of a request body.
const IntegrityHeader = "HashSHA256"

// Signer computes keyed HMAC-SHA256 signatures of request bodies. Hashers
// are pooled to avoid an allocation per request. A Signer with an empty key
// is disabled: it signs nothing and accepts everything.
type Signer struct {
	key  []byte
	pool sync.Pool
}

// NewSigner returns a [Signer] for key.
func NewSigner(key string) *Signer {
	s := &Signer{key: []byte(key)}
	s.pool.New = func() any {
		return hmac.New(sha256.New, s.key)
	}
	return s
}

// Enabled reports whether a key was configured.
func (s *Signer) Enabled() bool {
	return s != nil && len(s.key) > 0
}

// Sign returns the hex signature of data, or "" when the signer is disabled.
func (s *Signer) Sign(data []byte) string {
	if !s.Enabled() {
		return ""
	}

	h := s.pool.Get().(hash.Hash)
	h.Reset()
	h.Write(data)
	sum := h.Sum(nil)
	h.Reset()
	s.pool.Put(h)

	return hex.EncodeToString(sum)
}

// Verify reports whether signature matches data. A disabled signer accepts
// any input.
func (s *Signer) Verify(data []byte, signature string) bool {
	if !s.Enabled() {
		return true
	}

	expected, err := hex.DecodeString(s.Sign(data))
	if err != nil {
		return false
	}
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	return hmac.Equal(expected, got)
}

// HashString computes a one-off hex HMAC-SHA256 of data with hashKey.
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}
