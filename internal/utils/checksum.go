// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// CanonicalJSON returns the canonical serialization of v shared by the
// client and the server:
//   - object keys sorted lexicographically at every depth;
//   - no insignificant whitespace;
//   - no HTML escaping;
//   - numbers re-encoded from float64 in the encoding/json shortest form,
//     so 10, 10.0 and 1e1 all render as 10.
//
// v may be any JSON-marshalable value, including a json.RawMessage.
func CanonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal value: %w", err)
	}

	var generic any
	if err = json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// maps are encoded with sorted keys
	if err = enc.Encode(generic); err != nil {
		return nil, fmt.Errorf("encode canonical form: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Checksum returns the lowercase hex MD5 of the canonical form of v.
// It returns an empty string when v cannot be serialized; callers treat an
// empty checksum as "always changed".
func Checksum(v any) string {
	canonical, err := CanonicalJSON(v)
	if err != nil {
		return ""
	}

	sum := md5.Sum(canonical)
	return hex.EncodeToString(sum[:])
}

// ChecksumRaw is [Checksum] for an already-serialized payload. Empty input
// yields an empty checksum.
func ChecksumRaw(raw json.RawMessage) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return ""
	}
	return Checksum(raw)
}
