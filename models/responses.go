// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Response is the JSON envelope wrapping every successful API payload.
//
// Timestamp is the server time at which the response was produced, rendered
// in [TimestampLayout].
type Response[T any] struct {
	Success   bool   `json:"success"`
	Data      T      `json:"data"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ErrorResponse is the JSON envelope returned for failed API calls.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// VersionInfo is returned by the unauthenticated version endpoint.
type VersionInfo struct {
	Version string `json:"version"`
	Date    string `json:"date,omitempty"`
	Commit  string `json:"commit,omitempty"`
}
