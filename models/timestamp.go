// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

const (
	// TimestampLayout is the wire format of every entity timestamp:
	// ISO-8601 in UTC with millisecond precision.
	TimestampLayout = "2006-01-02T15:04:05.000Z"

	// EpochTimestamp marks an entity that has never been populated.
	EpochTimestamp = "1970-01-01T00:00:00.000Z"
)

// FormatTimestamp renders t in [TimestampLayout].
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses an entity timestamp. Values in any RFC 3339 form are
// accepted. Empty or unparseable values are treated as the epoch so that a
// damaged timestamp always loses against a real one.
func ParseTimestamp(s string) time.Time {
	if s == "" {
		return time.Unix(0, 0).UTC()
	}
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC()
	}
	return time.Unix(0, 0).UTC()
}

// NormalizeTimestamp re-renders s in [TimestampLayout], truncating to
// milliseconds.
func NormalizeTimestamp(s string) string {
	return FormatTimestamp(ParseTimestamp(s).Truncate(time.Millisecond))
}

// CompareTimestamps returns -1 if a is before b, +1 if a is after b and 0 if
// they denote the same millisecond.
func CompareTimestamps(a, b string) int {
	ta := ParseTimestamp(a).Truncate(time.Millisecond)
	tb := ParseTimestamp(b).Truncate(time.Millisecond)
	return ta.Compare(tb)
}

// MaxTimestamp returns the later of a and b in normalized form.
func MaxTimestamp(a, b string) string {
	if CompareTimestamps(a, b) >= 0 {
		return NormalizeTimestamp(a)
	}
	return NormalizeTimestamp(b)
}
