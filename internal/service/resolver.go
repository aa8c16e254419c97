// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/grocery-sync/models"
)

// DecideResolution compares a local and a server state of entity.
//
// Identical non-empty checksums short-circuit to no_conflict. Orders are
// server-authoritative and otherwise always resolve to server_wins. Every
// other entity goes to the side with the later timestamp; equal timestamps
// are no_conflict.
//
// The decision is pure. Callers apply it: the client pushes or persists,
// the server replaces its copy.
func DecideResolution(entity models.SyncEntity, local, server models.EntityState) models.ResolutionAction {
	if local.Checksum != "" && local.Checksum == server.Checksum {
		return models.ActionNoConflict
	}

	if entity == models.EntityOrders {
		return models.ActionServerWins
	}

	switch models.CompareTimestamps(local.Timestamp, server.Timestamp) {
	case 1:
		return models.ActionLocalWins
	case -1:
		return models.ActionServerWins
	default:
		return models.ActionNoConflict
	}
}
