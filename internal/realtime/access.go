// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/grocery-sync/models"
)

// OrderOwnerLookup resolves who may watch an order.
type OrderOwnerLookup interface {
	OrderOwner(ctx context.Context, orderID string) (userID, driverID string, err error)
}

// AccessPolicy decides which channels a caller may subscribe to:
//   - customers: their own cart and orders channels and the tracking
//     channel of their orders;
//   - drivers: their own driver channel and the tracking channel of orders
//     assigned to them;
//   - admins: every channel.
//
// The products channel is open to everyone.
type AccessPolicy struct {
	orders OrderOwnerLookup
}

func NewAccessPolicy(orders OrderOwnerLookup) *AccessPolicy {
	return &AccessPolicy{orders: orders}
}

func (p *AccessPolicy) Authorize(ctx context.Context, identity models.Identity, channel string) error {
	kind, id := models.ChannelKind(channel)

	switch kind {
	case models.ProductsChannel:
		return nil
	case models.AdminOrdersChannel, models.AdminAssignmentsChannel:
		return p.require(identity.Role == models.RoleAdmin, channel)
	case "cart", "orders", "driver", "tracking":
		if id == "" {
			return fmt.Errorf("%w: %q", ErrUnknownChannel, channel)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownChannel, channel)
	}

	if identity.Role == models.RoleAdmin {
		return nil
	}

	switch kind {
	case "cart", "orders":
		return p.require(identity.Role == models.RoleCustomer && id == identity.UserID, channel)
	case "driver":
		return p.require(identity.Role == models.RoleDriver && id == identity.UserID, channel)
	default:
		userID, driverID, err := p.orders.OrderOwner(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: %q: %w", ErrChannelForbidden, channel, err)
		}
		switch identity.Role {
		case models.RoleCustomer:
			return p.require(userID == identity.UserID, channel)
		case models.RoleDriver:
			return p.require(driverID != "" && driverID == identity.UserID, channel)
		}
		return p.require(false, channel)
	}
}

func (p *AccessPolicy) require(allowed bool, channel string) error {
	if !allowed {
		return fmt.Errorf("%w: %q", ErrChannelForbidden, channel)
	}
	return nil
}

// ParseChannels splits a comma-separated channel list, dropping blanks and
// duplicates.
func ParseChannels(raw string) ([]string, error) {
	seen := make(map[string]struct{})
	var channels []string
	for _, ch := range strings.Split(raw, ",") {
		ch = strings.TrimSpace(ch)
		if ch == "" {
			continue
		}
		if _, dup := seen[ch]; dup {
			continue
		}
		seen[ch] = struct{}{}
		channels = append(channels, ch)
	}

	if len(channels) == 0 {
		return nil, ErrNoChannels
	}
	return channels, nil
}

// ChannelsFor returns the channels a client session subscribes to by
// default. Tracking channels are per order and are not included.
func ChannelsFor(identity models.Identity) []string {
	switch identity.Role {
	case models.RoleAdmin:
		return []string{models.AdminOrdersChannel, models.AdminAssignmentsChannel, models.ProductsChannel}
	case models.RoleDriver:
		return []string{models.DriverChannel(identity.UserID), models.ProductsChannel}
	default:
		return []string{
			models.CartChannel(identity.UserID),
			models.OrdersChannel(identity.UserID),
			models.ProductsChannel,
		}
	}
}
