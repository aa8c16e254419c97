// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"strings"
)

// EventName is the tag of a realtime event; it selects the payload type.
type EventName string

const (
	EventCartUpdated           EventName = "cart_updated"
	EventOrderCreated          EventName = "order_created"
	EventOrderStatusChanged    EventName = "order_status_changed"
	EventOrderAssigned         EventName = "order_assigned"
	EventStockChanged          EventName = "stock_changed"
	EventDriverLocationUpdated EventName = "driver_location_updated"
)

// Envelope is the frame exchanged over the realtime connection.
type Envelope struct {
	Channel string          `json:"channel"`
	Event   EventName       `json:"event"`
	Payload json.RawMessage `json:"payload"`
	SentAt  string          `json:"sent_at,omitempty"`
}

// Event is implemented by every typed realtime payload.
type Event interface {
	EventName() EventName
}

// CartUpdated is published on the owner's cart channel whenever the server
// cart rows change.
type CartUpdated struct {
	UserID     string `json:"user_id"`
	TotalItems int    `json:"total_items"`
	UpdatedAt  string `json:"updated_at"`
}

func (CartUpdated) EventName() EventName { return EventCartUpdated }

// OrderCreated is published on the owner's orders channel and the admin
// orders channel.
type OrderCreated struct {
	OrderID   string      `json:"order_id"`
	UserID    string      `json:"user_id"`
	Status    OrderStatus `json:"status"`
	Total     float64     `json:"total"`
	CreatedAt string      `json:"created_at"`
}

func (OrderCreated) EventName() EventName { return EventOrderCreated }

// OrderStatusChanged is published on the owner's orders channel, the order
// tracking channel and the admin orders channel.
type OrderStatusChanged struct {
	OrderID   string      `json:"order_id"`
	UserID    string      `json:"user_id"`
	Status    OrderStatus `json:"status"`
	UpdatedAt string      `json:"updated_at"`
}

func (OrderStatusChanged) EventName() EventName { return EventOrderStatusChanged }

// OrderAssigned is published on the driver channel and the admin
// assignments channel.
type OrderAssigned struct {
	OrderID    string `json:"order_id"`
	UserID     string `json:"user_id"`
	DriverID   string `json:"driver_id"`
	AssignedAt string `json:"assigned_at"`
}

func (OrderAssigned) EventName() EventName { return EventOrderAssigned }

// StockChanged is published on the global products channel.
type StockChanged struct {
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
	UpdatedAt string `json:"updated_at"`
}

func (StockChanged) EventName() EventName { return EventStockChanged }

// DriverLocationUpdated is published on the order tracking channel.
type DriverLocationUpdated struct {
	OrderID    string  `json:"order_id"`
	DriverID   string  `json:"driver_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	RecordedAt string  `json:"recorded_at"`
}

func (DriverLocationUpdated) EventName() EventName { return EventDriverLocationUpdated }

// Channel names. Per-owner channels are "<kind>:<id>".
const (
	ProductsChannel         = "products"
	AdminOrdersChannel      = "admin:orders"
	AdminAssignmentsChannel = "admin:assignments"

	cartChannelPrefix     = "cart:"
	ordersChannelPrefix   = "orders:"
	trackingChannelPrefix = "tracking:"
	driverChannelPrefix   = "driver:"
)

func CartChannel(userID string) string { return cartChannelPrefix + userID }

func OrdersChannel(userID string) string { return ordersChannelPrefix + userID }

func TrackingChannel(orderID string) string { return trackingChannelPrefix + orderID }

func DriverChannel(driverID string) string { return driverChannelPrefix + driverID }

// ChannelKind splits a channel name into its kind and owner id. Global
// channels have an empty id.
func ChannelKind(channel string) (kind, id string) {
	if channel == ProductsChannel || channel == AdminOrdersChannel || channel == AdminAssignmentsChannel {
		return channel, ""
	}
	kind, id, found := strings.Cut(channel, ":")
	if !found {
		return channel, ""
	}
	return kind, id
}
