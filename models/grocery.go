// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CartItem is one line of a shopping cart. Lines keep their insertion
// order on both the device and the server.
type CartItem struct {
	// ProductID identifies the catalog product.
	ProductID string `json:"product_id"`

	// ProductName is a display copy of the product name taken when the line
	// was added.
	ProductName string `json:"product_name,omitempty"`

	// Quantity is the number of units; always positive for a stored line.
	Quantity int `json:"quantity"`

	// Price is the unit price at the time the line was added.
	Price float64 `json:"price"`
}

// OrderStatus is the delivery lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderSummary is the lightweight order view carried by the orders entity.
type OrderSummary struct {
	ID         string      `json:"id"`
	Status     OrderStatus `json:"status"`
	Total      float64     `json:"total"`
	ItemsCount int         `json:"items_count"`
	DriverID   string      `json:"driver_id,omitempty"`
	CreatedAt  string      `json:"created_at"`
	UpdatedAt  string      `json:"updated_at"`
}

// Order is the server record behind an [OrderSummary]: the summary plus its
// owner and the cart lines it was created from.
type Order struct {
	OrderSummary
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items,omitempty"`
}

// Profile is the single-valued profile record of a customer.
type Profile struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Email    string `json:"email"`
}

// DriverLocation is a position report posted by a delivery driver for an
// order in transit.
type DriverLocation struct {
	OrderID    string  `json:"order_id"`
	DriverID   string  `json:"driver_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	RecordedAt string  `json:"recorded_at"`
}

// StatusUpdate is the body of an order status change request.
type StatusUpdate struct {
	Status OrderStatus `json:"status"`
}

// AssignmentRequest is the body of an order-to-driver assignment request.
type AssignmentRequest struct {
	DriverID string `json:"driver_id"`
}

// StockUpdate is the body of a product stock change request.
type StockUpdate struct {
	Stock int `json:"stock"`
}
