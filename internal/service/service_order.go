// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/store"
	"github.com/MKhiriev/grocery-sync/internal/utils"
	"github.com/MKhiriev/grocery-sync/models"
)

type orderService struct {
	orderRepository    store.OrderRepository
	locationRepository store.DriverLocationRepository

	publisher EventPublisher
	ids       utils.IDGenerator
	now       func() time.Time

	logger *logger.Logger
}

func NewOrderService(storages *store.Storages, publisher EventPublisher, logger *logger.Logger) OrderService {
	if publisher == nil {
		publisher = nopPublisher{}
	}

	return &orderService{
		orderRepository:    storages.OrderRepository,
		locationRepository: storages.DriverLocationRepository,
		publisher:          publisher,
		ids:                utils.NewUUIDGenerator(),
		now:                time.Now,
		logger:             logger,
	}
}

// CreateOrder implements [OrderService]. Pricing is the plain sum of the
// cart lines.
func (o *orderService) CreateOrder(ctx context.Context, userID string) (models.Order, error) {
	at := o.now()

	order, err := o.orderRepository.CreateOrderFromCart(ctx, userID, o.ids.Generate(), at)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", userID).Msg("order creation failed")
		return models.Order{}, fmt.Errorf("create order: %w", err)
	}

	created := models.OrderCreated{
		OrderID:   order.ID,
		UserID:    userID,
		Status:    order.Status,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	}
	o.publisher.Publish(ctx, models.OrdersChannel(userID), created)
	o.publisher.Publish(ctx, models.AdminOrdersChannel, created)
	o.publisher.Publish(ctx, models.CartChannel(userID), models.CartUpdated{
		UserID:    userID,
		UpdatedAt: models.FormatTimestamp(at),
	})

	return order, nil
}

func (o *orderService) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, ErrInvalidOrderStatus
	}

	order, err := o.orderRepository.UpdateStatus(ctx, orderID, status, o.now())
	if err != nil {
		return models.Order{}, fmt.Errorf("update order status: %w", err)
	}

	changed := models.OrderStatusChanged{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Status:    order.Status,
		UpdatedAt: order.UpdatedAt,
	}
	o.publisher.Publish(ctx, models.OrdersChannel(order.UserID), changed)
	o.publisher.Publish(ctx, models.TrackingChannel(order.ID), changed)
	o.publisher.Publish(ctx, models.AdminOrdersChannel, changed)

	return order, nil
}

func (o *orderService) AssignDriver(ctx context.Context, orderID, driverID string) (models.Order, error) {
	order, err := o.orderRepository.AssignDriver(ctx, orderID, driverID, o.now())
	if err != nil {
		return models.Order{}, fmt.Errorf("assign driver: %w", err)
	}

	assigned := models.OrderAssigned{
		OrderID:    order.ID,
		UserID:     order.UserID,
		DriverID:   driverID,
		AssignedAt: order.UpdatedAt,
	}
	o.publisher.Publish(ctx, models.DriverChannel(driverID), assigned)
	o.publisher.Publish(ctx, models.AdminAssignmentsChannel, assigned)

	return order, nil
}

// ReportLocation implements [OrderService]. Admins may report for any
// order; drivers only for their own assignments.
func (o *orderService) ReportLocation(ctx context.Context, identity models.Identity, location models.DriverLocation) (models.DriverLocation, error) {
	if identity.Role != models.RoleAdmin {
		if identity.Role != models.RoleDriver {
			return models.DriverLocation{}, ErrAccessDenied
		}

		order, err := o.orderRepository.GetOrder(ctx, location.OrderID)
		if err != nil {
			return models.DriverLocation{}, fmt.Errorf("get order: %w", err)
		}
		if order.DriverID != identity.UserID {
			return models.DriverLocation{}, ErrAccessDenied
		}
		location.DriverID = identity.UserID
	}

	at := o.now()
	if err := o.locationRepository.SaveLocation(ctx, location, at); err != nil {
		return models.DriverLocation{}, fmt.Errorf("save driver location: %w", err)
	}
	location.RecordedAt = models.FormatTimestamp(at)

	o.publisher.Publish(ctx, models.TrackingChannel(location.OrderID), models.DriverLocationUpdated{
		OrderID:    location.OrderID,
		DriverID:   location.DriverID,
		Latitude:   location.Latitude,
		Longitude:  location.Longitude,
		RecordedAt: location.RecordedAt,
	})

	return location, nil
}

func (o *orderService) OrderOwner(ctx context.Context, orderID string) (string, string, error) {
	order, err := o.orderRepository.GetOrder(ctx, orderID)
	if err != nil {
		return "", "", fmt.Errorf("get order: %w", err)
	}
	return order.UserID, order.DriverID, nil
}
