// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/grocery-sync/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldProductID      = "product_id"
	FieldQuantity       = "quantity"
	FieldPrice          = "price"
	FieldEmail          = "email"
	FieldEntity         = "entity"
	FieldLocalState     = "local_state"
	FieldLocalTimestamp = "local_timestamp"
	FieldStatus         = "status"
	FieldOrderID        = "order_id"
	FieldDriverID       = "driver_id"
	FieldStock          = "stock"
	FieldCoordinates    = "coordinates"
)

// GroceryValidator implements [Validator] for cart lines, profiles, resolve
// requests and the order, stock and location mutations.
type GroceryValidator struct{}

// NewGroceryValidator returns a ready [GroceryValidator].
func NewGroceryValidator() Validator {
	return &GroceryValidator{}
}

// Validate implements [Validator]. Values and pointers are accepted.
func (v *GroceryValidator) Validate(ctx context.Context, data any, fields ...string) error {
	switch value := data.(type) {
	case models.CartItem:
		return v.validateCartItem(value, fields...)
	case *models.CartItem:
		return v.validateCartItem(*value, fields...)

	case []models.CartItem:
		return v.validateCart(value)

	case models.Profile:
		return v.validateProfile(value, fields...)
	case *models.Profile:
		return v.validateProfile(*value, fields...)

	case models.ResolveRequest:
		return v.validateResolveRequest(value, fields...)
	case *models.ResolveRequest:
		return v.validateResolveRequest(*value, fields...)

	case models.StatusUpdate:
		return v.validateStatusUpdate(value)
	case *models.StatusUpdate:
		return v.validateStatusUpdate(*value)

	case models.AssignmentRequest:
		return v.validateAssignment(value)
	case *models.AssignmentRequest:
		return v.validateAssignment(*value)

	case models.StockUpdate:
		return v.validateStockUpdate(value)
	case *models.StockUpdate:
		return v.validateStockUpdate(*value)

	case models.DriverLocation:
		return v.validateDriverLocation(value, fields...)
	case *models.DriverLocation:
		return v.validateDriverLocation(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *GroceryValidator) validateCartItem(item models.CartItem, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldProductID, FieldQuantity, FieldPrice}
	}

	for _, f := range fields {
		switch f {
		case FieldProductID:
			if strings.TrimSpace(item.ProductID) == "" {
				return ErrInvalidProductID
			}
		case FieldQuantity:
			if item.Quantity <= 0 {
				return ErrInvalidQuantity
			}
		case FieldPrice:
			if item.Price < 0 {
				return ErrInvalidPrice
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateCart checks every line. An empty cart is valid.
func (v *GroceryValidator) validateCart(items []models.CartItem) error {
	for i, item := range items {
		if err := v.validateCartItem(item); err != nil {
			return fmt.Errorf("validation error at index %d: %w", i, err)
		}
	}
	return nil
}

func (v *GroceryValidator) validateProfile(profile models.Profile, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			// optional, but must look like an address when present
			if profile.Email != "" && !strings.Contains(profile.Email, "@") {
				return ErrInvalidEmail
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *GroceryValidator) validateResolveRequest(req models.ResolveRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEntity, FieldLocalTimestamp, FieldLocalState}
	}

	for _, f := range fields {
		switch f {
		case FieldEntity:
			if !req.Entity.Valid() {
				return ErrInvalidEntity
			}
		case FieldLocalTimestamp:
			if _, err := time.Parse(time.RFC3339Nano, req.LocalTimestamp); err != nil {
				return fmt.Errorf("%w: %q", ErrInvalidTimestamp, req.LocalTimestamp)
			}
		case FieldLocalState:
			if err := v.validateLocalState(req.Entity, req.LocalState); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateLocalState decodes the pushed payload into the entity's shape and
// validates the decoded value.
func (v *GroceryValidator) validateLocalState(entity models.SyncEntity, raw json.RawMessage) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return ErrInvalidLocalState
	}

	switch entity {
	case models.EntityCart:
		var items []models.CartItem
		if trimmed[0] != '[' || json.Unmarshal(trimmed, &items) != nil {
			return ErrInvalidLocalState
		}
		return v.validateCart(items)
	case models.EntityOrders:
		var orders []models.OrderSummary
		if trimmed[0] != '[' || json.Unmarshal(trimmed, &orders) != nil {
			return ErrInvalidLocalState
		}
	case models.EntityProfile:
		var profile models.Profile
		if trimmed[0] != '{' || json.Unmarshal(trimmed, &profile) != nil {
			return ErrInvalidLocalState
		}
		return v.validateProfile(profile)
	default:
		return ErrInvalidEntity
	}

	return nil
}

func (v *GroceryValidator) validateStatusUpdate(update models.StatusUpdate) error {
	if !update.Status.Valid() {
		return ErrInvalidOrderStatus
	}
	return nil
}

func (v *GroceryValidator) validateAssignment(req models.AssignmentRequest) error {
	if strings.TrimSpace(req.DriverID) == "" {
		return ErrInvalidDriverID
	}
	return nil
}

func (v *GroceryValidator) validateStockUpdate(update models.StockUpdate) error {
	if update.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}

func (v *GroceryValidator) validateDriverLocation(location models.DriverLocation, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOrderID, FieldCoordinates}
	}

	for _, f := range fields {
		switch f {
		case FieldOrderID:
			if strings.TrimSpace(location.OrderID) == "" {
				return ErrInvalidOrderID
			}
		case FieldDriverID:
			if strings.TrimSpace(location.DriverID) == "" {
				return ErrInvalidDriverID
			}
		case FieldCoordinates:
			if location.Latitude < -90 || location.Latitude > 90 ||
				location.Longitude < -180 || location.Longitude > 180 {
				return ErrInvalidCoordinates
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
