// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/grocery-sync/models"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaBaseURL = "https://grocery-sync.local/schemas/"

var eventSchemas = map[models.EventName]string{
	models.EventCartUpdated:           "cart_updated.json",
	models.EventOrderCreated:          "order_created.json",
	models.EventOrderStatusChanged:    "order_status_changed.json",
	models.EventOrderAssigned:         "order_assigned.json",
	models.EventStockChanged:          "stock_changed.json",
	models.EventDriverLocationUpdated: "driver_location_updated.json",
}

// Codec turns typed events into envelopes and back. Incoming payloads are
// validated against the JSON schema of their event before decoding.
type Codec struct {
	schemas map[models.EventName]*jsonschema.Schema
	now     func() time.Time
}

// NewCodec compiles the embedded event schemas.
func NewCodec() (*Codec, error) {
	compiler := jsonschema.NewCompiler()

	for _, file := range eventSchemas {
		raw, err := schemaFS.ReadFile("schemas/" + file)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", file, err)
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("parse schema %s: %w", file, err)
		}
		if err = compiler.AddResource(schemaBaseURL+file, doc); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", file, err)
		}
	}

	schemas := make(map[models.EventName]*jsonschema.Schema, len(eventSchemas))
	for name, file := range eventSchemas {
		sch, err := compiler.Compile(schemaBaseURL + file)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", file, err)
		}
		schemas[name] = sch
	}

	return &Codec{schemas: schemas, now: time.Now}, nil
}

// Encode wraps event into an envelope addressed to channel.
func (c *Codec) Encode(channel string, event models.Event) (models.Envelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return models.Envelope{}, fmt.Errorf("marshal %s payload: %w", event.EventName(), err)
	}

	return models.Envelope{
		Channel: channel,
		Event:   event.EventName(),
		Payload: payload,
		SentAt:  models.FormatTimestamp(c.now()),
	}, nil
}

// Decode parses a frame, validates its payload and returns the typed event.
func (c *Codec) Decode(frame []byte) (models.Envelope, models.Event, error) {
	var env models.Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return models.Envelope{}, nil, fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}
	if env.Channel == "" {
		return models.Envelope{}, nil, fmt.Errorf("%w: empty channel", ErrInvalidEnvelope)
	}

	sch, ok := c.schemas[env.Event]
	if !ok {
		return env, nil, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Event)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(env.Payload))
	if err != nil {
		return env, nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	if err = sch.Validate(inst); err != nil {
		return env, nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	event, err := decodePayload(env.Event, env.Payload)
	if err != nil {
		return env, nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return env, event, nil
}

func decodePayload(name models.EventName, payload json.RawMessage) (models.Event, error) {
	switch name {
	case models.EventCartUpdated:
		return decodeAs[models.CartUpdated](payload)
	case models.EventOrderCreated:
		return decodeAs[models.OrderCreated](payload)
	case models.EventOrderStatusChanged:
		return decodeAs[models.OrderStatusChanged](payload)
	case models.EventOrderAssigned:
		return decodeAs[models.OrderAssigned](payload)
	case models.EventStockChanged:
		return decodeAs[models.StockChanged](payload)
	case models.EventDriverLocationUpdated:
		return decodeAs[models.DriverLocationUpdated](payload)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
}

func decodeAs[T models.Event](payload json.RawMessage) (models.Event, error) {
	var event T
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}
	return event, nil
}
