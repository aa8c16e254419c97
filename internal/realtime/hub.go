// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package realtime implements the event fanout between the server and the
// connected clients. The server side is a [Hub] of channel subscriptions
// served over websockets; the client side is a [Subscriber] that feeds
// decoded events into a [Dispatcher].
//
// Delivery is at-most-once: a subscriber whose queue is full misses the
// event, and nothing is replayed after a reconnect.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/grocery-sync/internal/config"
	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/utils"
	"github.com/MKhiriev/grocery-sync/models"
	"nhooyr.io/websocket"
)

const writeTimeout = 5 * time.Second

// Subscription is one connection's registration in the [Hub].
type Subscription struct {
	id       string
	channels []string
	frames   chan []byte

	closeOnce sync.Once
	dropped   atomic.Int64
}

func (s *Subscription) ID() string { return s.id }

func (s *Subscription) Channels() []string { return s.channels }

// Frames yields encoded envelopes. It is closed by [Hub.Unsubscribe].
func (s *Subscription) Frames() <-chan []byte { return s.frames }

// Dropped is the number of events this subscription missed because its
// queue was full.
func (s *Subscription) Dropped() int64 { return s.dropped.Load() }

// Hub is the server registry of channel subscriptions. Subscribe and
// Unsubscribe are its only mutators.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[string]*Subscription

	codec  *Codec
	buffer int
	ids    utils.IDGenerator

	logger *logger.Logger
}

func NewHub(cfg config.Realtime, codec *Codec, logger *logger.Logger) *Hub {
	buffer := cfg.SubscriberBuffer
	if buffer <= 0 {
		buffer = config.DefaultSubscriberBuffer
	}

	return &Hub{
		channels: make(map[string]map[string]*Subscription),
		codec:    codec,
		buffer:   buffer,
		ids:      utils.NewUUIDGenerator(),
		logger:   logger,
	}
}

// Subscribe registers a new subscription on channels.
func (h *Hub) Subscribe(channels ...string) *Subscription {
	sub := &Subscription{
		id:       h.ids.Generate(),
		channels: channels,
		frames:   make(chan []byte, h.buffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range channels {
		subs, ok := h.channels[ch]
		if !ok {
			subs = make(map[string]*Subscription)
			h.channels[ch] = subs
		}
		subs[sub.id] = sub
	}

	return sub
}

// Unsubscribe removes sub from every channel and closes its frame queue.
// Calling it twice is safe.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	for _, ch := range sub.channels {
		subs := h.channels[ch]
		delete(subs, sub.id)
		if len(subs) == 0 {
			delete(h.channels, ch)
		}
	}
	h.mu.Unlock()

	sub.closeOnce.Do(func() { close(sub.frames) })
}

// Subscribers returns the number of subscriptions on channel.
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

// Publish encodes event once and offers it to every subscriber of channel.
// It never blocks: a subscriber with a full queue misses the event.
func (h *Hub) Publish(ctx context.Context, channel string, event models.Event) {
	log := logger.FromContext(ctx)

	env, err := h.codec.Encode(channel, event)
	if err != nil {
		log.Err(err).Str("func", "*Hub.Publish").Str("channel", channel).Msg("failed to encode event")
		return
	}
	frame, err := json.Marshal(env)
	if err != nil {
		log.Err(err).Str("func", "*Hub.Publish").Str("channel", channel).Msg("failed to marshal envelope")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.channels[channel] {
		select {
		case sub.frames <- frame:
		default:
			sub.dropped.Add(1)
			h.logger.Debug().
				Str("channel", channel).
				Str("subscriber", sub.id).
				Str("event", string(env.Event)).
				Msg("subscriber queue full, event dropped")
		}
	}
}

// Serve subscribes conn to channels and writes every published frame to it
// until the peer goes away or ctx is cancelled.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, channels []string) error {
	sub := h.Subscribe(channels...)
	defer h.Unsubscribe(sub)

	h.logger.Debug().Str("subscriber", sub.id).Strs("channels", channels).Msg("realtime subscriber connected")

	// clients never send; CloseRead handles control frames and reports
	// the peer closing through ctx
	ctx = conn.CloseRead(ctx)

	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "")
			return nil
		case frame, ok := <-sub.Frames():
			if !ok {
				return nil
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Write(writeCtx, websocket.MessageText, frame)
			cancel()
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
		}
	}
}
