// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/grocery-sync/internal/config"
	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/utils"
	"github.com/MKhiriev/grocery-sync/models"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"
	"nhooyr.io/websocket"
)

const (
	// Path is the websocket endpoint of the hub.
	Path = "/api/realtime"

	readLimit    = 64 << 10
	eventsBuffer = 16

	// maxReconnectDelay caps the reconnect backoff.
	maxReconnectDelay = 2 * time.Minute
)

// TokenSource provides the current session token.
type TokenSource interface {
	Token() string
}

// Subscriber is the client side of the fanout. It keeps one websocket to
// the hub open and hands decoded events to its [Dispatcher]. Failed
// connections are retried with a capped exponential backoff that starts
// over after every successful connect. The read and dispatch loops live in
// one errgroup tied to the subscriber lifetime.
type Subscriber struct {
	baseURL    string
	delay      time.Duration
	maxDelay   time.Duration
	wait       func(ctx context.Context, d time.Duration) bool
	tokens     TokenSource
	codec      *Codec
	dispatcher *Dispatcher

	mu     sync.Mutex
	cancel context.CancelFunc
	group  *errgroup.Group

	connected atomic.Bool

	logger *logger.Logger
}

func NewSubscriber(adapterCfg config.ClientAdapter, cfg config.ClientRealtime, tokens TokenSource, codec *Codec, dispatcher *Dispatcher, logger *logger.Logger) (*Subscriber, error) {
	baseURL, err := httpBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid realtime address: %w", err)
	}

	delay := cfg.ReconnectDelay
	if delay <= 0 {
		delay = config.DefaultReconnectDelay
	}

	return &Subscriber{
		baseURL:    baseURL,
		delay:      delay,
		maxDelay:   max(delay, maxReconnectDelay),
		wait:       sleep,
		tokens:     tokens,
		codec:      codec,
		dispatcher: dispatcher,
		logger:     logger,
	}, nil
}

func httpBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty address")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", errors.New("address must include host")
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// Start launches the subscription for the channels owned by the session.
// It is a no-op when already started.
func (s *Subscriber) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return nil
	}

	token := s.tokens.Token()
	if token == "" {
		return ErrNoSession
	}
	identity, err := utils.ParseUnverifiedIdentity(token)
	if err != nil {
		return fmt.Errorf("read session identity: %w", err)
	}
	channels := ChannelsFor(identity)

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	events := make(chan models.Event, eventsBuffer)

	g.Go(func() error { return s.connectLoop(gctx, channels, events) })
	g.Go(func() error { return s.dispatchLoop(gctx, events) })

	s.cancel = cancel
	s.group = g
	return nil
}

// Close stops both loops and waits for them.
func (s *Subscriber) Close() error {
	s.mu.Lock()
	cancel, g := s.cancel, s.group
	s.cancel, s.group = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	return g.Wait()
}

func (s *Subscriber) Connected() bool {
	return s.connected.Load()
}

func (s *Subscriber) connectLoop(ctx context.Context, channels []string, events chan<- models.Event) error {
	backoff := s.newBackoff()
	for {
		connected, err := s.session(ctx, channels, events)
		if ctx.Err() != nil {
			return nil
		}
		if connected {
			backoff = s.newBackoff()
		}

		delay, _ := backoff.Next()
		s.logger.Warn().Err(err).Dur("retry_in", delay).Msg("realtime connection lost")

		if !s.wait(ctx, delay) {
			return nil
		}
	}
}

func (s *Subscriber) newBackoff() retry.Backoff {
	return retry.WithCappedDuration(s.maxDelay, retry.NewExponential(s.delay))
}

// sleep waits for d and reports false when ctx ends first.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// session runs one connection until it fails. connected reports whether
// the dial succeeded.
func (s *Subscriber) session(ctx context.Context, channels []string, events chan<- models.Event) (connected bool, err error) {
	u := s.baseURL + Path + "?" + url.Values{"channels": {strings.Join(channels, ",")}}.Encode()

	header := http.Header{}
	header.Set("Authorization", "Bearer "+s.tokens.Token())

	conn, _, err := websocket.Dial(ctx, u, &websocket.DialOptions{HTTPHeader: header})
	if err != nil {
		return false, fmt.Errorf("dial hub: %w", err)
	}
	defer conn.CloseNow()
	conn.SetReadLimit(readLimit)

	s.connected.Store(true)
	defer s.connected.Store(false)

	s.logger.Info().Strs("channels", channels).Msg("realtime connected")
	s.dispatcher.connected(ctx)

	for {
		_, frame, err := conn.Read(ctx)
		if err != nil {
			return true, err
		}

		env, event, err := s.codec.Decode(frame)
		if err != nil {
			s.logger.Warn().Err(err).Str("channel", env.Channel).Msg("ignoring malformed realtime event")
			continue
		}

		select {
		case events <- event:
		case <-ctx.Done():
			return true, ctx.Err()
		}
	}
}

func (s *Subscriber) dispatchLoop(ctx context.Context, events <-chan models.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-events:
			s.dispatcher.Dispatch(ctx, event)
		}
	}
}
