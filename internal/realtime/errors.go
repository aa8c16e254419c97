// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import "errors"

var (
	ErrInvalidEnvelope  = errors.New("invalid realtime envelope")
	ErrUnknownEvent     = errors.New("unknown realtime event")
	ErrInvalidPayload   = errors.New("event payload does not match its schema")
	ErrChannelForbidden = errors.New("channel access denied")
	ErrUnknownChannel   = errors.New("unknown channel")
	ErrNoChannels       = errors.New("no channels requested")
	ErrNoSession        = errors.New("no session token")
)
