// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/realtime"
	"github.com/MKhiriev/grocery-sync/internal/service"
	"github.com/MKhiriev/grocery-sync/internal/utils"
	"nhooyr.io/websocket"
)

// subscribe upgrades the request to a websocket and streams the events of
// the channels listed in the "channels" query parameter. Every channel is
// authorized before the upgrade; one forbidden channel rejects the request.
// Without the parameter the caller gets the default channels of its role.
func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		writeError(w, r, "*Handler.subscribe", service.ErrTokenIsExpiredOrInvalid)
		return
	}

	channels := realtime.ChannelsFor(identity)
	if raw := r.URL.Query().Get("channels"); raw != "" {
		parsed, err := realtime.ParseChannels(raw)
		if err != nil {
			writeError(w, r, "*Handler.subscribe", err)
			return
		}
		channels = parsed
	}

	for _, channel := range channels {
		if err := h.policy.Authorize(ctx, identity, channel); err != nil {
			writeError(w, r, "*Handler.subscribe", err)
			return
		}
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		// Accept has already written the response
		log.Err(err).Str("func", "*Handler.subscribe").Msg("websocket upgrade failed")
		return
	}
	defer conn.CloseNow()

	if err = h.hub.Serve(ctx, conn, channels); err != nil {
		log.Debug().Err(err).Str("func", "*Handler.subscribe").Msg("realtime subscriber gone")
	}
}
