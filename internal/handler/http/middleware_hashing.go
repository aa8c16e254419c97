// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/utils"
)

// checkIntegrity verifies the [utils.IntegrityHeader] of the request against
// the HMAC-SHA256 of the raw body. It is a no-op when no hash key is
// configured. The body is restored for the next handler.
func (h *Handler) checkIntegrity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.signer.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)
		log.Debug().Str("func", "*Handler.checkIntegrity").Msg("checking hash begins")

		// read bytes from body
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, r, "*Handler.checkIntegrity", fmt.Errorf("read request body: %w", err))
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		hashFromRequest := r.Header.Get(utils.IntegrityHeader)
		if !h.signer.Verify(body, hashFromRequest) {
			log.Error().Str("func", "*Handler.checkIntegrity").
				Str("hash from request", hashFromRequest).
				Msg("hashes are not equal")
			writeError(w, r, "*Handler.checkIntegrity", ErrIntegrityCheckFailed)
			return
		}

		log.Debug().Str("func", "*Handler.checkIntegrity").Msg("hashes are equal")

		next.ServeHTTP(w, r)
	})
}
