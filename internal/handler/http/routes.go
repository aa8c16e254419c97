// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/grocery-sync/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Get("/api/version/", h.getServerVersion)

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		// websocket upgrade must see the raw connection
		if h.hub != nil {
			r.Get("/api/realtime", h.subscribe)
		}

		r.Group(func(r chi.Router) {
			r.Use(withGZip)

			r.Get("/api/sync/state", h.getSyncState)
			r.With(h.checkIntegrity).Post("/api/sync/resolve", h.resolve)

			r.With(requireRole(models.RoleCustomer)).Post("/api/orders", h.createOrder)
			r.With(requireRole(models.RoleAdmin)).Patch("/api/orders/{orderID}/status", h.updateOrderStatus)
			r.With(requireRole(models.RoleAdmin)).Post("/api/orders/{orderID}/assign", h.assignDriver)
			r.With(requireRole(models.RoleDriver, models.RoleAdmin)).Post("/api/orders/{orderID}/location", h.reportLocation)

			r.With(requireRole(models.RoleAdmin)).Put("/api/products/{productID}/stock", h.updateStock)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
