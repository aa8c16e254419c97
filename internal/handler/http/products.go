// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/grocery-sync/internal/utils"
	"github.com/MKhiriev/grocery-sync/models"
)

func (h *Handler) updateStock(w http.ResponseWriter, r *http.Request) {
	productID, err := pathParam(r, "productID")
	if err != nil {
		writeError(w, r, "*Handler.updateStock", err)
		return
	}

	var update models.StockUpdate
	if err = h.decodeAndValidate(r, &update); err != nil {
		writeError(w, r, "*Handler.updateStock", err)
		return
	}

	changed, err := h.services.ProductService.UpdateStock(r.Context(), productID, update.Stock)
	if err != nil {
		writeError(w, r, "*Handler.updateStock", err)
		return
	}

	_, _ = utils.WriteSuccess(w, changed, http.StatusOK)
}
