// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/grocery-sync/models"
)

// WriteJSON serializes data to JSON and writes it with statusCode and a
// "Content-Type: application/json" header.
//
// If marshaling fails, it responds with 500 Internal Server Error and returns
// a wrapped error. The returned int is the number of body bytes written.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteSuccess wraps data into a [models.Response] envelope stamped with the
// current server time and writes it with [WriteJSON].
func WriteSuccess[T any](w http.ResponseWriter, data T, statusCode int) (int, error) {
	return WriteJSON(w, models.Response[T]{
		Success:   true,
		Data:      data,
		Timestamp: models.FormatTimestamp(time.Now()),
	}, statusCode)
}

// WriteError writes a [models.ErrorResponse] envelope with message.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	_, _ = WriteJSON(w, models.ErrorResponse{Success: false, Error: message}, statusCode)
}
