// Package jsonutil writes the JSON bodies of the probe endpoints.
package jsonutil

import (
	"encoding/json"
	"net/http"
)

// JSON writes data as a JSON response with status. Probes are polled, so
// responses are marked uncacheable.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// OK writes a 200 OK JSON response.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

