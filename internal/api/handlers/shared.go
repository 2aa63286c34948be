package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// parseJSON decodes a request body into the given request type.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("invalid JSON body: %w", err)
	}
	return req, nil
}

// asOfDate resolves the optional asOf query parameter, defaulting to today.
// The computation engines never read the clock themselves, so the boundary
// decides what "today" means exactly once per request.
func asOfDate(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("asOf")
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", raw)
}
