package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"spendbook/internal/core"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps domain errors onto HTTP status codes: validation
// failures are 422, missing records 404, duplicate categories 409.
// Anything else is a plain 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrEmptyCategory):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrDuplicateCategory):
		status = http.StatusConflict
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("malformed request body: %w", err)
	}
	return nil
}

// monthParam reads the optional ?month=YYYY-MM query parameter,
// falling back to fallback when absent.
func monthParam(r *http.Request, fallback core.Month) (core.Month, error) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		return fallback, nil
	}
	m, err := core.ParseMonth(raw)
	if err != nil {
		return core.Month{}, fmt.Errorf("invalid month %q: expected YYYY-MM", raw)
	}
	return m, nil
}
