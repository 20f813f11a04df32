package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"registro/internal/core"
	"registro/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors onto HTTP statuses: conflicts for state
// machine violations and duplicates, 404 for missing rows, 422 for bad input.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrInvalidState), errors.Is(err, core.ErrDuplicateEntry):
		status = http.StatusConflict
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case isValidationError(err):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "error", err)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func isValidationError(err error) bool {
	for _, target := range []error{
		core.ErrInvalidDate,
		core.ErrInvalidHours,
		core.ErrInvalidRate,
		core.ErrInvalidScore,
		core.ErrInvalidAmount,
		core.ErrEmptyMember,
		core.ErrEmptyCategory,
		core.ErrInvalidPrincipal,
		core.ErrInvalidInterestRate,
		core.ErrInvalidInstallments,
		core.ErrEmptyLoanName,
		core.ErrInvalidLoanDirection,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// decodeBody parses a JSON request body into dst, rejecting unknown fields.
// An empty body leaves dst at its zero value.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// badRequest reports a malformed request without going through the domain
// error mapping.
func badRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}
