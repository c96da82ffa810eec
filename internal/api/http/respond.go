package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/logger"
)

type errorBody struct {
	Error string `json:"error"`
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps a domain error to an HTTP status and writes it.
func writeError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		logger.Error("Unclassified error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
		return
	}

	var status int
	switch de.Kind {
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindInvalidRange:
		status = http.StatusBadRequest
	case domain.KindUnavailable, domain.KindConflict:
		status = http.StatusConflict
	case domain.KindStoreFailure:
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusInternalServerError
	}

	if status >= 500 {
		logger.Error("Request failed", "error", err)
	}
	writeJSON(w, status, errorBody{Error: de.Msg})
}
