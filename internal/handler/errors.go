package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/BayanAljaar/greenpath/backend/internal/domain"
	"github.com/BayanAljaar/greenpath/backend/internal/nav"
)

// errorResponse is the JSON body returned for all error statuses.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes data as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps domain and navigation errors onto HTTP statuses:
// ErrNotFound → 404, ErrValidation → 422, InvalidStateError → 409, anything
// else → 500 with the detail kept out of the response body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ise *nav.InvalidStateError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error: errorDetail{Code: "not_found", Message: unwrapMessage(err)},
		})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: errorDetail{Code: "validation_error", Message: unwrapMessage(err)},
		})
	case errors.As(err, &ise):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error: errorDetail{Code: "invalid_state", Message: ise.Error()},
		})
	default:
		slog.ErrorContext(r.Context(), "internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: errorDetail{Code: "internal_error", Message: "internal error"},
		})
	}
}

// badRequest rejects a request before it reaches the service layer
// (e.g. missing or malformed body, bad path parameter).
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error: errorDetail{Code: "bad_request", Message: message},
	})
}

// unwrapMessage strips the wrapping prefixes from a sentinel error, keeping
// the trailing human-readable part: "service.TripService.Create: validation
// error: title is required" → "title is required", and a bare wrapped
// ErrNotFound → "not found".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

// storeErrMessage renders a best-effort persistence failure for response
// bodies; nil yields the empty string (omitted by omitempty).
func storeErrMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
