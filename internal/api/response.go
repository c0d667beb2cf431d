package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"influencerdash/internal/metrics"
)

// SuccessResponse wraps every successful JSON payload.
type SuccessResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

// ErrorPayload describes a failed request.
type ErrorPayload struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// ErrorResponse wraps every error payload.
type ErrorResponse struct {
	Status string       `json:"status"`
	Error  ErrorPayload `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, SuccessResponse{Status: "success", Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message, requestID string) {
	writeJSON(w, status, ErrorResponse{
		Status: "error",
		Error:  ErrorPayload{Code: code, Message: message, RequestID: requestID},
	})
}

func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidBody):
		return http.StatusBadRequest, "invalid_body"
	case errors.Is(err, ErrInvalidQuery),
		errors.Is(err, metrics.ErrFollowerRange),
		errors.Is(err, metrics.ErrNegativeRange),
		errors.Is(err, metrics.ErrDateRange):
		return http.StatusBadRequest, "invalid_filter"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
