// Package handler provides the HTTP transport for the Hearth API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prn-tf/hearth/internal/domain"
)

// errorResponse is the uniform error body. Code is a stable,
// machine-readable string; Error is human-readable.
type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// writeError translates a domain error into an HTTP status and a stable
// error code.
func writeError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		// Internal details stay in the logs.
		message = "internal server error"
	}
	writeJSON(w, status, errorResponse{Code: code, Error: message})
}

// errorStatus maps domain errors to HTTP statuses.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrOwnerNotFound),
		errors.Is(err, domain.ErrListingNotFound),
		errors.Is(err, domain.ErrAmenityNotFound),
		errors.Is(err, domain.ErrReviewNotFound):
		return http.StatusNotFound, "not_found"

	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrTitleTaken),
		errors.Is(err, domain.ErrDuplicateReview):
		return http.StatusConflict, "conflict"

	case errors.Is(err, domain.ErrSelfReview),
		errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"

	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"

	case errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrPasswordUnset):
		return http.StatusBadRequest, "weak_password"

	case errors.Is(err, domain.ErrNoChanges):
		return http.StatusBadRequest, "no_changes"

	case domain.IsInvalidInput(err):
		return http.StatusBadRequest, "invalid_input"

	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// decodePayload deserializes a JSON object body into the field map the
// business layer consumes.
func decodePayload(r *http.Request) (map[string]any, error) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload == nil {
		return nil, &domain.ValidationError{
			Kind:   domain.ErrTypeMismatch,
			Field:  "Body",
			Reason: "must be a JSON object",
		}
	}
	return payload, nil
}
