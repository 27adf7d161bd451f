// Package httputil translates coded domain errors into JSON HTTP responses.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "haven/pkg/domain-errors"
)

var statusByCode = map[dErrors.Code]int{
	dErrors.CodeBadRequest:      http.StatusBadRequest,
	dErrors.CodeValidation:      http.StatusBadRequest,
	dErrors.CodeInvalidInput:    http.StatusBadRequest,
	dErrors.CodeNotFound:        http.StatusNotFound,
	dErrors.CodeConflict:        http.StatusConflict,
	dErrors.CodeAlreadyRouted:   http.StatusConflict,
	dErrors.CodeUnauthorized:    http.StatusUnauthorized,
	dErrors.CodeDependencyFetch: http.StatusBadGateway,
	dErrors.CodeEncryption:      http.StatusInternalServerError,
	dErrors.CodeDecryption:      http.StatusBadRequest,
}

// ToHTTPStatus maps a domain error code to an HTTP status. Unknown codes
// map to 500 so new codes fail safe.
func ToHTTPStatus(code dErrors.Code) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// errorBody is the JSON error envelope used by every endpoint.
type errorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteError writes a coded error as a JSON response. Internal errors and
// encryption failures never expose their description to the caller.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := ToHTTPStatus(code)

	body := errorBody{Error: wireCode(code)}
	if status < http.StatusInternalServerError {
		var domainErr *dErrors.Error
		if errors.As(err, &domainErr) {
			body.Description = domainErr.Message
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSON writes a success payload with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func wireCode(code dErrors.Code) string {
	if code == dErrors.CodeInternal || code == dErrors.CodeEncryption {
		return "internal_error"
	}
	return string(code)
}
