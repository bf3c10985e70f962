package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mustafakart000/hospital-backend/pkg/types"
)

// Error is the JSON body returned for failed requests
type Error struct {
	Status    int       `json:"status"`
	Code      string    `json:"code,omitempty"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// WriteJSON writes v as a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// WriteError maps err to an HTTP status and writes an Error body.
// Unclassified errors surface as a not-found shaped response.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusNotFound
	code := ""
	message := err.Error()

	var herr *types.HospitalError
	if errors.As(err, &herr) {
		status = statusFor(herr.Type)
		code = herr.Code
		message = herr.Message
	}

	WriteJSON(w, status, &Error{
		Status:    status,
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// statusFor maps an error type to its HTTP status code
func statusFor(t types.ErrorType) int {
	switch t {
	case types.ErrorTypeValidation:
		return http.StatusBadRequest
	case types.ErrorTypeAuthentication:
		return http.StatusUnauthorized
	case types.ErrorTypeAuthorization:
		return http.StatusForbidden
	case types.ErrorTypeNotFound:
		return http.StatusNotFound
	case types.ErrorTypeConflict:
		return http.StatusConflict
	case types.ErrorTypeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusNotFound
	}
}

// Message is a plain confirmation body
type Message struct {
	Message string `json:"message"`
}
