package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustafakart000/hospital-backend/pkg/types"
)

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", types.NewValidationError(types.ErrCodeInvalidInput, "bad input"), http.StatusBadRequest},
		{"authentication", types.NewAuthenticationError(types.ErrCodeUnauthenticated, "no token"), http.StatusUnauthorized},
		{"authorization", types.NewAuthorizationError(types.ErrCodeForbidden, "wrong role"), http.StatusForbidden},
		{"not found", types.NewNotFoundError(types.ErrCodeNotFound, "missing"), http.StatusNotFound},
		{"conflict", types.NewConflictError(types.ErrCodeSlotTaken, "slot taken"), http.StatusConflict},
		{"internal", types.NewInternalError(types.ErrCodeInternalError, "boom", nil), http.StatusInternalServerError},
		{"unclassified error defaults to 404", errors.New("something unexpected"), http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			WriteError(recorder, tc.err)

			assert.Equal(t, tc.expected, recorder.Code)
			assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

			var body Error
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tc.expected, body.Status)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestWriteError_WrappedHospitalError(t *testing.T) {
	recorder := httptest.NewRecorder()
	inner := types.NewConflictError(types.ErrCodeAlreadyExists, "username is already registered")
	WriteError(recorder, errors.New("context: "+inner.Error()))

	// A plain error wrapping the text only is unclassified
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestWriteJSON(t *testing.T) {
	recorder := httptest.NewRecorder()
	WriteJSON(recorder, http.StatusCreated, &Message{Message: "done"})

	assert.Equal(t, http.StatusCreated, recorder.Code)

	var body Message
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "done", body.Message)
}
