package apperrors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorSerializesAsErrorBody(t *testing.T) {
	appErr := NewConflictError("Username or email already registered")

	body, err := json.Marshal(appErr)
	require.NoError(t, err)

	// The status code travels in the HTTP response line, never in the body.
	assert.JSONEq(t, `{"error":"Username or email already registered"}`, string(body))
	assert.Equal(t, "Username or email already registered", appErr.Error())
}

func TestAppErrorConstructorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code int
	}{
		{"bad request", NewBadRequestError("m"), http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("m"), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("m"), http.StatusForbidden},
		{"conflict", NewConflictError("m"), http.StatusConflict},
		{"internal", NewInternalServerError("m"), http.StatusInternalServerError},
		{"bad gateway", NewBadGatewayError("m"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, "m", tt.err.Message)
		})
	}
}
