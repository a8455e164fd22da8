package utils

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCodeSeesWrappedErrors(t *testing.T) {
	err := NewConflictError("slot taken")
	wrapped := fmt.Errorf("insert failed: %w", err)

	assert.True(t, HasCode(err, CodeConflict))
	assert.True(t, HasCode(wrapped, CodeConflict))
	assert.False(t, HasCode(wrapped, CodeNotFound))
	assert.False(t, HasCode(fmt.Errorf("plain"), CodeConflict))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NewNotFoundError("x"), http.StatusNotFound},
		{NewInvalidStateError("x"), http.StatusConflict},
		{NewConflictError("x"), http.StatusConflict},
		{NewValidationError("x"), http.StatusBadRequest},
		{NewForbiddenError("x"), http.StatusForbidden},
		{fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err))
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "a@b.c", "PATIENT", AuthTokenDuration)
	assert.NoError(t, err)

	sub, role, err := ExtractIdentityFromToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", sub)
	assert.Equal(t, "PATIENT", role)

	_, _, err = ExtractIdentityFromToken("not.a.token")
	assert.Error(t, err)

	assert.NotEmpty(t, HashToken(token))
	assert.NotEqual(t, HashToken(token), HashToken(token+"x"))
}
