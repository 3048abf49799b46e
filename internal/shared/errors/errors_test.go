package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NewTooManyRequestsError("Daily AI limit reached", "0 of 5 remaining")
	assert.Equal(t, "too_many_requests: Daily AI limit reached (0 of 5 remaining)", err.Error())
	assert.Equal(t, http.StatusTooManyRequests, err.Code)

	plain := NewValidationError("identity is required")
	assert.Equal(t, "validation_error: identity is required", plain.Error())
	assert.Equal(t, http.StatusBadRequest, plain.Code)
}

func TestGetAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("consume usage: %w", NewTooManyRequestsError("limit reached"))

	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsTooManyRequestsError(wrapped))
	assert.False(t, IsValidationError(wrapped))
	assert.Nil(t, GetAppError(stderrors.New("redis: connection refused")))
}
