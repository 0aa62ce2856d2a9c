package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	e := New("bad_amount", "amount must be a positive integer", http.StatusBadRequest)
	assert.Equal(t, "[bad_amount] amount must be a positive integer", e.Error())

	wrapped := Wrap("store_failure", "persistence failure", http.StatusInternalServerError, errors.New("conn reset"))
	assert.Contains(t, wrapped.Error(), "store_failure")
	assert.Contains(t, wrapped.Error(), "conn reset")
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("disk full")
	e := ErrStoreFailure(inner)

	assert.ErrorIs(t, e, inner)

	var appErr *AppError
	require.ErrorAs(t, fmt.Errorf("outer: %w", e), &appErr)
	assert.Equal(t, "store_failure", appErr.Code)
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"bad payload", ErrBadPayload("nickname must not be empty"), "bad_payload", http.StatusBadRequest},
		{"need twelve words", ErrNeedTwelveWords(), "need_12_words", http.StatusBadRequest},
		{"empty text", ErrEmptyText(), "empty_text", http.StatusBadRequest},
		{"bad amount", ErrBadAmount(), "bad_amount", http.StatusBadRequest},
		{"insufficient funds", ErrInsufficientFunds(), "insufficient_funds", http.StatusBadRequest},
		{"not found", ErrNotFound("wallet"), "not_found", http.StatusNotFound},
		{"rate limited", ErrRateLimitExceeded(), "rate_limited", http.StatusTooManyRequests},
		{"store failure", ErrStoreFailure(errors.New("boom")), "store_failure", http.StatusInternalServerError},
		{"internal", InternalError(errors.New("boom")), "internal_error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestErrNotFound_NamesEntity(t *testing.T) {
	assert.Equal(t, "wallet not found", ErrNotFound("wallet").Message)
	assert.Equal(t, "post not found", ErrNotFound("post").Message)
}
