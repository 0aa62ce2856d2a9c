package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation ----

// ErrBadPayload reports a malformed or missing required field.
func ErrBadPayload(message string) *AppError {
	return New("bad_payload", message, http.StatusBadRequest)
}

// ErrNeedTwelveWords reports an import passphrase with the wrong word count.
func ErrNeedTwelveWords() *AppError {
	return New("need_12_words", "passphrase must contain exactly 12 words", http.StatusBadRequest)
}

// ErrEmptyText reports a wall post with no content after trimming.
func ErrEmptyText() *AppError {
	return New("empty_text", "post text must not be empty", http.StatusBadRequest)
}

// ---- Ledger ----

// ErrBadAmount reports a non-positive or non-numeric amount.
func ErrBadAmount() *AppError {
	return New("bad_amount", "amount must be a positive integer", http.StatusBadRequest)
}

// ErrInsufficientFunds reports a spend exceeding the wallet balance.
func ErrInsufficientFunds() *AppError {
	return New("insufficient_funds", "balance does not cover the amount", http.StatusBadRequest)
}

// ErrNotFound reports a missing record.
func ErrNotFound(entity string) *AppError {
	return New("not_found", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Rate Limiting ----

func ErrRateLimitExceeded() *AppError {
	return New("rate_limited", "rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure ----

// ErrStoreFailure wraps a persistence failure without leaking detail.
func ErrStoreFailure(err error) *AppError {
	return Wrap("store_failure", "persistence failure", http.StatusInternalServerError, err)
}

// InternalError wraps any internal error as a generic 500.
func InternalError(err error) *AppError {
	return Wrap("internal_error", "internal server error", http.StatusInternalServerError, err)
}
