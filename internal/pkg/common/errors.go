package common

import (
	"errors"
	"net/http"
)

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"` // only populated in debug mode
}

// CustomError carries an error code and the HTTP status it maps to.
type CustomError struct {
	Code    string
	Message string
	Err     error
	Status  int
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is matches on the error code so wrapped copies compare equal to the sentinels below.
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	return ok && t.Code == e.Code
}

// NewError creates a CustomError.
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Wrap returns a copy of a sentinel error carrying the underlying cause.
func Wrap(sentinel *CustomError, err error) *CustomError {
	return NewError(sentinel.Code, sentinel.Message, sentinel.Status, err)
}

// AsCustomError extracts a CustomError, falling back to ErrInternalError.
func AsCustomError(err error) *CustomError {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce
	}
	return Wrap(ErrInternalError, err)
}

// ValidationError reports bad caller input.
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError creates a ValidationError.
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

const (
	// 4xx
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeRequestTimeout   = "REQUEST_TIMEOUT"
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"
	ErrCodeNoIngredients    = "NO_INGREDIENTS"

	// 5xx
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"
	ErrCodeFetchFailed        = "FETCH_FAILED"
	ErrCodeCacheDisabled      = "CACHE_DISABLED"
	ErrCodeCacheFull          = "CACHE_FULL"
	ErrCodeCacheMiss          = "CACHE_MISS"
)

var (
	ErrInvalidRequest   = NewError(ErrCodeInvalidRequest, "invalid request", http.StatusBadRequest, nil)
	ErrNotFound         = NewError(ErrCodeNotFound, "resource not found", http.StatusNotFound, nil)
	ErrMethodNotAllowed = NewError(ErrCodeMethodNotAllowed, "method not allowed", http.StatusMethodNotAllowed, nil)
	ErrRequestTimeout   = NewError(ErrCodeRequestTimeout, "request timed out", http.StatusRequestTimeout, nil)
	ErrTooManyRequests  = NewError(ErrCodeTooManyRequests, "too many requests", http.StatusTooManyRequests, nil)
	ErrNoIngredients    = NewError(ErrCodeNoIngredients, "no ingredient lines found", http.StatusUnprocessableEntity, nil)

	ErrInternalError      = NewError(ErrCodeInternalError, "internal server error", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "service unavailable", http.StatusServiceUnavailable, nil)
	ErrGatewayTimeout     = NewError(ErrCodeGatewayTimeout, "gateway timeout", http.StatusGatewayTimeout, nil)
	ErrFetchFailed        = NewError(ErrCodeFetchFailed, "failed to fetch recipe page", http.StatusBadGateway, nil)

	ErrCacheDisabled = NewError(ErrCodeCacheDisabled, "cache disabled", http.StatusServiceUnavailable, nil)
	ErrCacheFull     = NewError(ErrCodeCacheFull, "cache full", http.StatusServiceUnavailable, nil)
	ErrCacheMiss     = NewError(ErrCodeCacheMiss, "cache miss", http.StatusNotFound, nil)
)
