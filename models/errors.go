package models

import "fmt"

// Error codes used in API responses and internal error handling.
const (
	ErrCodeNavigation   = "NAVIGATION_FAILED"
	ErrCodeBadStatus    = "BAD_STATUS"
	ErrCodeSearch       = "SEARCH_FAILED"
	ErrCodePriceTimeout = "PRICE_TIMEOUT"
	ErrCodeBrowserCrash = "BROWSER_CRASH"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CheckError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type CheckError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *CheckError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CheckError) Unwrap() error {
	return e.Err
}

// NewCheckError creates a new CheckError.
func NewCheckError(code, message string, err error) *CheckError {
	return &CheckError{Code: code, Message: message, Err: err}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *CheckError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}
