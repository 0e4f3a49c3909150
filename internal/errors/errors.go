package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAccountCreationFailed is returned when the store rejects a new account.
	ErrAccountCreationFailed = errors.New("User creation failed")
	// ErrHashingFailed is returned when a password cannot be hashed.
	ErrHashingFailed = errors.New("password hashing failed")
	// ErrAccountNotFound matches any AccountNotFoundError.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidCredentials is returned when the password does not match the stored hash.
	ErrInvalidCredentials = errors.New("Invalid password")
	// ErrMissingToken is returned when a guarded request carries no bearer token.
	ErrMissingToken = errors.New("missing or malformed token")
	// ErrInvalidToken is returned when a token fails signature or structure checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned when a correctly signed token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// AccountNotFoundError reports a failed (email, role) lookup. The role is part
// of the message shown to clients.
type AccountNotFoundError struct {
	Role string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("%s with this email not found", e.Role)
}

// Is lets errors.Is(err, ErrAccountNotFound) match.
func (e *AccountNotFoundError) Is(target error) bool {
	return target == ErrAccountNotFound
}

// DetailedError pairs a public category with the underlying cause.
type DetailedError struct {
	Kind  error
	Cause error
}

func (e *DetailedError) Error() string {
	return e.Kind.Error() + ": " + e.Cause.Error()
}

func (e *DetailedError) Unwrap() []error {
	return []error{e.Kind, e.Cause}
}

// Wrap attaches cause to the category kind.
func Wrap(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return &DetailedError{Kind: kind, Cause: cause}
}

// Details returns the diagnostic message for err, preferring the wrapped cause.
func Details(err error) string {
	var de *DetailedError
	if errors.As(err, &de) {
		return de.Cause.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Details    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:   e.Message,
		Code:    e.Code,
		Details: e.Details,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Client errors carry no
// details; server errors carry the underlying message for diagnostics.
func MapErrorToHTTP(err error) *HTTPError {
	var notFound *AccountNotFoundError
	switch {
	case errors.As(err, &notFound):
		return NewHTTPError(http.StatusBadRequest, notFound.Error(), "ACCOUNT_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrMissingToken):
		return NewHTTPError(http.StatusUnauthorized, ErrMissingToken.Error(), "MISSING_TOKEN")
	case errors.Is(err, ErrTokenExpired):
		return NewHTTPError(http.StatusUnauthorized, ErrTokenExpired.Error(), "TOKEN_EXPIRED")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidToken.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrHashingFailed):
		he := NewHTTPError(http.StatusInternalServerError, ErrAccountCreationFailed.Error(), "HASHING_FAILED")
		he.Details = Details(err)
		return he
	case errors.Is(err, ErrAccountCreationFailed):
		he := NewHTTPError(http.StatusInternalServerError, ErrAccountCreationFailed.Error(), "ACCOUNT_CREATION_FAILED")
		he.Details = Details(err)
		return he
	default:
		he := NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
		he.Details = Details(err)
		return he
	}
}
