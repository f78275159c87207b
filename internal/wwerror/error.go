package wwerror

import "net/http"

// Tags carried by rendered API errors.
const (
	TagInvalidParameters = "invalid-parameters"
	TagNotConfigured     = "not-configured"
	TagUpstream          = "upstream"
	TagNotAuthenticated  = "not-authenticated"
)

type (
	// A WWError represents the error format that can be rendered by the Whisperwall server.
	WWError struct {
		HTTPCode   int `json:"-"`
		FieldError err `json:"error"`
	}

	err struct {
		Tag     string `json:"tag,omitempty"`
		Message string `json:"message"`
		Hint    string `json:"hint,omitempty"`
	}
)

// StatusCode returns the HTTP status code.
func StatusCode(err error) int {
	if wwerr, ok := err.(*WWError); ok {
		return wwerr.HTTPCode
	}
	return http.StatusInternalServerError
}

// New returns a new WWError with the given message.
func New(message string) *WWError {
	return &WWError{FieldError: err{Message: message}}
}

// NewWithTagCode returns a new WWError with the given code, tag and message.
func NewWithTagCode(code int, tag, message string) *WWError {
	return &WWError{HTTPCode: code, FieldError: err{Tag: tag, Message: message}}
}

// Validation returns a 400 error for malformed or rejected input.
func Validation(message string) *WWError {
	return NewWithTagCode(http.StatusBadRequest, TagInvalidParameters, message)
}

// NotConfigured returns a 503 error for a missing external configuration.
func NotConfigured(message, hint string) *WWError {
	return NewWithTagCode(http.StatusServiceUnavailable, TagNotConfigured, message).WithHint(hint)
}

// Upstream returns a 400 error carrying an external service rejection.
func Upstream(message, hint string) *WWError {
	return NewWithTagCode(http.StatusBadRequest, TagUpstream, message).WithHint(hint)
}

// NotAuthenticated returns a 401 error for a missing bearer token.
func NotAuthenticated(message string) *WWError {
	return NewWithTagCode(http.StatusUnauthorized, TagNotAuthenticated, message)
}

// WithHint attaches a hint to the rendered error.
func (e *WWError) WithHint(hint string) *WWError {
	e.FieldError.Hint = hint
	return e
}

// Error implements error interface.
func (e *WWError) Error() string {
	return e.FieldError.Message
}
