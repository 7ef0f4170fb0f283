package switchbot

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrDeviceNotFound is returned by GetDevice when the listing has no such id
var ErrDeviceNotFound = errors.New("device not found")

// ValidationError reports a command parameter outside its allowed range or
// an unknown enumeration token.  It is raised before any request is built.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s [%s]: %s", e.Field, e.Value, e.Reason)
}

func newValidationError(field string, value interface{}, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Field:  field,
		Value:  fmt.Sprint(value),
		Reason: fmt.Sprintf(format, args...),
	}
}

// SigningError means the request could not be signed (bad secret, no clock)
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return "signing request: " + e.Err.Error()
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

// TransportError covers connection failures (StatusCode 0) and non-2xx HTTP
// responses from the API
type TransportError struct {
	StatusCode int
	Status     string
	Body       []byte
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("transport failure: %v", e.Err)
	}

	return fmt.Sprintf("non-2xx code from SwitchBot API: %d (%s): %s", e.StatusCode, e.Status, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DeserializationError means the response body did not have the expected shape
type DeserializationError struct {
	Payload []byte
	Err     error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("decoding SwitchBot response: %v: %s", e.Err, e.Payload)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// APIError is a well-formed response envelope carrying a failure status code
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("SwitchBot API error %d: %s", e.StatusCode, e.Message)
}
