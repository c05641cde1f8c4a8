// Package errors provides the error kinds reported by the todo tools and
// thin helpers over the standard errors package.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds. Concrete errors match them with Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrRemote        = errors.New("remote error")
	ErrTransport     = errors.New("transport error")
)

// Wrap creates a new error by wrapping an existing error with additional context.
// It returns nil when err is nil.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// New creates a new error using fmt.Errorf.
func New(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Configuration returns an error of kind ErrConfiguration.
func Configuration(message string) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, message)
}

// ConfigurationWithCause returns an error of kind ErrConfiguration wrapping cause.
func ConfigurationWithCause(message string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrConfiguration, message, cause)
}

// Transport returns an error of kind ErrTransport for a request that never
// produced an HTTP response.
func Transport(method, path string, cause error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, cause)
}

// RemoteError is a completed HTTP exchange with a non-2xx status.
// Body is the response body text exactly as the remote sent it.
type RemoteError struct {
	StatusCode int
	Body       string
}

// Error implements error.
func (e *RemoteError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("API request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, body)
}

// Is reports ErrRemote as the kind of every RemoteError.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}

// Remote returns a *RemoteError for the given status and body.
func Remote(statusCode int, body string) error {
	return &RemoteError{StatusCode: statusCode, Body: body}
}

// StatusCode returns the remote status carried by err, or 0 if err is not a
// remote failure.
func StatusCode(err error) int {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}
