package epicycles

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPath is matched (errors.Is) by every InvalidPathError.
	ErrInvalidPath = errors.New("invalid path")
	// ErrConfiguration is matched (errors.Is) by every ConfigurationError.
	ErrConfiguration = errors.New("invalid configuration")
)

// InvalidPathError signals input geometry which cannot be sampled or
// transformed: no segments, zero total length, non-finite coordinates,
// or open contours when these are rejected.
type InvalidPathError struct {
	Reason string
	Err    error // underlying cause, may be nil
}

// InvalidPath creates an InvalidPathError with a formatted reason.
func InvalidPath(format string, args ...interface{}) error {
	return &InvalidPathError{Reason: fmt.Sprintf(format, args...)}
}

func (e *InvalidPathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid path: %s: %v", e.Reason, e.Err)
	}
	return "invalid path: " + e.Reason
}

// Is lets errors.Is(err, ErrInvalidPath) succeed.
func (e *InvalidPathError) Is(target error) bool {
	return target == ErrInvalidPath
}

func (e *InvalidPathError) Unwrap() error {
	return e.Err
}

// ConfigurationError signals a configuration value outside of its domain.
// It is reported before any sampling starts.
type ConfigurationError struct {
	Key    string      // configuration key
	Value  interface{} // offending value
	Reason string
}

// Misconfigured creates a ConfigurationError for key.
func Misconfigured(key string, value interface{}, reason string) error {
	return &ConfigurationError{Key: key, Value: value, Reason: reason}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s = %v: %s", e.Key, e.Value, e.Reason)
}

// Is lets errors.Is(err, ErrConfiguration) succeed.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
