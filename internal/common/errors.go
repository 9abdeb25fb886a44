// Package common holds argument validation shared by the command handlers and
// the error taxonomy that decides how a failure is reported to the user.
package common

import (
	"errors"
	"fmt"
)

// UsageError is returned for missing or malformed arguments and unknown
// commands or options. It is detected before the filesystem is touched.
type UsageError struct {
	Msg string
}

// Error returns the usage message
func (e *UsageError) Error() string {
	return e.Msg
}

// InvalidInput marks the error as a user input problem.
func (e *UsageError) InvalidInput() bool {
	return true
}

// NotFoundError is returned when a target path does not exist or has the
// wrong type, e.g. cd into a regular file.
type NotFoundError struct {
	Kind string // "file" or "directory"
	Path string
}

// Error names what could not be found
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Kind)
}

// InvalidInput marks the error as a user input problem.
func (e *NotFoundError) InvalidInput() bool {
	return true
}

// Usagef builds a UsageError from a format string.
func Usagef(format string, args ...interface{}) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// IsInvalidInput reports whether err (or anything it wraps) is a usage or
// resolution error rather than an I/O failure.
func IsInvalidInput(err error) bool {
	var marker interface{ InvalidInput() bool }
	return errors.As(err, &marker) && marker.InvalidInput()
}
