// Package errors defines the coded error family used across chatlens.
// Malformed transcript content is never reported through these types; they
// cover configuration, static resources and input I/O.
package errors

import (
	"errors"
	"fmt"
)

// Standard error codes for the application.
const (
	CodeUnknown    = "UNKNOWN"
	CodeConfig     = "CONFIG"
	CodeResource   = "RESOURCE"
	CodeInput      = "INPUT"
	CodeValidation = "VALIDATION"
)

// ApplicationError is the interface that all our custom errors implement.
type ApplicationError interface {
	error
	Code() string
	Unwrap() error
}

// Error represents a basic application error.
type Error struct {
	code    string
	message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}

	return e.message
}

func (e *Error) Code() string {
	return e.code
}

func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the code of the first ApplicationError in err's chain,
// or CodeUnknown if there is none.
func Code(err error) string {
	var appErr ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Code()
	}

	return CodeUnknown
}

// ConfigError reports an unreadable or invalid configuration.
type ConfigError struct {
	base Error
}

func (e *ConfigError) Error() string { return e.base.Error() }
func (e *ConfigError) Code() string  { return e.base.Code() }
func (e *ConfigError) Unwrap() error { return e.base.Unwrap() }

func NewConfigError(message string, cause error) error {
	return &ConfigError{base: Error{code: CodeConfig, message: message, err: cause}}
}

// ResourceError reports a missing or unreadable static word list.
// It is fatal at startup.
type ResourceError struct {
	base Error
	Path string
}

func (e *ResourceError) Error() string { return e.base.Error() }
func (e *ResourceError) Code() string  { return e.base.Code() }
func (e *ResourceError) Unwrap() error { return e.base.Unwrap() }

func NewResourceError(path string, cause error) error {
	return &ResourceError{
		base: Error{code: CodeResource, message: fmt.Sprintf("failed to load resource %q", path), err: cause},
		Path: path,
	}
}

// InputError reports a transcript that could not be read.
type InputError struct {
	base Error
	Path string
}

func (e *InputError) Error() string { return e.base.Error() }
func (e *InputError) Code() string  { return e.base.Code() }
func (e *InputError) Unwrap() error { return e.base.Unwrap() }

func NewInputError(path string, cause error) error {
	return &InputError{
		base: Error{code: CodeInput, message: fmt.Sprintf("failed to read transcript %q", path), err: cause},
		Path: path,
	}
}

type ValidationError struct {
	base Error
}

func (e *ValidationError) Error() string { return e.base.Error() }
func (e *ValidationError) Code() string  { return e.base.Code() }
func (e *ValidationError) Unwrap() error { return e.base.Unwrap() }

func NewValidationError(message string, cause error) error {
	return &ValidationError{base: Error{code: CodeValidation, message: message, err: cause}}
}
