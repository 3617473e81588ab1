// Package errors provides structured error handling for keyshard.
// It defines sentinel errors, exit codes, and helpers for adding
// context, details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes for the CLI.
const (
	ExitSuccess = 0 // Successful execution
	ExitGeneral = 1 // General/unknown error
	ExitInput   = 2 // Invalid input (parameters, secret, config)
	ExitFormat  = 3 // Malformed or inconsistent shares
	ExitEntropy = 4 // Secure random source unavailable
)

// KeyshardError is the structured error type for keyshard.
type KeyshardError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *KeyshardError) Error() string {
	msg := e.Message

	// Include details in error message (sorted for deterministic output)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *KeyshardError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for KeyshardError.
func (e *KeyshardError) Is(target error) bool {
	var t *KeyshardError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors, one per failure kind the core can surface.
var (
	ErrGeneral = &KeyshardError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &KeyshardError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	ErrInvalidParams = &KeyshardError{
		Code:     "INVALID_PARAMS",
		Message:  "invalid share parameters",
		ExitCode: ExitInput,
	}

	ErrInvalidSecret = &KeyshardError{
		Code:     "INVALID_SECRET",
		Message:  "invalid secret",
		ExitCode: ExitInput,
	}

	ErrNoEntropy = &KeyshardError{
		Code:     "NO_ENTROPY",
		Message:  "secure random source unavailable",
		ExitCode: ExitEntropy,
	}

	ErrNoShares = &KeyshardError{
		Code:     "NO_SHARES",
		Message:  "no shares provided",
		ExitCode: ExitInput,
	}

	ErrInsufficientShares = &KeyshardError{
		Code:     "INSUFFICIENT_SHARES",
		Message:  "not enough shares to reconstruct",
		ExitCode: ExitInput,
	}

	ErrBadShareFormat = &KeyshardError{
		Code:     "BAD_SHARE_FORMAT",
		Message:  "share is malformed",
		ExitCode: ExitFormat,
	}

	ErrLengthMismatch = &KeyshardError{
		Code:     "LENGTH_MISMATCH",
		Message:  "shares disagree on secret length",
		ExitCode: ExitFormat,
	}

	ErrDuplicateShare = &KeyshardError{
		Code:     "DUPLICATE_SHARE",
		Message:  "duplicate share id",
		ExitCode: ExitFormat,
	}

	ErrBadUTF8 = &KeyshardError{
		Code:     "BAD_UTF8",
		Message:  "reconstruction did not produce valid text",
		ExitCode: ExitFormat,
	}

	// Config-specific errors.
	ErrConfigNotFound = &KeyshardError{
		Code:     "CONFIG_NOT_FOUND",
		Message:  "configuration file not found",
		ExitCode: ExitGeneral,
	}

	ErrConfigInvalid = &KeyshardError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}
)

// New creates a new KeyshardError with the given code and message.
func New(code, message string) *KeyshardError {
	return &KeyshardError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var ke *KeyshardError
	if errors.As(err, &ke) {
		return &KeyshardError{
			Code:       ke.Code,
			Message:    fmt.Sprintf("%s: %s", msg, ke.Message),
			Details:    ke.Details,
			Suggestion: ke.Suggestion,
			Cause:      err,
			ExitCode:   ke.ExitCode,
		}
	}

	return &KeyshardError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var ke *KeyshardError
	if errors.As(err, &ke) {
		return &KeyshardError{
			Code:       ke.Code,
			Message:    ke.Message,
			Details:    details,
			Suggestion: ke.Suggestion,
			Cause:      ke.Cause,
			ExitCode:   ke.ExitCode,
		}
	}

	return &KeyshardError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var ke *KeyshardError
	if errors.As(err, &ke) {
		return &KeyshardError{
			Code:       ke.Code,
			Message:    ke.Message,
			Details:    ke.Details,
			Suggestion: suggestion,
			Cause:      ke.Cause,
			ExitCode:   ke.ExitCode,
		}
	}

	return &KeyshardError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ke *KeyshardError
	if errors.As(err, &ke) {
		return ke.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var ke *KeyshardError
	if errors.As(err, &ke) {
		return ke.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
