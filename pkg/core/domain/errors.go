package domain

import (
	"errors"
	"fmt"
)

// Error categories surfaced to users. Wrap them with fmt.Errorf("%w: ...").
var (
	ErrValidation      = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrUpstream        = errors.New("upstream failure")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrAlreadyTracking = errors.New("already tracking")
)

func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func NotFound(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}

func Upstream(msg string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrUpstream, msg)
	}
	return fmt.Errorf("%w: %s: %w", ErrUpstream, msg, cause)
}
