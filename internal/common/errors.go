// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Configuration errors. These are fatal for a single classification:
	// there is nothing valid to classify into, or no way to reach a model.
	ErrNoActiveAccounts = errors.New("no active accounts")
	ErrUnknownModel     = errors.New("unknown model")
	ErrMissingAPIKey    = errors.New("missing API key")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsConfigError reports whether err belongs to the configuration error class.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrNoActiveAccounts) ||
		errors.Is(err, ErrUnknownModel) ||
		errors.Is(err, ErrMissingAPIKey) ||
		errors.Is(err, ErrInvalidConfig)
}
