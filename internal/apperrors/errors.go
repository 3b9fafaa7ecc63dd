package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrRateUnavailable indicates that no fresh or stale exchange rate exists for a
// required currency pair after exhausting all providers and the previous-day fallback.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrProvider indicates that a single upstream rate provider failed. Provider failures
// are recovered by the fallback chain and only surface when every provider fails and no
// historical fallback exists.
var ErrProvider = errors.New("rate provider error")

// ProviderError wraps a failure from a specific upstream rate provider so the caller
// can tell which provider in the chain failed.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return ErrProvider
}

// NewProviderError creates a ProviderError for the given provider name and cause.
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}
