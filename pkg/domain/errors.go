package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors for rate resolution.
var (
	// ErrUnsupportedCurrency indicates a code absent from both registries.
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrProviderUnavailable indicates a single provider attempt failed.
	// It is recovered internally by advancing to the next provider and
	// never surfaced alone.
	ErrProviderUnavailable = errors.New("rate provider unavailable")

	// ErrInvalidRate indicates a zero, negative or non-finite rate that
	// must not be cached or served.
	ErrInvalidRate = errors.New("invalid exchange rate")
)

// Attempt records one failed provider call inside a fallback chain.
type Attempt struct {
	Provider string
	Reason   string
}

// ExhaustedError is returned when every provider in a chain failed. It
// carries the ordered list of providers attempted and one diagnostic per
// attempt.
type ExhaustedError struct {
	Chain    string
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = fmt.Sprintf("%s: %s", a.Provider, a.Reason)
	}
	return fmt.Sprintf("all %s providers exhausted: %s", e.Chain, strings.Join(parts, "; "))
}

func (e *ExhaustedError) Unwrap() error {
	return ErrProviderUnavailable
}

// Providers returns the provider names in attempt order.
func (e *ExhaustedError) Providers() []string {
	names := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		names[i] = a.Provider
	}
	return names
}

// UnsupportedCurrencyError wraps ErrUnsupportedCurrency with the offending code.
type UnsupportedCurrencyError struct {
	Code string
}

func (e *UnsupportedCurrencyError) Error() string {
	return fmt.Sprintf("unsupported currency: %s", e.Code)
}

func (e *UnsupportedCurrencyError) Unwrap() error {
	return ErrUnsupportedCurrency
}
