package provider

import (
	"context"

	"github.com/quotly/quotly/pkg/domain"
)

// RateProvider is a single upstream quote source.
type RateProvider interface {
	// Name identifies the provider for logging and quote provenance.
	Name() string

	// FetchRate fetches the current rate for one currency pair. Any
	// transport error, unexpected status, or malformed payload is returned
	// as an error; the caller decides whether to fall back.
	FetchRate(ctx context.Context, from, to string) (*domain.RateQuote, error)
}
