package provider

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/quotly/quotly/infra/metrics"
	"github.com/quotly/quotly/pkg/domain"
	"github.com/quotly/quotly/pkg/registry"
)

// Chain tries an ordered list of providers strictly sequentially and returns
// the first valid quote. Identity pairs short-circuit before any provider is
// consulted. When every provider fails, the chain returns a typed
// *domain.ExhaustedError carrying one diagnostic per attempt; it never
// propagates an individual provider's error alone.
type Chain struct {
	name      string
	kind      domain.Kind
	providers []RateProvider
	logger    *slog.Logger
	metrics   *metrics.RateMetrics
}

// NewChain creates a fallback chain. All quotes it returns are stamped with
// the given kind.
func NewChain(name string, kind domain.Kind, providers []RateProvider, logger *slog.Logger, m *metrics.RateMetrics) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{
		name:      name,
		kind:      kind,
		providers: providers,
		logger:    logger,
		metrics:   m,
	}
}

// Name returns the chain's name.
func (c *Chain) Name() string { return c.name }

// FetchRate resolves from/to through the chain.
func (c *Chain) FetchRate(ctx context.Context, from, to string) (*domain.RateQuote, error) {
	from = registry.Normalize(from)
	to = registry.Normalize(to)

	if from == to {
		return &domain.RateQuote{
			Rate:      1.0,
			Source:    from,
			Target:    to,
			Provider:  domain.ProviderSelf,
			Kind:      c.kind,
			Timestamp: time.Now().UTC(),
		}, nil
	}

	var attempts []domain.Attempt
	for _, p := range c.providers {
		c.metrics.ProviderAttempt(c.name, p.Name())

		quote, err := p.FetchRate(ctx, from, to)
		if err == nil && !validRate(quote.Rate) {
			err = domain.ErrInvalidRate
		}
		if err != nil {
			c.logger.Warn("provider failed, trying next",
				"chain", c.name, "provider", p.Name(),
				"from", from, "to", to, "error", err)
			c.metrics.ProviderFailure(c.name, p.Name())
			attempts = append(attempts, domain.Attempt{Provider: p.Name(), Reason: err.Error()})
			continue
		}

		quote.Kind = c.kind
		c.logger.Info("rate fetched",
			"chain", c.name, "provider", p.Name(),
			"from", from, "to", to, "rate", quote.Rate)
		return quote, nil
	}

	return nil, &domain.ExhaustedError{Chain: c.name, Attempts: attempts}
}

func validRate(rate float64) bool {
	return rate > 0 && !math.IsNaN(rate) && !math.IsInf(rate, 0)
}
