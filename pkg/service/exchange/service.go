// Package exchange implements the rate resolver: the single orchestration
// point that checks the cache, classifies both codes, dispatches to the fiat,
// crypto or stablecoin provider chain, computes cross rates through the USD
// pivot, and degrades to stale cache entries and finally a zero-rate sentinel
// when everything upstream fails.
package exchange

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quotly/quotly/infra/metrics"
	"github.com/quotly/quotly/pkg/cache"
	"github.com/quotly/quotly/pkg/domain"
	"github.com/quotly/quotly/pkg/registry"
)

// RateFetcher is the chain contract the resolver dispatches to.
type RateFetcher interface {
	FetchRate(ctx context.Context, from, to string) (*domain.RateQuote, error)
}

// Service resolves exchange rates between any two supported currencies.
type Service struct {
	registry *registry.Registry
	fiat     RateFetcher
	crypto   RateFetcher
	stable   RateFetcher
	cache    cache.RateCache
	logger   *slog.Logger
	metrics  *metrics.RateMetrics
}

// New creates a resolver over the given chains and cache.
func New(
	reg *registry.Registry,
	fiat, crypto, stable RateFetcher,
	rateCache cache.RateCache,
	logger *slog.Logger,
	m *metrics.RateMetrics,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		registry: reg,
		fiat:     fiat,
		crypto:   crypto,
		stable:   stable,
		cache:    rateCache,
		logger:   logger,
		metrics:  m,
	}
}

// Resolve returns a quote for source→target. The only error it returns is
// ErrUnsupportedCurrency for codes outside the registry; every provider
// failure is absorbed into a degraded (stale-cache) or sentinel quote so the
// caller always receives a renderable result.
func (s *Service) Resolve(ctx context.Context, source, target string) (*domain.RateQuote, error) {
	source = registry.Normalize(source)
	target = registry.Normalize(target)

	srcKind, err := s.registry.Classify(source)
	if err != nil {
		return nil, err
	}
	tgtKind, err := s.registry.Classify(target)
	if err != nil {
		return nil, err
	}

	// Identity pairs short-circuit before any cache or provider interaction.
	if source == target {
		return &domain.RateQuote{
			Rate:      1.0,
			Source:    source,
			Target:    target,
			Provider:  domain.ProviderSelf,
			Kind:      srcKind,
			Timestamp: time.Now().UTC(),
		}, nil
	}

	if entry := s.cache.Get(source, target, false); entry != nil {
		s.metrics.CacheLookup("hit")
		s.metrics.Resolution("cache")
		return s.cachedQuote(entry), nil
	}
	s.metrics.CacheLookup("miss")

	quote, err := s.dispatch(ctx, source, srcKind, target, tgtKind)
	if err != nil {
		s.logger.Error("rate resolution failed, trying cache fallback",
			"from", source, "to", target, "error", err)
		return s.degraded(source, target, err), nil
	}

	if cacheErr := s.cache.Put(source, target, quote.Rate, *quote); cacheErr != nil {
		s.logger.Warn("failed to cache rate",
			"from", source, "to", target, "error", cacheErr)
	}
	s.metrics.Resolution("provider")
	return quote, nil
}

// Convert applies the resolved rate to an amount. Amount validation beyond
// basic shape is the caller's concern.
func (s *Service) Convert(ctx context.Context, amount float64, source, target string) (*domain.Conversion, error) {
	quote, err := s.Resolve(ctx, source, target)
	if err != nil {
		return nil, err
	}
	return &domain.Conversion{
		Quote:           *quote,
		OriginalAmount:  amount,
		ConvertedAmount: amount * quote.Rate,
	}, nil
}

// dispatch routes a pair to the right chain(s) and computes cross rates.
func (s *Service) dispatch(ctx context.Context, source string, srcKind domain.Kind, target string, tgtKind domain.Kind) (*domain.RateQuote, error) {
	// Stablecoin pairs get a dedicated direct path.
	if s.registry.IsStablecoin(source) && s.registry.IsStablecoin(target) {
		return s.stable.FetchRate(ctx, source, target)
	}

	// Stablecoins outside the listed crypto set (e.g. DAI) have no general
	// provider mapping and are only quotable against other stablecoins.
	if srcKind == domain.KindStablecoin || tgtKind == domain.KindStablecoin {
		return nil, fmt.Errorf("pair %s/%s: stablecoin quotable only against other stablecoins: %w",
			source, target, domain.ErrUnsupportedCurrency)
	}

	srcCrypto := srcKind == domain.KindCrypto
	tgtCrypto := tgtKind == domain.KindCrypto

	switch {
	case srcCrypto && tgtCrypto:
		return s.cryptoCross(ctx, source, target)
	case srcCrypto && !tgtCrypto:
		return s.cryptoToFiat(ctx, source, target)
	case !srcCrypto && tgtCrypto:
		return s.fiatToCrypto(ctx, source, target)
	default:
		return s.fiat.FetchRate(ctx, source, target)
	}
}

// cryptoCross computes crypto→crypto through both legs' USD quotes.
func (s *Service) cryptoCross(ctx context.Context, source, target string) (*domain.RateQuote, error) {
	srcUSD, err := s.crypto.FetchRate(ctx, source, "USD")
	if err != nil {
		return nil, fmt.Errorf("%s leg: %w", source, err)
	}
	tgtUSD, err := s.crypto.FetchRate(ctx, target, "USD")
	if err != nil {
		return nil, fmt.Errorf("%s leg: %w", target, err)
	}

	return &domain.RateQuote{
		Rate:      srcUSD.Rate / tgtUSD.Rate,
		Source:    source,
		Target:    target,
		Provider:  joinProviders(srcUSD.Provider, tgtUSD.Provider),
		Kind:      domain.KindCrypto,
		Timestamp: time.Now().UTC(),
	}, nil
}

// cryptoToFiat passes through for USD and pivots for everything else.
func (s *Service) cryptoToFiat(ctx context.Context, source, target string) (*domain.RateQuote, error) {
	if target == "USD" {
		return s.crypto.FetchRate(ctx, source, "USD")
	}

	cryptoUSD, err := s.crypto.FetchRate(ctx, source, "USD")
	if err != nil {
		return nil, fmt.Errorf("%s leg: %w", source, err)
	}
	usdToTarget, err := s.fiat.FetchRate(ctx, "USD", target)
	if err != nil {
		return nil, fmt.Errorf("USD/%s pivot: %w", target, err)
	}

	return &domain.RateQuote{
		Rate:      cryptoUSD.Rate * usdToTarget.Rate,
		Source:    source,
		Target:    target,
		Provider:  joinProviders(cryptoUSD.Provider, usdToTarget.Provider),
		Kind:      domain.KindCrypto,
		Timestamp: time.Now().UTC(),
	}, nil
}

// fiatToCrypto is the symmetric inverse: crypto→USD inverted, with a
// source→USD leg when the source is not USD.
func (s *Service) fiatToCrypto(ctx context.Context, source, target string) (*domain.RateQuote, error) {
	cryptoUSD, err := s.crypto.FetchRate(ctx, target, "USD")
	if err != nil {
		return nil, fmt.Errorf("%s leg: %w", target, err)
	}

	rate := 1 / cryptoUSD.Rate
	providerName := cryptoUSD.Provider
	if source != "USD" {
		srcUSD, err := s.fiat.FetchRate(ctx, source, "USD")
		if err != nil {
			return nil, fmt.Errorf("%s/USD pivot: %w", source, err)
		}
		rate = srcUSD.Rate / cryptoUSD.Rate
		providerName = joinProviders(srcUSD.Provider, cryptoUSD.Provider)
	}

	return &domain.RateQuote{
		Rate:      rate,
		Source:    source,
		Target:    target,
		Provider:  providerName,
		Kind:      domain.KindCrypto,
		Timestamp: time.Now().UTC(),
	}, nil
}

// degraded serves a stale cache entry if one exists, a sentinel otherwise.
func (s *Service) degraded(source, target string, cause error) *domain.RateQuote {
	if entry := s.cache.Get(source, target, true); entry != nil {
		s.metrics.CacheLookup("stale_hit")
		s.metrics.Resolution("stale_cache")
		quote := s.cachedQuote(entry)
		quote.Warning = fmt.Sprintf("using cached rate after provider failure: %v", cause)
		if quote.CacheExpired {
			quote.Warning = fmt.Sprintf("%s (rate is %.0f minutes past expiry)",
				quote.Warning, quote.StaleFor.Minutes())
		}
		s.logger.Warn("serving cached rate in degraded mode",
			"from", source, "to", target,
			"expired", quote.CacheExpired, "age", quote.CacheAge)
		return quote
	}

	s.metrics.Resolution("error")
	return &domain.RateQuote{
		Rate:        0,
		Source:      source,
		Target:      target,
		Provider:    domain.ProviderError,
		Timestamp:   time.Now().UTC(),
		Error:       true,
		ErrorDetail: fmt.Sprintf("failed to get exchange rate and no cached data available: %v", cause),
	}
}

// cachedQuote reconstructs an annotated quote from a cache entry.
func (s *Service) cachedQuote(entry *cache.Entry) *domain.RateQuote {
	now := time.Now()
	quote := entry.Quote
	quote.Rate = entry.Rate
	quote.Cached = true
	quote.CacheAge = now.Sub(entry.CreatedAt)
	if now.After(entry.ExpiresAt) {
		quote.CacheExpired = true
		quote.StaleFor = now.Sub(entry.ExpiresAt)
	}
	return &quote
}

func joinProviders(a, b string) string {
	if a == b {
		return a
	}
	return a + " + " + b
}
