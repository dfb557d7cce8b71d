package provider

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotly/quotly/pkg/domain"
)

type stubProvider struct {
	name  string
	rate  float64
	err   error
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) FetchRate(_ context.Context, from, to string) (*domain.RateQuote, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &domain.RateQuote{
		Rate:      s.rate,
		Source:    from,
		Target:    to,
		Provider:  s.name,
		Timestamp: time.Now().UTC(),
	}, nil
}

type panickingProvider struct{}

func (panickingProvider) Name() string { return "panicking" }

func (panickingProvider) FetchRate(context.Context, string, string) (*domain.RateQuote, error) {
	panic("provider must not be consulted")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChainFirstProviderWins(t *testing.T) {
	p1 := &stubProvider{name: "first", rate: 0.85}
	p2 := &stubProvider{name: "second", rate: 0.90}
	c := NewChain("fiat", domain.KindFiat, []RateProvider{p1, p2}, testLogger(), nil)

	quote, err := c.FetchRate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.InDelta(t, 0.85, quote.Rate, 1e-12)
	assert.Equal(t, "first", quote.Provider)
	assert.Equal(t, domain.KindFiat, quote.Kind)
	assert.Equal(t, 1, p1.calls)
	assert.Equal(t, 0, p2.calls)
}

func TestChainFallsBackOnFailure(t *testing.T) {
	p1 := &stubProvider{name: "first", err: errors.New("timeout")}
	p2 := &stubProvider{name: "second", rate: 0.90}
	c := NewChain("fiat", domain.KindFiat, []RateProvider{p1, p2}, testLogger(), nil)

	quote, err := c.FetchRate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "second", quote.Provider)
	assert.Equal(t, 1, p1.calls)
	assert.Equal(t, 1, p2.calls)
}

func TestChainRejectsInvalidRates(t *testing.T) {
	tests := []struct {
		name string
		rate float64
	}{
		{name: "zero", rate: 0},
		{name: "negative", rate: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := &stubProvider{name: "bad", rate: tt.rate}
			good := &stubProvider{name: "good", rate: 0.85}
			c := NewChain("fiat", domain.KindFiat, []RateProvider{bad, good}, testLogger(), nil)

			quote, err := c.FetchRate(context.Background(), "USD", "EUR")
			require.NoError(t, err)
			assert.Equal(t, "good", quote.Provider)
		})
	}
}

func TestChainExhaustedError(t *testing.T) {
	p1 := &stubProvider{name: "first", err: errors.New("timeout")}
	p2 := &stubProvider{name: "second", err: errors.New("http 500")}
	c := NewChain("fiat", domain.KindFiat, []RateProvider{p1, p2}, testLogger(), nil)

	quote, err := c.FetchRate(context.Background(), "USD", "EUR")
	require.Error(t, err)
	assert.Nil(t, quote)
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)

	var exhausted *domain.ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, "fiat", exhausted.Chain)
	require.Len(t, exhausted.Attempts, 2)
	assert.Equal(t, "first", exhausted.Attempts[0].Provider)
	assert.Equal(t, "timeout", exhausted.Attempts[0].Reason)
	assert.Equal(t, "second", exhausted.Attempts[1].Provider)
}

func TestChainIdentityPairSkipsProviders(t *testing.T) {
	c := NewChain("fiat", domain.KindFiat, []RateProvider{panickingProvider{}}, testLogger(), nil)

	quote, err := c.FetchRate(context.Background(), "usd", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, quote.Rate, 1e-12)
	assert.Equal(t, domain.ProviderSelf, quote.Provider)
	assert.Equal(t, "USD", quote.Source)
	assert.Equal(t, "USD", quote.Target)
}

func TestChainNormalizesCodes(t *testing.T) {
	p := &stubProvider{name: "only", rate: 0.85}
	c := NewChain("fiat", domain.KindFiat, []RateProvider{p}, testLogger(), nil)

	quote, err := c.FetchRate(context.Background(), " usd ", "eur")
	require.NoError(t, err)
	assert.Equal(t, "USD", quote.Source)
	assert.Equal(t, "EUR", quote.Target)
}
