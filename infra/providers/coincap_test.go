package providers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotly/quotly/pkg/domain"
	"github.com/quotly/quotly/pkg/registry"
)

type stubFiatRates struct {
	rate float64
	err  error
}

func (s *stubFiatRates) FetchRate(_ context.Context, from, to string) (*domain.RateQuote, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.RateQuote{Rate: s.rate, Source: from, Target: to, Provider: "stub-fiat"}, nil
}

func TestCoinCapUSDTarget(t *testing.T) {
	srv := newJSONServer(t, http.StatusOK,
		`{"data":{"priceUsd":"50000.5","time":1756600000000}}`)
	p := NewCoinCap(srv.URL, srv.Client(), registry.New(), &stubFiatRates{}, testLogger())

	quote, err := p.FetchRate(context.Background(), "BTC", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 50000.5, quote.Rate, 1e-9)
	assert.Equal(t, "CoinCap", quote.Provider)
	assert.Equal(t, time.UnixMilli(1756600000000).UTC(), quote.Timestamp)
}

func TestCoinCapPivotsNonUSDTarget(t *testing.T) {
	srv := newJSONServer(t, http.StatusOK, `{"data":{"priceUsd":"50000"}}`)
	p := NewCoinCap(srv.URL, srv.Client(), registry.New(), &stubFiatRates{rate: 0.85}, testLogger())

	quote, err := p.FetchRate(context.Background(), "BTC", "EUR")
	require.NoError(t, err)
	assert.InDelta(t, 50000*0.85, quote.Rate, 1e-9)
	assert.Equal(t, "EUR", quote.Target)
}

func TestCoinCapPivotFailureFailsAttempt(t *testing.T) {
	srv := newJSONServer(t, http.StatusOK, `{"data":{"priceUsd":"50000"}}`)
	p := NewCoinCap(srv.URL, srv.Client(), registry.New(),
		&stubFiatRates{err: errors.New("fiat chain exhausted")}, testLogger())

	_, err := p.FetchRate(context.Background(), "BTC", "EUR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "USD pivot to EUR failed")
}

func TestCoinCapBadPayloads(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "missing data", body: `{}`, wantErr: "missing data object"},
		{name: "non-numeric price", body: `{"data":{"priceUsd":"n/a"}}`, wantErr: "invalid priceUsd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newJSONServer(t, http.StatusOK, tt.body)
			p := NewCoinCap(srv.URL, srv.Client(), registry.New(), &stubFiatRates{}, testLogger())

			_, err := p.FetchRate(context.Background(), "BTC", "USD")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCoinCapUnknownAsset(t *testing.T) {
	p := NewCoinCap("http://unused", http.DefaultClient, registry.New(), &stubFiatRates{}, testLogger())

	_, err := p.FetchRate(context.Background(), "DAI", "USD")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedCurrency)
}
