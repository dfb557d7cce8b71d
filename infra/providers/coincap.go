package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/quotly/quotly/pkg/domain"
	"github.com/quotly/quotly/pkg/registry"
)

// fiatRates is the pivot dependency CoinCap needs for non-USD targets.
type fiatRates interface {
	FetchRate(ctx context.Context, from, to string) (*domain.RateQuote, error)
}

// CoinCap is the first crypto backup provider. The upstream only quotes USD,
// so non-USD targets pivot through the fiat chain; a failed pivot fails the
// whole attempt rather than mislabeling a USD rate as the target currency.
type CoinCap struct {
	baseURL    string
	httpClient *http.Client
	registry   *registry.Registry
	fiat       fiatRates
	logger     *slog.Logger
}

type coinCapResponse struct {
	Data *struct {
		PriceUSD string `json:"priceUsd"`
		Time     int64  `json:"time"`
	} `json:"data"`
}

// NewCoinCap creates a CoinCap provider with the given fiat pivot.
func NewCoinCap(baseURL string, client *http.Client, reg *registry.Registry, fiat fiatRates, logger *slog.Logger) *CoinCap {
	return &CoinCap{
		baseURL:    baseURL,
		httpClient: client,
		registry:   reg,
		fiat:       fiat,
		logger:     logger,
	}
}

// Name returns the provider's name.
func (p *CoinCap) Name() string { return "CoinCap" }

// FetchRate fetches the USD price via GET /assets/{id} and pivots to the
// requested fiat when it is not USD.
func (p *CoinCap) FetchRate(ctx context.Context, from, to string) (*domain.RateQuote, error) {
	asset, ok := p.registry.CryptoAsset(from)
	if !ok {
		return nil, &domain.UnsupportedCurrencyError{Code: from}
	}

	url := fmt.Sprintf("%s/assets/%s", p.baseURL, asset.CoinCapID)

	body, err := getJSON(ctx, p.httpClient, url)
	if err != nil {
		return nil, err
	}

	var apiResp coinCapResponse
	if err = json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if apiResp.Data == nil {
		return nil, fmt.Errorf("missing data object in response")
	}

	usdPrice, err := strconv.ParseFloat(apiResp.Data.PriceUSD, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid priceUsd %q: %w", apiResp.Data.PriceUSD, err)
	}

	observedAt := time.Now().UTC()
	if apiResp.Data.Time > 0 {
		observedAt = time.UnixMilli(apiResp.Data.Time).UTC()
	}

	rate := usdPrice
	if registry.Normalize(to) != "USD" {
		pivot, err := p.fiat.FetchRate(ctx, "USD", to)
		if err != nil {
			return nil, fmt.Errorf("USD pivot to %s failed: %w", to, err)
		}
		rate = usdPrice * pivot.Rate
	}

	return &domain.RateQuote{
		Rate:      rate,
		Source:    from,
		Target:    registry.Normalize(to),
		Provider:  p.Name(),
		Kind:      domain.KindCrypto,
		Timestamp: observedAt,
	}, nil
}
