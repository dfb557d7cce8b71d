package providers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/quotly/quotly/pkg/domain"
	"github.com/quotly/quotly/pkg/registry"
	"github.com/tidwall/gjson"
)

// CoinGecko is the primary crypto rate provider. It returns direct
// crypto→fiat prices along with the upstream's own update timestamp.
type CoinGecko struct {
	baseURL    string
	httpClient *http.Client
	registry   *registry.Registry
	logger     *slog.Logger
}

// NewCoinGecko creates a CoinGecko provider.
func NewCoinGecko(baseURL string, client *http.Client, reg *registry.Registry, logger *slog.Logger) *CoinGecko {
	return &CoinGecko{
		baseURL:    baseURL,
		httpClient: client,
		registry:   reg,
		logger:     logger,
	}
}

// Name returns the provider's name.
func (p *CoinGecko) Name() string { return "CoinGecko" }

// FetchRate fetches a crypto→fiat rate via GET /simple/price.
func (p *CoinGecko) FetchRate(ctx context.Context, from, to string) (*domain.RateQuote, error) {
	asset, ok := p.registry.CryptoAsset(from)
	if !ok {
		return nil, &domain.UnsupportedCurrencyError{Code: from}
	}

	fiat := strings.ToLower(to)
	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=%s&include_last_updated_at=true",
		p.baseURL, asset.CoinGeckoID, fiat)

	body, err := getJSON(ctx, p.httpClient, url)
	if err != nil {
		return nil, err
	}

	price := gjson.GetBytes(body, asset.CoinGeckoID+"."+fiat)
	if !price.Exists() {
		return nil, fmt.Errorf("currency %s not found in response for %s", to, asset.CoinGeckoID)
	}

	observedAt := time.Now().UTC()
	if updated := gjson.GetBytes(body, asset.CoinGeckoID+".last_updated_at"); updated.Exists() {
		observedAt = time.Unix(updated.Int(), 0).UTC()
	}

	return &domain.RateQuote{
		Rate:      price.Float(),
		Source:    from,
		Target:    strings.ToUpper(to),
		Provider:  p.Name(),
		Kind:      domain.KindCrypto,
		Timestamp: observedAt,
	}, nil
}

// CoinGeckoStablecoin quotes stablecoin pairs by fetching both coins' USD
// prices in one call and taking the ratio. It is the backup in the
// stablecoin chain.
type CoinGeckoStablecoin struct {
	baseURL    string
	httpClient *http.Client
	registry   *registry.Registry
	logger     *slog.Logger
}

// NewCoinGeckoStablecoin creates the stablecoin-pair CoinGecko provider.
func NewCoinGeckoStablecoin(baseURL string, client *http.Client, reg *registry.Registry, logger *slog.Logger) *CoinGeckoStablecoin {
	return &CoinGeckoStablecoin{
		baseURL:    baseURL,
		httpClient: client,
		registry:   reg,
		logger:     logger,
	}
}

// Name returns the provider's name.
func (p *CoinGeckoStablecoin) Name() string { return "CoinGecko" }

// FetchRate computes from→to as priceUSD(from) / priceUSD(to).
func (p *CoinGeckoStablecoin) FetchRate(ctx context.Context, from, to string) (*domain.RateQuote, error) {
	fromID, ok := p.registry.StablecoinID(from)
	if !ok {
		return nil, &domain.UnsupportedCurrencyError{Code: from}
	}
	toID, ok := p.registry.StablecoinID(to)
	if !ok {
		return nil, &domain.UnsupportedCurrencyError{Code: to}
	}

	url := fmt.Sprintf("%s/simple/price?ids=%s,%s&vs_currencies=usd", p.baseURL, fromID, toID)

	body, err := getJSON(ctx, p.httpClient, url)
	if err != nil {
		return nil, err
	}

	fromPrice := gjson.GetBytes(body, fromID+".usd")
	toPrice := gjson.GetBytes(body, toID+".usd")
	if !fromPrice.Exists() || !toPrice.Exists() {
		return nil, fmt.Errorf("missing USD price data in response")
	}
	if toPrice.Float() == 0 {
		return nil, fmt.Errorf("zero USD price for %s: %w", to, domain.ErrInvalidRate)
	}

	return &domain.RateQuote{
		Rate:      fromPrice.Float() / toPrice.Float(),
		Source:    from,
		Target:    to,
		Provider:  p.Name(),
		Kind:      domain.KindStablecoin,
		Timestamp: time.Now().UTC(),
	}, nil
}
