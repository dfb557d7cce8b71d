package providers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/quotly/quotly/pkg/domain"
	"github.com/quotly/quotly/pkg/registry"
	"github.com/tidwall/gjson"
)

// CryptoCompare serves two roles: second crypto backup and primary stablecoin
// provider. It quotes by symbol rather than asset id and has no separate
// timestamp feed, so quotes carry the call time.
type CryptoCompare struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewCryptoCompare creates a CryptoCompare provider.
func NewCryptoCompare(baseURL string, client *http.Client, logger *slog.Logger) *CryptoCompare {
	return &CryptoCompare{
		baseURL:    baseURL,
		httpClient: client,
		logger:     logger,
	}
}

// Name returns the provider's name.
func (p *CryptoCompare) Name() string { return "CryptoCompare" }

// FetchRate fetches a rate via GET /data/price?fsym={CODE}&tsyms={TGT}.
func (p *CryptoCompare) FetchRate(ctx context.Context, from, to string) (*domain.RateQuote, error) {
	from = registry.Normalize(from)
	to = registry.Normalize(to)
	url := fmt.Sprintf("%s/data/price?fsym=%s&tsyms=%s", p.baseURL, from, to)

	body, err := getJSON(ctx, p.httpClient, url)
	if err != nil {
		return nil, err
	}

	value := gjson.GetBytes(body, to)
	if !value.Exists() {
		return nil, fmt.Errorf("currency %s not found in response", to)
	}

	return &domain.RateQuote{
		Rate:      value.Float(),
		Source:    from,
		Target:    to,
		Provider:  p.Name(),
		Kind:      domain.KindCrypto,
		Timestamp: time.Now().UTC(),
	}, nil
}
