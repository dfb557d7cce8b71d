package providers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/quotly/quotly/pkg/domain"
	"github.com/tidwall/gjson"
)

// CurrencyAPI is the second fiat backup provider (fawazahmed0 currency-api).
// Its payload is a dynamic object keyed by the lowercased target code, so
// extraction goes through gjson rather than a fixed struct.
type CurrencyAPI struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewCurrencyAPI creates a Currency-API provider.
func NewCurrencyAPI(baseURL string, client *http.Client, logger *slog.Logger) *CurrencyAPI {
	return &CurrencyAPI{
		baseURL:    baseURL,
		httpClient: client,
		logger:     logger,
	}
}

// Name returns the provider's name.
func (p *CurrencyAPI) Name() string { return "Currency-API" }

// FetchRate fetches a fiat rate via GET /latest/currencies/{src}/{tgt}.json.
func (p *CurrencyAPI) FetchRate(ctx context.Context, from, to string) (*domain.RateQuote, error) {
	src := strings.ToLower(from)
	tgt := strings.ToLower(to)
	url := fmt.Sprintf("%s/latest/currencies/%s/%s.json", p.baseURL, src, tgt)

	body, err := getJSON(ctx, p.httpClient, url)
	if err != nil {
		return nil, err
	}

	value := gjson.GetBytes(body, tgt)
	if !value.Exists() {
		return nil, fmt.Errorf("currency %s not found in response", to)
	}

	return &domain.RateQuote{
		Rate:      value.Float(),
		Source:    from,
		Target:    to,
		Provider:  p.Name(),
		Kind:      domain.KindFiat,
		Timestamp: time.Now().UTC(),
	}, nil
}
