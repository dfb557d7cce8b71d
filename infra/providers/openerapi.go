package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/quotly/quotly/pkg/domain"
)

// OpenERAPI is the first fiat backup provider (open.er-api.com).
type OpenERAPI struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type openERAPIResponse struct {
	Result    string             `json:"result"`
	ErrorType string             `json:"error-type"`
	Rates     map[string]float64 `json:"rates"`
}

// NewOpenERAPI creates an ExchangeRate-API provider.
func NewOpenERAPI(baseURL string, client *http.Client, logger *slog.Logger) *OpenERAPI {
	return &OpenERAPI{
		baseURL:    baseURL,
		httpClient: client,
		logger:     logger,
	}
}

// Name returns the provider's name.
func (p *OpenERAPI) Name() string { return "ExchangeRate-API" }

// FetchRate fetches a fiat rate via GET /v6/latest/{SRC}.
func (p *OpenERAPI) FetchRate(ctx context.Context, from, to string) (*domain.RateQuote, error) {
	url := fmt.Sprintf("%s/v6/latest/%s", p.baseURL, from)

	body, err := getJSON(ctx, p.httpClient, url)
	if err != nil {
		return nil, err
	}

	var apiResp openERAPIResponse
	if err = json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if apiResp.Result == "error" {
		return nil, fmt.Errorf("API returned error: %s", apiResp.ErrorType)
	}
	if apiResp.Rates == nil {
		return nil, fmt.Errorf("missing rates table in response")
	}

	rate, ok := apiResp.Rates[to]
	if !ok {
		return nil, fmt.Errorf("currency %s not found in response", to)
	}

	return &domain.RateQuote{
		Rate:      rate,
		Source:    from,
		Target:    to,
		Provider:  p.Name(),
		Kind:      domain.KindFiat,
		Timestamp: time.Now().UTC(),
	}, nil
}
