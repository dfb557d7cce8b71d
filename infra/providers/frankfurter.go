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

// Frankfurter is the primary fiat rate provider (frankfurter.app).
type Frankfurter struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type frankfurterResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// NewFrankfurter creates a Frankfurter provider.
func NewFrankfurter(baseURL string, client *http.Client, logger *slog.Logger) *Frankfurter {
	return &Frankfurter{
		baseURL:    baseURL,
		httpClient: client,
		logger:     logger,
	}
}

// Name returns the provider's name.
func (p *Frankfurter) Name() string { return "Frankfurter" }

// FetchRate fetches a fiat rate via GET /latest?from={SRC}&to={TGT}.
func (p *Frankfurter) FetchRate(ctx context.Context, from, to string) (*domain.RateQuote, error) {
	url := fmt.Sprintf("%s/latest?from=%s&to=%s", p.baseURL, from, to)

	body, err := getJSON(ctx, p.httpClient, url)
	if err != nil {
		return nil, err
	}

	var apiResp frankfurterResponse
	if err = json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
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
