package domain

import "time"

// Kind classifies the asset class of a quoted currency.
type Kind string

const (
	KindFiat       Kind = "fiat"
	KindCrypto     Kind = "crypto"
	KindStablecoin Kind = "stablecoin"
)

// ProviderSelf is the provider name used for identity quotes (from == to),
// which are produced without any network call.
const ProviderSelf = "self"

// ProviderError is the provider name carried by sentinel quotes minted when
// every provider and the cache failed to produce a rate.
const ProviderError = "Error"

// RateQuote is an exchange rate between two currency codes together with its
// provenance. A quote is immutable once produced; derived views (cache
// annotations, conversion results) are made on copies.
type RateQuote struct {
	Rate      float64   `json:"rate"`
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Provider  string    `json:"provider"`
	Kind      Kind      `json:"kind"`
	Timestamp time.Time `json:"timestamp"`

	// Set on quotes reconstructed from the cache.
	Cached       bool          `json:"cached,omitempty"`
	CacheAge     time.Duration `json:"cache_age,omitempty"`
	CacheExpired bool          `json:"cache_expired,omitempty"`
	StaleFor     time.Duration `json:"stale_for,omitempty"`
	IsInverse    bool          `json:"is_inverse,omitempty"`

	// Set on degraded and sentinel quotes.
	Warning     string `json:"warning,omitempty"`
	Error       bool   `json:"error,omitempty"`
	ErrorDetail string `json:"error_detail,omitempty"`
}

// Conversion is the result of applying a resolved rate to an amount.
type Conversion struct {
	Quote           RateQuote `json:"quote"`
	OriginalAmount  float64   `json:"original_amount"`
	ConvertedAmount float64   `json:"converted_amount"`
}

// HistoricalPoint is one entry of a simulated historical rate series.
// The series is fabricated around the current rate and must always be
// labeled as such; it is not real market data.
type HistoricalPoint struct {
	Date      string  `json:"date"`
	Rate      float64 `json:"rate"`
	Simulated bool    `json:"simulated"`
}
