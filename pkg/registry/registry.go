// Package registry holds the static tables of supported currencies: fiat ISO
// codes, cryptocurrencies with their per-provider asset identifiers, and
// stablecoins. The registry is read-only after construction and is the single
// source of truth for classification and identifier translation.
package registry

import (
	"sort"
	"strings"

	"github.com/quotly/quotly/pkg/domain"
)

// CryptoAsset maps a cryptocurrency code to the identifiers used by each
// upstream provider.
type CryptoAsset struct {
	CoinGeckoID string
	CoinCapID   string
}

// Registry answers classification and identifier lookups for currency codes.
// All lookups are case-insensitive; codes are normalized to uppercase.
type Registry struct {
	fiat        map[string]struct{}
	crypto      map[string]CryptoAsset
	stablecoins map[string]string // code -> CoinGecko id
}

// New constructs a registry with the supported currency tables.
func New() *Registry {
	fiatCodes := []string{
		"USD", "EUR", "GBP", "JPY", "AUD", "CAD", "CHF", "CNY", "HKD", "NZD",
		"SEK", "KRW", "SGD", "NOK", "MXN", "INR", "RUB", "ZAR", "TRY", "BRL",
		"TWD", "DKK", "PLN", "THB", "IDR", "HUF", "CZK", "ILS", "CLP", "PHP",
		"AED", "SAR", "MYR", "PKR",
	}
	fiat := make(map[string]struct{}, len(fiatCodes))
	for _, code := range fiatCodes {
		fiat[code] = struct{}{}
	}

	return &Registry{
		fiat: fiat,
		crypto: map[string]CryptoAsset{
			"BTC":  {CoinGeckoID: "bitcoin", CoinCapID: "bitcoin"},
			"ETH":  {CoinGeckoID: "ethereum", CoinCapID: "ethereum"},
			"USDT": {CoinGeckoID: "tether", CoinCapID: "tether"},
			"BNB":  {CoinGeckoID: "binancecoin", CoinCapID: "binance-coin"},
			"USDC": {CoinGeckoID: "usd-coin", CoinCapID: "usd-coin"},
			"XRP":  {CoinGeckoID: "ripple", CoinCapID: "xrp"},
			"SOL":  {CoinGeckoID: "solana", CoinCapID: "solana"},
			"ADA":  {CoinGeckoID: "cardano", CoinCapID: "cardano"},
			"DOGE": {CoinGeckoID: "dogecoin", CoinCapID: "dogecoin"},
			"DOT":  {CoinGeckoID: "polkadot", CoinCapID: "polkadot"},
		},
		stablecoins: map[string]string{
			"USDT": "tether",
			"USDC": "usd-coin",
			"DAI":  "dai",
			"BUSD": "binance-usd",
		},
	}
}

// Normalize uppercases a currency code for registry lookups.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Classify returns the asset class of a code, or ErrUnsupportedCurrency if
// the code is in neither table. Codes that are both stablecoins and listed
// cryptocurrencies classify as crypto; the stablecoin kind is applied by the
// dedicated stablecoin path.
func (r *Registry) Classify(code string) (domain.Kind, error) {
	code = Normalize(code)
	if _, ok := r.fiat[code]; ok {
		return domain.KindFiat, nil
	}
	if _, ok := r.crypto[code]; ok {
		return domain.KindCrypto, nil
	}
	if _, ok := r.stablecoins[code]; ok {
		return domain.KindStablecoin, nil
	}
	return "", &domain.UnsupportedCurrencyError{Code: code}
}

// IsFiat reports whether code is a supported fiat currency.
func (r *Registry) IsFiat(code string) bool {
	_, ok := r.fiat[Normalize(code)]
	return ok
}

// IsStablecoin reports whether code is a supported stablecoin.
func (r *Registry) IsStablecoin(code string) bool {
	_, ok := r.stablecoins[Normalize(code)]
	return ok
}

// CryptoAsset returns the provider identifiers for a cryptocurrency code.
func (r *Registry) CryptoAsset(code string) (CryptoAsset, bool) {
	asset, ok := r.crypto[Normalize(code)]
	return asset, ok
}

// StablecoinID returns the CoinGecko id for a stablecoin code.
func (r *Registry) StablecoinID(code string) (string, bool) {
	id, ok := r.stablecoins[Normalize(code)]
	return id, ok
}

// FiatCodes returns the supported fiat codes in sorted order.
func (r *Registry) FiatCodes() []string {
	codes := make([]string, 0, len(r.fiat))
	for code := range r.fiat {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// CryptoCodes returns the supported cryptocurrency codes in sorted order.
func (r *Registry) CryptoCodes() []string {
	codes := make([]string, 0, len(r.crypto))
	for code := range r.crypto {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// StablecoinCodes returns the supported stablecoin codes in sorted order.
func (r *Registry) StablecoinCodes() []string {
	codes := make([]string, 0, len(r.stablecoins))
	for code := range r.stablecoins {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
