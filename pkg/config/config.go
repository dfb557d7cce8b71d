package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port int    `envconfig:"PORT" default:"3000"`
}

// FiatConfig holds the fiat provider endpoints, in fallback order.
type FiatConfig struct {
	FrankfurterURL string `envconfig:"FRANKFURTER_URL" default:"https://api.frankfurter.app"`
	OpenERAPIURL   string `envconfig:"OPENERAPI_URL" default:"https://open.er-api.com"`
	CurrencyAPIURL string `envconfig:"CURRENCYAPI_URL" default:"https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@latest/v1"`
}

// CryptoConfig holds the crypto provider endpoints, in fallback order.
type CryptoConfig struct {
	CoinGeckoURL     string `envconfig:"COINGECKO_URL" default:"https://api.coingecko.com/api/v3"`
	CoinCapURL       string `envconfig:"COINCAP_URL" default:"https://api.coincap.io/v2"`
	CryptoCompareURL string `envconfig:"CRYPTOCOMPARE_URL" default:"https://min-api.cryptocompare.com"`
}

// RatesConfig holds resolution-wide tunables.
type RatesConfig struct {
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"5s"`
	CacheTTL    time.Duration `envconfig:"CACHE_TTL" default:"30m"`
}

// AppConfig is the full application configuration, loaded from the
// environment with optional .env support.
type AppConfig struct {
	Server ServerConfig `envconfig:"SERVER"`
	Fiat   FiatConfig   `envconfig:"FIAT"`
	Crypto CryptoConfig `envconfig:"CRYPTO"`
	Rates  RatesConfig  `envconfig:"RATES"`
}

// Load reads the configuration from the environment. A missing .env file is
// not an error.
func Load(logger *slog.Logger) (*AppConfig, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using system environment variables")
	} else {
		logger.Info("Environment variables loaded from .env file")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	logger.Info("App config loaded",
		"port", cfg.Server.Port,
		"http_timeout", cfg.Rates.HTTPTimeout,
		"cache_ttl", cfg.Rates.CacheTTL,
	)
	return &cfg, nil
}
