package main

import (
	"fmt"
	"log/slog"
	"os"

	charm "github.com/charmbracelet/log"

	infracache "github.com/quotly/quotly/infra/cache"
	"github.com/quotly/quotly/infra/metrics"
	"github.com/quotly/quotly/infra/providers"
	"github.com/quotly/quotly/pkg/config"
	"github.com/quotly/quotly/pkg/domain"
	"github.com/quotly/quotly/pkg/provider"
	"github.com/quotly/quotly/pkg/registry"
	"github.com/quotly/quotly/pkg/service/exchange"
	"github.com/quotly/quotly/pkg/service/history"
	"github.com/quotly/quotly/webapi"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(logger)
	if err != nil {
		charm.Fatal("failed to load config", "error", err)
	}

	reg := registry.New()
	rateCache := infracache.NewMemoryCache(cfg.Rates.CacheTTL)
	rateMetrics := metrics.NewRateMetrics()
	httpClient := providers.NewHTTPClient(cfg.Rates.HTTPTimeout)

	fiatChain := provider.NewChain("fiat", domain.KindFiat, []provider.RateProvider{
		providers.NewFrankfurter(cfg.Fiat.FrankfurterURL, httpClient, logger),
		providers.NewOpenERAPI(cfg.Fiat.OpenERAPIURL, httpClient, logger),
		providers.NewCurrencyAPI(cfg.Fiat.CurrencyAPIURL, httpClient, logger),
	}, logger, rateMetrics)

	// CoinCap only quotes against USD; it pivots non-USD targets through
	// the fiat chain.
	cryptoChain := provider.NewChain("crypto", domain.KindCrypto, []provider.RateProvider{
		providers.NewCoinGecko(cfg.Crypto.CoinGeckoURL, httpClient, reg, logger),
		providers.NewCoinCap(cfg.Crypto.CoinCapURL, httpClient, reg, fiatChain, logger),
		providers.NewCryptoCompare(cfg.Crypto.CryptoCompareURL, httpClient, logger),
	}, logger, rateMetrics)

	stableChain := provider.NewChain("stablecoin", domain.KindStablecoin, []provider.RateProvider{
		providers.NewCryptoCompare(cfg.Crypto.CryptoCompareURL, httpClient, logger),
		providers.NewCoinGeckoStablecoin(cfg.Crypto.CoinGeckoURL, httpClient, reg, logger),
	}, logger, rateMetrics)

	rates := exchange.New(reg, fiatChain, cryptoChain, stableChain, rateCache, logger, rateMetrics)
	conversions := history.New()

	app := webapi.SetupApp(webapi.Deps{
		Rates:    rates,
		History:  conversions,
		Registry: reg,
		Logger:   logger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "addr", addr)
	if err := app.Listen(addr); err != nil {
		charm.Fatal("server stopped", "error", err)
	}
}
