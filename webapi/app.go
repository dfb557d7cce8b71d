package webapi

import (
	"context"
	"io"
	"log/slog"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quotly/quotly/pkg/domain"
	"github.com/quotly/quotly/pkg/registry"
	"github.com/quotly/quotly/pkg/service/history"
)

// RateService resolves exchange rates and conversions.
type RateService interface {
	Resolve(ctx context.Context, source, target string) (*domain.RateQuote, error)
	Convert(ctx context.Context, amount float64, source, target string) (*domain.Conversion, error)
	HistoricalSeries(ctx context.Context, source, target string, days int) ([]domain.HistoricalPoint, error)
}

// HistoryService records and retrieves past conversions.
type HistoryService interface {
	Append(sessionID string, rec history.Record) history.Record
	Recent(sessionID string, limit int) []history.Record
	ExportCSV(sessionID string, w io.Writer) error
}

// Deps carries the services the HTTP layer depends on.
type Deps struct {
	Rates    RateService
	History  HistoryService
	Registry *registry.Registry
	Logger   *slog.Logger
}

// SetupApp configures the Fiber application with all routes and middleware.
func SetupApp(deps Deps) *fiber.App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	app := fiber.New(fiber.Config{
		AppName: "quotly",
	})

	app.Use(recover.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	api.Get("/rates/:from/:to", GetRate(deps))
	api.Get("/rates/:from/:to/history", HistoricalRates(deps))
	api.Post("/convert", Convert(deps))
	api.Get("/currencies", ListCurrencies(deps))
	api.Get("/currencies/:code/classify", ClassifyCurrency(deps))
	api.Get("/history", RecentHistory(deps))
	api.Get("/history/export", ExportHistory(deps))

	return app
}
