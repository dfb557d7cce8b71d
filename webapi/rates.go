package webapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/quotly/quotly/pkg/service/exchange"
)

// GetRate returns the current exchange rate for a currency pair.
// A provider outage is not an HTTP error: the quote carries either a
// stale-cache warning or an error sentinel, and the UI decides how to
// render it.
func GetRate(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from := c.Params("from")
		to := c.Params("to")

		quote, err := deps.Rates.Resolve(c.UserContext(), from, to)
		if err != nil {
			deps.Logger.Warn("rate lookup rejected",
				"from", from, "to", to, "error", err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Unsupported currency", err.Error())
		}

		return SuccessResponseJSON(c, fiber.StatusOK, "Rate retrieved", quote)
	}
}

// HistoricalRates returns a simulated daily rate series for charting.
func HistoricalRates(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from := c.Params("from")
		to := c.Params("to")

		days := exchange.DefaultSeriesDays
		if v := c.Query("days"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > 365 {
				return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid days parameter",
					"days must be an integer between 1 and 365")
			}
			days = n
		}

		points, err := deps.Rates.HistoricalSeries(c.UserContext(), from, to, days)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Historical rates unavailable", err.Error())
		}

		return SuccessResponseJSON(c, fiber.StatusOK, "Historical rates retrieved", fiber.Map{
			"source": from,
			"target": to,
			"days":   days,
			"points": points,
		})
	}
}
