package webapi

import (
	"bytes"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/quotly/quotly/pkg/service/history"
)

// RecentHistory returns the most recent conversions for the session.
func RecentHistory(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := history.DisplayLimit
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid limit parameter",
					"limit must be a positive integer")
			}
			limit = n
		}

		records := deps.History.Recent(sessionID(c), limit)

		return SuccessResponseJSON(c, fiber.StatusOK, "Conversion history", fiber.Map{
			"records": records,
			"count":   len(records),
		})
	}
}

// ExportHistory streams the full session history as a CSV attachment.
func ExportHistory(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := deps.History.ExportCSV(sessionID(c), &buf); err != nil {
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Export failed", err.Error())
		}

		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="conversion_history.csv"`)
		return c.Send(buf.Bytes())
	}
}
