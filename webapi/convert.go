package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/quotly/quotly/pkg/service/history"
)

// ConvertRequest is the payload for POST /api/convert.
type ConvertRequest struct {
	From   string  `json:"from" validate:"required,len=3|len=4"`
	To     string  `json:"to" validate:"required,len=3|len=4"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// Convert converts an amount between two currencies and records the
// attempt in the session history, including failed resolutions.
func Convert(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := BindAndValidate[ConvertRequest](c)
		if err != nil {
			return nil
		}

		conv, err := deps.Rates.Convert(c.UserContext(), req.Amount, req.From, req.To)
		if err != nil {
			deps.Logger.Warn("conversion rejected",
				"from", req.From, "to", req.To, "error", err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Unsupported currency", err.Error())
		}

		deps.History.Append(sessionID(c), history.Record{
			Source: conv.Quote.Source,
			Target: conv.Quote.Target,
			Amount: conv.OriginalAmount,
			Result: conv.ConvertedAmount,
			Rate:   conv.Quote.Rate,
			Failed: conv.Quote.Error,
		})

		return SuccessResponseJSON(c, fiber.StatusOK, "Conversion complete", conv)
	}
}
