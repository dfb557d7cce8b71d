package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/quotly/quotly/pkg/registry"
)

// ListCurrencies returns the supported fiat, crypto and stablecoin codes.
func ListCurrencies(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return SuccessResponseJSON(c, fiber.StatusOK, "Supported currencies", fiber.Map{
			"fiat":        deps.Registry.FiatCodes(),
			"crypto":      deps.Registry.CryptoCodes(),
			"stablecoins": deps.Registry.StablecoinCodes(),
		})
	}
}

// ClassifyCurrency reports how a single currency code is classified.
func ClassifyCurrency(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := c.Params("code")

		kind, err := deps.Registry.Classify(code)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Unsupported currency", err.Error())
		}

		return SuccessResponseJSON(c, fiber.StatusOK, "Currency classified", fiber.Map{
			"code": registry.Normalize(code),
			"kind": kind,
		})
	}
}
