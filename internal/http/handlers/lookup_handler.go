package handlers

import (
	"smartpantry/internal/lookup"
	"smartpantry/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type LookupHandler struct {
	Products *lookup.Client
}

// GET /api/v1/barcode/lookup?code=...
// Enrichment only: a failed upstream lookup still answers 200 with the
// fallback names, it never turns into an error for the scan page.
func (h *LookupHandler) Lookup(c *fiber.Ctx) error {
	code, ok := validate.Code(c.Query("code"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":    false,
			"error": "missing or invalid code",
		})
	}

	names := h.Products.Lookup(c.UserContext(), code)
	return c.JSON(fiber.Map{
		"ok":             true,
		"code":           names.Code,
		"name_primary":   names.NamePrimary,
		"name_secondary": names.NameSecond,
	})
}
