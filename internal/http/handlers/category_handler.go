package handlers

import (
	"github.com/gofiber/fiber/v2"

	"barganhamogi/internal/app"
)

type CategoryHandler struct {
	State *app.Controller
}

// List serves the category names for the filter dropdown. When the category
// fetch failed at startup these are the static defaults.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": h.State.CategoryNames()})
}
