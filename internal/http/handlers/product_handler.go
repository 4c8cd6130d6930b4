package handlers

import (
	"github.com/gofiber/fiber/v2"

	"barganhamogi/internal/app"
	"barganhamogi/internal/deeplink"
	applog "barganhamogi/internal/log"
	"barganhamogi/internal/validate"
)

type ProductHandler struct {
	State *app.Controller
	Links *deeplink.Builder
}

// Detail serves one product with its contact deep link.
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	if !snapshotOK(c, h.State) {
		return nil
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Produto não encontrado."})
	}
	p, found := h.State.FindProduct(id)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Produto não encontrado."})
	}
	return c.JSON(fiber.Map{
		"product":  p,
		"whatsapp": h.Links.Details(p),
	})
}

// Contact serves the wa.me link for a product. source selects the message
// template: card (default), details, or favorites.
func (h *ProductHandler) Contact(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Produto não encontrado."})
	}
	p, found := h.State.FindProduct(id)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Produto não encontrado."})
	}

	var url string
	switch c.Query("source") {
	case "details":
		url = h.Links.Details(p)
	case "favorites":
		url = h.Links.FromFavorites(p)
	default:
		url = h.Links.Negotiate(p)
	}
	return c.JSON(fiber.Map{"url": url})
}
