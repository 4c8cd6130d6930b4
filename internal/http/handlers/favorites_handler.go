package handlers

import (
	"github.com/gofiber/fiber/v2"

	"barganhamogi/internal/app"
	"barganhamogi/internal/deeplink"
	"barganhamogi/internal/domain"
	"barganhamogi/internal/favorites"
	applog "barganhamogi/internal/log"
	"barganhamogi/internal/validate"
)

type FavoritesHandler struct {
	State *app.Controller
	Store *favorites.Store
	Links *deeplink.Builder
}

type favoriteItem struct {
	domain.Product
	Whatsapp string `json:"whatsapp"`
}

// List serves the session's favorite ids plus the matching products. The
// set is intersected with the catalog snapshot at render time, so ids whose
// product is gone stay in the set but yield no item.
func (h *FavoritesHandler) List(c *fiber.Ctx) error {
	if !snapshotOK(c, h.State) {
		return nil
	}
	sid := sessionID(c)
	ids, err := h.Store.List(sid)
	if err != nil {
		applog.Error(c, "favorites.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Não foi possível carregar os favoritos."})
	}

	member := make(map[int]bool, len(ids))
	for _, id := range ids {
		member[id] = true
	}
	items := []favoriteItem{}
	for _, p := range h.State.Products() {
		if member[p.ID] {
			items = append(items, favoriteItem{Product: p, Whatsapp: h.Links.FromFavorites(p)})
		}
	}
	return c.JSON(fiber.Map{"ids": ids, "items": items})
}

// Toggle flips a product in and out of the session's favorites. Adding a
// product also returns the seller notification deep link.
func (h *FavoritesHandler) Toggle(c *fiber.Ctx) error {
	sid := sessionID(c)
	id, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "productId inválido."})
	}

	added, err := h.Store.Toggle(sid, id)
	if err != nil {
		applog.Error(c, "favorites.toggle.fail", err, map[string]any{"product": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Não foi possível salvar o favorito."})
	}

	resp := fiber.Map{"productId": id, "favorited": added}
	if added {
		if p, found := h.State.FindProduct(id); found {
			name, _ := validate.Name(c.FormValue("clientName"))
			resp["whatsapp"] = h.Links.Favorited(name, p)
		}
	}
	applog.Audit(c, "favorites.toggle", map[string]any{"product": id, "favorited": added})
	return c.JSON(resp)
}
