package handlers

import (
	"github.com/gofiber/fiber/v2"

	"barganhamogi/internal/app"
)

type HomeHandler struct {
	State *app.Controller
}

// Home serves the hero carousel for the landing view.
func (h *HomeHandler) Home(c *fiber.Ctx) error {
	if !snapshotOK(c, h.State) {
		return nil
	}
	return c.JSON(fiber.Map{"heroImages": h.State.Hero()})
}
