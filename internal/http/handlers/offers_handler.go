package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"barganhamogi/internal/app"
	"barganhamogi/internal/catalog"
	applog "barganhamogi/internal/log"
	"barganhamogi/internal/validate"
)

type OffersHandler struct {
	State *app.Controller
}

// List serves the filtered, paginated offer listing. Filter parameters run
// through the query-state reducer so that changing category or search always
// lands on page 1, and the explicit page parameter applies last.
func (h *OffersHandler) List(c *fiber.Ctx) error {
	if !snapshotOK(c, h.State) {
		return nil
	}

	st := app.InitialQuery()
	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		st = app.Reduce(st, app.CategorySelected{Name: cat})
	}
	if rawQ := c.Query("q"); rawQ != "" {
		q, ok := validate.Q(rawQ)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "q"})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Termo de busca inválido."})
		}
		st = app.Reduce(st, app.SearchChanged{Text: q})
	}
	st = app.Reduce(st, app.PageChanged{Page: validate.Page(c.Query("page"))})

	res := catalog.Query(h.State.Products(), st.Category, st.Search, st.Page)
	return c.JSON(fiber.Map{
		"items":       res.Items,
		"totalCount":  res.TotalCount,
		"totalPages":  res.TotalPages,
		"currentPage": res.CurrentPage,
		"category":    st.Category,
		"q":           st.Search,
	})
}
