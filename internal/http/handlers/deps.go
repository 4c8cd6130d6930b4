package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"barganhamogi/internal/app"
	"barganhamogi/internal/backend"
	"barganhamogi/internal/deeplink"
	"barganhamogi/internal/domain"
	"barganhamogi/internal/favorites"
	applog "barganhamogi/internal/log"
)

// Backend is the write side of the external backend, as the sell flow needs
// it: photo upload plus listing creation.
type Backend interface {
	CreateProduct(ctx context.Context, np backend.NewProduct) (domain.Product, error)
	UploadImage(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

type Deps struct {
	Home       *HomeHandler
	Categories *CategoryHandler
	Offers     *OffersHandler
	Products   *ProductHandler
	Favorites  *FavoritesHandler
	Sell       *SellHandler
}

func NewDeps(ctrl *app.Controller, store *favorites.Store, be Backend, links *deeplink.Builder) *Deps {
	store.OnFavorited = func(productID int) {
		fields := map[string]any{"product": productID}
		if p, ok := ctrl.FindProduct(productID); ok {
			fields["title"] = p.Title
		}
		applog.Audit(nil, "favorites.added", fields)
	}

	return &Deps{
		Home:       &HomeHandler{State: ctrl},
		Categories: &CategoryHandler{State: ctrl},
		Offers:     &OffersHandler{State: ctrl},
		Products:   &ProductHandler{State: ctrl, Links: links},
		Favorites:  &FavoritesHandler{State: ctrl, Store: store, Links: links},
		Sell:       &SellHandler{State: ctrl, Backend: be},
	}
}

// sessionID returns the sid cookie, minting one on first use.
func sessionID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return sid
}

// snapshotOK answers 503 with the configuration problem when the catalog is
// unusable; rendering an empty catalog silently would hide it.
func snapshotOK(c *fiber.Ctx, state *app.Controller) bool {
	if serr := state.SnapshotError(); serr != nil {
		_ = c.Status(fiber.StatusServiceUnavailable).JSON(serr)
		return false
	}
	return true
}
