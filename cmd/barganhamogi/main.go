package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"barganhamogi/internal/app"
	"barganhamogi/internal/backend"
	"barganhamogi/internal/config"
	"barganhamogi/internal/deeplink"
	"barganhamogi/internal/favorites"
	"barganhamogi/internal/http/handlers"
	applog "barganhamogi/internal/log"
)

func main() {
	cfg := config.Load()
	applog.Setup(cfg.LogFile)

	db, err := favorites.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	be := backend.New(cfg.BackendURL, cfg.BackendKey)
	ctrl := app.NewController()
	if cfg.BackendConfigured() {
		if err := ctrl.LoadSnapshot(context.Background(), be); err != nil {
			// catalog endpoints will answer 503 until the backend is fixed
			log.Printf("[snapshot] catalog unavailable: %v", err)
		}
	} else {
		log.Printf("[snapshot] backend not configured; serving empty catalog")
	}

	fapp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Algo deu errado. Tente novamente.",
			})
		},
	})
	// listing photos arrive inline in the multipart form
	fapp.Server().MaxRequestBodySize = 8 << 20

	fapp.Use(requestid.New())
	fapp.Use(logger.New())
	fapp.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	deps := handlers.NewDeps(ctrl, favorites.NewStore(db), be, deeplink.New(cfg.SellerPhone))

	api := fapp.Group("/api/v1")
	api.Get("/home", deps.Home.Home)
	api.Get("/categories", deps.Categories.List)
	api.Get("/offers", limiter.New(limiter.Config{Max: 60, Expiration: time.Minute}), deps.Offers.List)
	api.Get("/products/:id", deps.Products.Detail)
	api.Get("/products/:id/whatsapp", deps.Products.Contact)
	api.Get("/favorites", deps.Favorites.List)
	api.Post("/favorites/toggle", deps.Favorites.Toggle)
	api.Post("/products", deps.Sell.Create)

	fapp.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	fapp.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Página não encontrada"})
	})

	log.Fatal(fapp.Listen(":" + cfg.Port))
}
