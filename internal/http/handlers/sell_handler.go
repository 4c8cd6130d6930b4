package handlers

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"barganhamogi/internal/app"
	"barganhamogi/internal/backend"
	"barganhamogi/internal/domain"
	applog "barganhamogi/internal/log"
	"barganhamogi/internal/validate"
)

// maxListingPhotos matches the three photo slots of the submission form.
const maxListingPhotos = 3

type SellHandler struct {
	State   *app.Controller
	Backend Backend
}

// Create accepts a multipart listing submission: photos go to backend blob
// storage, then the product record is created and prepended to the snapshot.
func (h *SellHandler) Create(c *fiber.Ctx) error {
	sid := sessionID(c)

	title := strings.TrimSpace(c.FormValue("title"))
	description := strings.TrimSpace(c.FormValue("description"))
	sellerName, nameOK := validate.Name(c.FormValue("sellerName"))
	sellerPhone, phoneOK := validate.Phone(c.FormValue("sellerWhatsapp"))
	price, priceOK := validate.Price(c.FormValue("price"))
	if title == "" || description == "" || !nameOK || !phoneOK || !priceOK {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Por favor, preencha todos os campos obrigatórios.",
		})
	}
	status, ok := validate.Status(c.FormValue("condition"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Estado de conservação inválido."})
	}
	categoryName := strings.TrimSpace(c.FormValue("category"))
	if categoryName == "" {
		categoryName = domain.DefaultCategory
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Envio inválido."})
	}
	photos := form.File["photos"]
	if len(photos) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Seu anúncio precisa de pelo menos uma foto original.",
		})
	}
	if len(photos) > maxListingPhotos {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("No máximo %d fotos por anúncio.", maxListingPhotos),
		})
	}

	ctx := c.UserContext()
	imageURLs := make([]string, 0, len(photos))
	now := time.Now().UnixMilli()
	for i, fh := range photos {
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Envio inválido."})
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Envio inválido."})
		}

		path := fmt.Sprintf("products/%s/%d-%d%s", sid, now, i, filepath.Ext(fh.Filename))
		url, err := h.Backend.UploadImage(ctx, path, data, fh.Header.Get("Content-Type"))
		if err != nil {
			applog.Error(c, "listing.upload.fail", err, map[string]any{"photo": i})
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Falha no upload das fotos."})
		}
		imageURLs = append(imageURLs, url)
	}

	np := backend.NewProduct{
		Title:       title,
		Description: fmt.Sprintf("%s\n\nVendedor: %s\nWhats: %s", description, sellerName, sellerPhone),
		Price:       price,
		Images:      imageURLs,
		Category:    categoryName,
		Status:      status,
		Active:      true,
		StoreID:     domain.DefaultStore,
		UserID:      sid,
	}
	if id, found := h.State.CategoryID(categoryName); found {
		np.CategoryID = id
	}

	created, err := h.Backend.CreateProduct(ctx, np)
	if err != nil {
		applog.Error(c, "listing.create.fail", err, nil)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Erro ao salvar o anúncio. Tente novamente."})
	}

	h.State.AddProduct(created)
	applog.Audit(c, "listing.created", map[string]any{"product": created.ID, "title": created.Title})
	return c.Status(fiber.StatusCreated).JSON(created)
}
