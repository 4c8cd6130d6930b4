package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/require"

	"barganhamogi/internal/app"
	"barganhamogi/internal/backend"
	"barganhamogi/internal/deeplink"
	"barganhamogi/internal/domain"
	"barganhamogi/internal/favorites"
	"barganhamogi/internal/http/handlers"
)

// fakeSource feeds the controller a canned snapshot.
type fakeSource struct {
	products    []domain.Product
	productsErr error
	categories  []domain.Category
	slides      []string
}

func (f *fakeSource) FetchProducts(context.Context) ([]domain.Product, error) {
	return f.products, f.productsErr
}
func (f *fakeSource) FetchCategories(context.Context) ([]domain.Category, error) {
	return f.categories, nil
}
func (f *fakeSource) FetchHeroSlides(context.Context) ([]string, error) {
	return f.slides, nil
}

// fakeBackend records listing submissions instead of calling out.
type fakeBackend struct {
	created    []backend.NewProduct
	uploads    []string
	failCreate bool
	failUpload bool
}

func (f *fakeBackend) CreateProduct(_ context.Context, np backend.NewProduct) (domain.Product, error) {
	if f.failCreate {
		return domain.Product{}, &backend.APIError{Status: 500, Message: "boom"}
	}
	f.created = append(f.created, np)
	return domain.Product{
		ID: 100 + len(f.created), Title: np.Title, Description: np.Description,
		Price: np.Price, Images: np.Images, Category: np.Category,
		Status: np.Status, Active: np.Active,
	}, nil
}

func (f *fakeBackend) UploadImage(_ context.Context, path string, _ []byte, _ string) (string, error) {
	if f.failUpload {
		return "", &backend.APIError{Status: 500, Message: "storage down"}
	}
	f.uploads = append(f.uploads, path)
	return "http://cdn/" + path, nil
}

func newTestApp(t *testing.T, src app.Source) (*fiber.App, *app.Controller, *fakeBackend) {
	t.Helper()

	ctrl := app.NewController()
	if src != nil {
		_ = ctrl.LoadSnapshot(context.Background(), src)
	}

	db, err := favorites.OpenDB(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	be := &fakeBackend{}
	deps := handlers.NewDeps(ctrl, favorites.NewStore(db), be, deeplink.New(""))

	fapp := fiber.New()
	fapp.Use(requestid.New())
	api := fapp.Group("/api/v1")
	api.Get("/home", deps.Home.Home)
	api.Get("/categories", deps.Categories.List)
	api.Get("/offers", deps.Offers.List)
	api.Get("/products/:id", deps.Products.Detail)
	api.Get("/products/:id/whatsapp", deps.Products.Contact)
	api.Get("/favorites", deps.Favorites.List)
	api.Post("/favorites/toggle", deps.Favorites.Toggle)
	api.Post("/products", deps.Sell.Create)

	return fapp, ctrl, be
}

func catalogSource(n int) *fakeSource {
	products := make([]domain.Product, 0, n)
	for i := n; i > 0; i-- {
		cat := "Livros"
		if i%2 == 0 {
			cat = "Móveis"
		}
		products = append(products, domain.Product{
			ID:       i,
			Title:    fmt.Sprintf("Produto %d", i),
			Category: cat,
			Status:   domain.StatusGood,
			Images:   []string{fmt.Sprintf("http://cdn/%d.jpg", i)},
			Active:   true,
		})
	}
	return &fakeSource{
		products:   products,
		categories: []domain.Category{{ID: 1, Name: "Livros"}, {ID: 2, Name: "Móveis"}},
	}
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
