package backend_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barganhamogi/internal/backend"
	"barganhamogi/internal/domain"
)

func TestFetchProductsSanitizesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/products", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 2, "title": "Sofá", "price": 350, "images": "[\"http://cdn/sofa.jpg\"]",
			 "status": "Como Novo", "active": true, "app_categories": {"name": "Móveis"}},
			{"id": 1, "title": "", "price": "nope", "images": 7, "active": true}
		]`))
	}))
	defer srv.Close()

	c := backend.New(srv.URL, "anon-key")
	products, err := c.FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, 2, products[0].ID)
	assert.Equal(t, "Móveis", products[0].Category)
	assert.Equal(t, []string{"http://cdn/sofa.jpg"}, products[0].Images)

	assert.Equal(t, "Sem título", products[1].Title)
	assert.Equal(t, 0.0, products[1].Price)
	assert.Empty(t, products[1].Images)
	assert.Equal(t, domain.DefaultCategory, products[1].Category)
}

func TestFetchProductsTableMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"42P01","message":"relation \"public.products\" does not exist"}`))
	}))
	defer srv.Close()

	c := backend.New(srv.URL, "anon-key")
	_, err := c.FetchProducts(context.Background())
	require.Error(t, err)
	assert.True(t, backend.IsTableMissing(err))
	assert.Contains(t, err.Error(), "[42P01]")
}

func TestFetchCategoriesSoftError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	}))
	defer srv.Close()

	c := backend.New(srv.URL, "anon-key")
	_, err := c.FetchCategories(context.Background())
	require.Error(t, err)
	assert.False(t, backend.IsTableMissing(err))
}

func TestFetchHeroSlidesFiltersShortURLs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"image_url": "http://cdn/banner1.jpg"},
			{"image_url": ""},
			{"image_url": 42},
			{"image_url": "x.j"}
		]`))
	}))
	defer srv.Close()

	c := backend.New(srv.URL, "anon-key")
	slides, err := c.FetchHeroSlides(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"http://cdn/banner1.jpg"}, slides)
}

func TestCreateProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"title":"Bicicleta"`)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"id": 10, "title": "Bicicleta", "price": 500,
			"images": ["http://cdn/bike.jpg"], "category": "Esporte", "status": "Novo", "active": true}]`))
	}))
	defer srv.Close()

	c := backend.New(srv.URL, "anon-key")
	created, err := c.CreateProduct(context.Background(), backend.NewProduct{
		Title: "Bicicleta", Price: 500, Images: []string{"http://cdn/bike.jpg"},
		Category: "Esporte", Status: domain.StatusNew, Active: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, created.ID)
	assert.Equal(t, "Esporte", created.Category)
}

func TestUploadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/v1/object/product-images/products/u1/1-0.jpg", r.URL.Path)
		assert.Equal(t, "image/jpeg", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"Key":"product-images/products/u1/1-0.jpg"}`))
	}))
	defer srv.Close()

	c := backend.New(srv.URL, "anon-key")
	url, err := c.UploadImage(context.Background(), "products/u1/1-0.jpg", []byte("jpegbytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/storage/v1/object/public/product-images/products/u1/1-0.jpg", url)
}
