package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barganhamogi/internal/domain"
)

type listingForm struct {
	title, description, price, category, condition string
	sellerName, sellerWhatsapp                     string
	photos                                         []string
}

func validListing() listingForm {
	return listingForm{
		title:          "Bicicleta Aro 29",
		description:    "Pouco usada, freio a disco.",
		price:          "650.00",
		category:       "Móveis",
		condition:      domain.StatusLikeNew,
		sellerName:     "João",
		sellerWhatsapp: "5511988887777",
		photos:         []string{"bike.jpg"},
	}
}

func listingRequest(t *testing.T, form listingForm) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"title": form.title, "description": form.description, "price": form.price,
		"category": form.category, "condition": form.condition,
		"sellerName": form.sellerName, "sellerWhatsapp": form.sellerWhatsapp,
	}
	for k, v := range fields {
		if v != "" {
			require.NoError(t, w.WriteField(k, v))
		}
	}
	for _, name := range form.photos {
		fw, err := w.CreateFormFile("photos", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/v1/products", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestSellCreatesListing(t *testing.T) {
	fapp, ctrl, be := newTestApp(t, catalogSource(2))

	resp, err := fapp.Test(listingRequest(t, validListing()))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created domain.Product
	decodeBody(t, resp, &created)
	assert.Equal(t, "Bicicleta Aro 29", created.Title)

	require.Len(t, be.created, 1)
	np := be.created[0]
	assert.Contains(t, np.Description, "Vendedor: João")
	assert.Contains(t, np.Description, "Whats: 5511988887777")
	assert.Equal(t, 650.0, np.Price)
	assert.True(t, np.Active)
	assert.Equal(t, domain.DefaultStore, np.StoreID)
	assert.Equal(t, 2, np.CategoryID) // resolved from the snapshot
	require.Len(t, np.Images, 1)
	assert.Contains(t, np.Images[0], "http://cdn/products/")

	// the new listing shows up first in the snapshot
	products := ctrl.Products()
	assert.Equal(t, created.ID, products[0].ID)
}

func TestSellRequiresAllFields(t *testing.T) {
	fapp, _, _ := newTestApp(t, catalogSource(2))

	missing := []func(*listingForm){
		func(f *listingForm) { f.title = "" },
		func(f *listingForm) { f.description = "" },
		func(f *listingForm) { f.price = "" },
		func(f *listingForm) { f.sellerName = "" },
		func(f *listingForm) { f.sellerWhatsapp = "not-a-phone" },
	}
	for _, mutate := range missing {
		form := validListing()
		mutate(&form)
		resp, err := fapp.Test(listingRequest(t, form))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}
}

func TestSellRequiresPhoto(t *testing.T) {
	fapp, _, _ := newTestApp(t, catalogSource(2))

	form := validListing()
	form.photos = nil
	resp, err := fapp.Test(listingRequest(t, form))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSellCapsPhotoCount(t *testing.T) {
	fapp, _, _ := newTestApp(t, catalogSource(2))

	form := validListing()
	form.photos = []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"}
	resp, err := fapp.Test(listingRequest(t, form))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSellRejectsInvalidCondition(t *testing.T) {
	fapp, _, _ := newTestApp(t, catalogSource(2))

	form := validListing()
	form.condition = "Quebrado"
	resp, err := fapp.Test(listingRequest(t, form))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSellUploadFailure(t *testing.T) {
	fapp, _, be := newTestApp(t, catalogSource(2))
	be.failUpload = true

	resp, err := fapp.Test(listingRequest(t, validListing()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestSellCreateFailure(t *testing.T) {
	fapp, ctrl, be := newTestApp(t, catalogSource(2))
	be.failCreate = true

	resp, err := fapp.Test(listingRequest(t, validListing()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Len(t, ctrl.Products(), 2) // snapshot untouched
}
