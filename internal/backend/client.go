// Package backend talks to the hosted backend that owns the real data:
// relational tables for products/categories/hero slides and object storage
// for listing photos. Everything it returns is untrusted; product records go
// through the sanitizer before anything downstream sees them.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"barganhamogi/internal/domain"
	"barganhamogi/internal/sanitize"
)

// codeTableMissing is the backend's error code for a missing relation.
const codeTableMissing = "42P01"

const imageBucket = "product-images"

// APIError is a non-2xx answer from the backend, with the machine error code
// when the backend supplied one.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return "[" + e.Code + "] " + e.Message
	}
	return e.Message
}

// IsTableMissing reports whether err means a backend table does not exist.
// This is the one fetch failure treated as fatal to the catalog.
func IsTableMissing(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Code == codeTableMissing
}

type Client struct {
	baseURL string
	anonKey string
	httpc   *http.Client
}

func New(baseURL, anonKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		httpc:   http.DefaultClient,
	}
}

// FetchProducts returns the sanitized snapshot of active products,
// newest-first, with the category name joined in.
func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	raw, err := c.get(ctx, "/rest/v1/products?select=*,app_categories(name)&active=eq.true&order=id.desc")
	if err != nil {
		return nil, err
	}
	return sanitize.Records(raw), nil
}

// FetchCategories returns the category list ordered by name.
func (c *Client) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	raw, err := c.get(ctx, "/rest/v1/app_categories?select=id,name&order=name.asc")
	if err != nil {
		return nil, err
	}
	out := []domain.Category{}
	raw.ForEach(func(_, r gjson.Result) bool {
		name := r.Get("name").String()
		if name != "" {
			out = append(out, domain.Category{ID: int(r.Get("id").Int()), Name: name})
		}
		return true
	})
	return out, nil
}

// FetchHeroSlides returns the curated home carousel URLs in display order.
func (c *Client) FetchHeroSlides(ctx context.Context) ([]string, error) {
	raw, err := c.get(ctx, "/rest/v1/hero_slides?select=image_url&active=eq.true&order=display_order")
	if err != nil {
		return nil, err
	}
	out := []string{}
	raw.ForEach(func(_, r gjson.Result) bool {
		url := r.Get("image_url")
		if url.Type == gjson.String && len(url.Str) > 5 {
			out = append(out, url.Str)
		}
		return true
	})
	return out, nil
}

// NewProduct is a listing submission headed for the backend.
type NewProduct struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
	CategoryID  int      `json:"category_id,omitempty"`
	Status      string   `json:"status"`
	Active      bool     `json:"active"`
	StoreID     string   `json:"storeId"`
	UserID      string   `json:"userId"`
}

// CreateProduct inserts a listing and returns the created record, sanitized.
func (c *Client) CreateProduct(ctx context.Context, np NewProduct) (domain.Product, error) {
	body, err := json.Marshal([]NewProduct{np})
	if err != nil {
		return domain.Product{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rest/v1/products", bytes.NewReader(body))
	if err != nil {
		return domain.Product{}, err
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	raw, err := c.do(req)
	if err != nil {
		return domain.Product{}, err
	}
	created := sanitize.Records(raw)
	if len(created) == 0 {
		return domain.Product{}, &APIError{Status: http.StatusBadGateway, Message: "backend returned no created record"}
	}
	return created[0], nil
}

// UploadImage stores photo bytes in the public listing bucket and returns the
// public URL for the stored object.
func (c *Client) UploadImage(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/storage/v1/object/"+imageBucket+"/"+path, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	c.authorize(req)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if _, err := c.do(req); err != nil {
		return "", err
	}
	return c.baseURL + "/storage/v1/object/public/" + imageBucket + "/" + path, nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
}

func (c *Client) get(ctx context.Context, path string) (gjson.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return gjson.Result{}, err
	}
	c.authorize(req)
	return c.do(req)
}

func (c *Client) do(req *http.Request) (gjson.Result, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return gjson.Result{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return gjson.Result{}, newAPIError(resp.StatusCode, body)
	}
	return gjson.ParseBytes(body), nil
}

func newAPIError(status int, body []byte) *APIError {
	r := gjson.ParseBytes(body)
	msg := r.Get("message").String()
	if msg == "" {
		msg = r.Get("details").String()
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{Status: status, Code: r.Get("code").String(), Message: msg}
}
