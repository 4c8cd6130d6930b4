package app

import (
	"context"
	"sync"

	"barganhamogi/internal/backend"
	"barganhamogi/internal/catalog"
	"barganhamogi/internal/domain"
	applog "barganhamogi/internal/log"
)

// Source is the read side of the external backend.
type Source interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
	FetchCategories(ctx context.Context) ([]domain.Category, error)
	FetchHeroSlides(ctx context.Context) ([]string, error)
}

// SnapshotError marks the catalog as unusable: the backend is misconfigured
// (missing table) rather than merely empty.
type SnapshotError struct {
	Message string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// Controller owns the in-memory catalog snapshot. Handlers read through it;
// the only writers are the startup snapshot load and listing submission.
type Controller struct {
	mu            sync.RWMutex
	products      []domain.Product
	categories    []domain.Category
	categoryNames []string
	hero          []string
	snapErr       *SnapshotError
}

func NewController() *Controller {
	return &Controller{
		products:      []domain.Product{},
		categoryNames: domain.DefaultCategories,
		hero:          []string{},
	}
}

// LoadSnapshot pulls the catalog from the backend. A missing products table
// is fatal to the catalog (recorded as a SnapshotError and returned); any
// other fetch failure is soft: logged, with the affected section falling
// back (static category list, product-preview hero images).
func (c *Controller) LoadSnapshot(ctx context.Context, src Source) error {
	products, err := src.FetchProducts(ctx)
	if err != nil {
		if backend.IsTableMissing(err) {
			c.mu.Lock()
			c.snapErr = &SnapshotError{
				Message: "Tabela 'products' não encontrada. Verifique seu banco de dados.",
				Code:    "42P01",
			}
			c.mu.Unlock()
			return err
		}
		applog.Error(nil, "snapshot.products.fail", err, nil)
		products = []domain.Product{}
	}

	cats, err := src.FetchCategories(ctx)
	if err != nil {
		applog.Error(nil, "snapshot.categories.fail", err, nil)
		cats = nil
	}
	names := domain.DefaultCategories
	if len(cats) > 0 {
		names = make([]string, 0, len(cats))
		for _, cat := range cats {
			names = append(names, cat.Name)
		}
	}

	slides, err := src.FetchHeroSlides(ctx)
	if err != nil {
		applog.Error(nil, "snapshot.hero.fail", err, nil)
		slides = nil
	}

	c.mu.Lock()
	c.products = products
	c.categories = cats
	c.categoryNames = names
	c.hero = catalog.HeroImages(slides, products)
	c.snapErr = nil
	c.mu.Unlock()

	applog.Info(nil, "snapshot.loaded", map[string]any{
		"products": len(products), "categories": len(names), "hero": len(c.hero),
	})
	return nil
}

// SnapshotError returns the fatal catalog error, if any.
func (c *Controller) SnapshotError() *SnapshotError {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapErr
}

// Products returns the current snapshot, newest-first.
func (c *Controller) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.products
}

// CategoryNames returns the display names for the category filter.
func (c *Controller) CategoryNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.categoryNames
}

// CategoryID resolves a display name to the backend category id.
func (c *Controller) CategoryID(name string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, cat := range c.categories {
		if cat.Name == name {
			return cat.ID, true
		}
	}
	return 0, false
}

// Hero returns the home carousel URLs.
func (c *Controller) Hero() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hero
}

// FindProduct looks a product up by id in the snapshot.
func (c *Controller) FindProduct(id int) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// AddProduct prepends a freshly created listing so it shows up first.
func (c *Controller) AddProduct(p domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := make([]domain.Product, 0, len(c.products)+1)
	next = append(next, p)
	next = append(next, c.products...)
	c.products = next
}
