package domain

// Product condition labels as shown to buyers. Anything else coming from the
// backend is coerced to StatusGood.
const (
	StatusNew     = "Novo"
	StatusLikeNew = "Como Novo"
	StatusGood    = "Bom Estado"
	StatusFair    = "Marcas de Uso"
)

// AllCategories is the wildcard category filter.
const AllCategories = "Todos"

// DefaultCategory is the sentinel shown when the category join is missing.
const DefaultCategory = "Variados"

// DefaultStore groups listings submitted through the site itself.
const DefaultStore = "personal_1"

// Product is the validated catalog entity. Only the sanitize package builds
// one from backend data; downstream code relies on its invariants (images are
// non-empty URL strings, status is one of the condition labels, price >= 0).
type Product struct {
	ID          int      `json:"id"`
	StoreID     string   `json:"storeId,omitempty"`
	UserID      string   `json:"userId,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"created_at,omitempty"`
	Active      bool     `json:"active"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ValidStatus reports whether s is one of the condition labels.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusLikeNew, StatusGood, StatusFair:
		return true
	}
	return false
}

// DefaultCategories is served when the category table cannot be fetched.
var DefaultCategories = []string{
	"Móveis",
	"Eletrônicos",
	"Roupas",
	"Esporte",
	"Decoração",
	"Instrumentos",
	"Automotivo",
	"Infantil",
	"Livros",
}
