// Package catalog computes the visible page of products for a given filter.
// Query is a pure function over the in-memory snapshot: identical inputs give
// identical output, so it is safe to recompute on every request.
package catalog

import (
	"strings"

	"barganhamogi/internal/domain"
)

// PageSize is the number of products per page.
const PageSize = 12

// maxHeroFallback caps how many product previews stand in for hero slides.
const maxHeroFallback = 5

// Result is one page of the filtered catalog.
type Result struct {
	Items       []domain.Product `json:"items"`
	TotalCount  int              `json:"totalCount"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
}

// Query filters products by category and free-text query and returns the
// requested page. category "Todos" matches everything; q matches
// case-insensitively against title or description. page is 1-indexed and
// clamped to [1, totalPages]. Input order is preserved; the snapshot arrives
// newest-first and the engine never re-sorts.
func Query(products []domain.Product, category, q string, page int) Result {
	q = strings.ToLower(q)

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if category != domain.AllCategories && p.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		filtered = append(filtered, p)
	}

	totalCount := len(filtered)
	totalPages := (totalCount + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	current := page
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	start := (current - 1) * PageSize
	end := start + PageSize
	if start > totalCount {
		start = totalCount
	}
	if end > totalCount {
		end = totalCount
	}

	return Result{
		Items:       filtered[start:end],
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		CurrentPage: current,
	}
}

// HeroImages picks the home carousel: manually curated slides when any exist,
// otherwise the first image of up to five products.
func HeroImages(slides []string, products []domain.Product) []string {
	if len(slides) > 0 {
		return slides
	}
	out := []string{}
	for _, p := range products {
		if len(p.Images) == 0 {
			continue
		}
		out = append(out, p.Images[0])
		if len(out) == maxHeroFallback {
			break
		}
	}
	return out
}
