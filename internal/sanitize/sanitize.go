// Package sanitize is the only boundary allowed to turn raw backend records
// into domain.Product values. The backend snapshot is untrusted: fields may be
// missing, mistyped, or carry image arrays in three different encodings. The
// sanitizer never fails; a malformed record degrades to defaults so the
// catalog always renders something.
package sanitize

import (
	"strings"

	"github.com/tidwall/gjson"

	"barganhamogi/internal/domain"
)

// minImageLen guards against empty and near-empty URL strings.
const minImageLen = 5

// Record converts one raw backend record into a well-formed Product.
func Record(raw gjson.Result) domain.Product {
	p := domain.Product{
		ID:          int(raw.Get("id").Int()),
		StoreID:     raw.Get("storeId").String(),
		UserID:      raw.Get("userId").String(),
		Title:       stringOr(raw.Get("title"), "Sem título"),
		Description: stringOr(raw.Get("description"), ""),
		Price:       price(raw.Get("price")),
		Images:      Images(raw.Get("images")),
		Category:    category(raw),
		Status:      status(raw.Get("status")),
		CreatedAt:   raw.Get("created_at").String(),
		Active:      raw.Get("active").Bool(),
	}
	return p
}

// Records sanitizes every element of a raw JSON array. Non-array input yields
// an empty slice.
func Records(raw gjson.Result) []domain.Product {
	out := []domain.Product{}
	if !raw.IsArray() {
		return out
	}
	raw.ForEach(func(_, r gjson.Result) bool {
		out = append(out, Record(r))
		return true
	})
	return out
}

// Images normalizes the images field. First matching rule wins:
//  1. an array keeps only its non-blank string elements
//  2. a string is parsed as a JSON array if possible (keeping its non-blank
//     string elements); otherwise the string itself becomes a single-element
//     slice when it passes the length check
//  3. anything else yields an empty slice
//
// The length check applies only to bare strings promoted to a sequence;
// filtering sequence elements at the same threshold would make the sanitizer
// non-idempotent for short but valid entries.
func Images(raw gjson.Result) []string {
	out := []string{}
	switch {
	case raw.IsArray():
		raw.ForEach(func(_, v gjson.Result) bool {
			if v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
				out = append(out, v.Str)
			}
			return true
		})
	case raw.Type == gjson.String:
		parsed := gjson.Parse(raw.Str)
		if parsed.IsArray() {
			parsed.ForEach(func(_, v gjson.Result) bool {
				if v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
					out = append(out, v.Str)
				}
				return true
			})
		} else if len(raw.Str) > minImageLen {
			out = append(out, raw.Str)
		}
	}
	return out
}

func stringOr(raw gjson.Result, def string) string {
	if !raw.Exists() || raw.Type == gjson.Null {
		return def
	}
	s := raw.String()
	if s == "" {
		return def
	}
	return s
}

func price(raw gjson.Result) float64 {
	v := raw.Float()
	if v < 0 {
		return 0
	}
	return v
}

func status(raw gjson.Result) string {
	if s := raw.String(); domain.ValidStatus(s) {
		return s
	}
	return domain.StatusGood
}

// category prefers the joined app_categories.name, then a plain category
// field (listings created through the site store the display name directly),
// then the sentinel.
func category(raw gjson.Result) string {
	if name := raw.Get("app_categories.name").String(); name != "" {
		return name
	}
	if name := raw.Get("category").String(); name != "" {
		return name
	}
	return domain.DefaultCategory
}
