package validate

import (
	"strconv"
	"strings"
	"unicode"

	"barganhamogi/internal/domain"
)

// ID validates a numeric product id.
func ID(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Q normalizes a search query: trims, caps the length, rejects control
// characters. An empty query is valid and means "no search filter".
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 80 {
		s = s[:80]
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return "", false
		}
	}
	return s, true
}

// Page parses a 1-indexed page number, defaulting to 1. The catalog engine
// clamps the upper bound.
func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Price parses a non-negative price.
func Price(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// Status validates a condition label.
func Status(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, domain.ValidStatus(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// Phone validates a WhatsApp number: digits only, with country code.
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 10 || len(s) > 14 {
		return "", false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return s, true
}
