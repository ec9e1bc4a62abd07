// Package search implements the storefront's free-text product search and
// the debounce machinery that separates what the user is typing from the
// query the list is filtered by.
package search

import (
	"strings"

	"github.com/siyara/storefront/internal/domain"
)

// Tokenize lower-cases and trims the query and splits it on whitespace
// runs. A blank query yields no words.
func Tokenize(query string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(query)))
}

// SearchableText is the lower-cased text a product is matched against:
// name, description, material, category, then tags, joined by single spaces.
func SearchableText(p domain.Product) string {
	parts := make([]string, 0, 4+len(p.Tags))
	parts = append(parts, p.Name, p.Description, p.Material, string(p.Category))
	parts = append(parts, p.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Matches reports whether every word occurs as a literal substring of the
// product's searchable text.
func Matches(p domain.Product, words []string) bool {
	text := SearchableText(p)
	for _, w := range words {
		if !strings.Contains(text, w) {
			return false
		}
	}
	return true
}

// Match returns the products matching query in their input order. A blank
// query returns products unchanged.
func Match(products []domain.Product, query string) []domain.Product {
	words := Tokenize(query)
	if len(words) == 0 {
		return products
	}

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, words) {
			out = append(out, p)
		}
	}
	return out
}
