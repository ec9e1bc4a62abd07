// Package browse composes category selection, search and filtering into the
// list a shopper sees, and holds the per-session browsing state.
package browse

import (
	"github.com/siyara/storefront/internal/domain"
	"github.com/siyara/storefront/internal/filter"
	"github.com/siyara/storefront/internal/search"
)

// SelectCategory keeps products in category. CategoryAll keeps everything.
func SelectCategory(products []domain.Product, category domain.Category) []domain.Product {
	if category == domain.CategoryAll || category == "" {
		return products
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Criteria is everything that shapes the visible list.
type Criteria struct {
	Category domain.Category
	Query    string
	Filters  domain.FilterState
}

// Searched applies the category and the search query, in that order.
func Searched(products []domain.Product, c Criteria) []domain.Product {
	return search.Match(SelectCategory(products, c.Category), c.Query)
}

// Pipeline returns the visible list: category, then search, then filter and
// sort.
func Pipeline(products []domain.Product, c Criteria) []domain.Product {
	return filter.Apply(Searched(products, c), c.Filters)
}
