// Package filter narrows a product list by price, material and novelty and
// orders the result.
package filter

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/siyara/storefront/internal/domain"
)

// Default returns the cleared filter state for a catalog with the given
// price bounds.
func Default(bounds domain.PriceRange) domain.FilterState {
	return domain.FilterState{
		PriceRange: bounds,
		Materials:  []string{},
		SortBy:     domain.SortByName,
	}
}

// Apply keeps products inside the price range, with a selected material
// when any are selected, and new when IsNewOnly is set, then sorts them.
// The input slice is not modified.
func Apply(products []domain.Product, state domain.FilterState) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !state.PriceRange.Contains(p.Price) {
			continue
		}
		if len(state.Materials) > 0 && !state.HasMaterial(p.Material) {
			continue
		}
		if state.IsNewOnly && !p.IsNew {
			continue
		}
		out = append(out, p)
	}

	Sort(out, state.SortBy)
	return out
}

// Sort orders products in place. Sorting is stable, and an unrecognized
// order leaves products as they are.
func Sort(products []domain.Product, order domain.SortOrder) {
	switch order {
	case domain.SortByName:
		c := newCollator()
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return c.CompareString(a.Name, b.Name)
		})
	case domain.SortByPriceLow:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case domain.SortByPriceHigh:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case domain.SortByNewest:
		c := newCollator()
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			if a.IsNew != b.IsNew {
				if a.IsNew {
					return -1
				}
				return 1
			}
			return c.CompareString(a.Name, b.Name)
		})
	}
}

// ActiveCount counts the dimensions of state that differ from Default(bounds).
// Each dimension counts at most once.
func ActiveCount(state domain.FilterState, bounds domain.PriceRange) int {
	count := 0
	if state.PriceRange != bounds {
		count++
	}
	if len(state.Materials) > 0 {
		count++
	}
	if state.IsNewOnly {
		count++
	}
	if state.SortBy != domain.SortByName {
		count++
	}
	return count
}

// A Collator is not safe for concurrent use, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.Und)
}
