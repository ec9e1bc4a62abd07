package domain

import (
	"slices"
	"strings"
)

// SortOrder selects how a filtered product list is ordered.
type SortOrder string

const (
	SortByName      SortOrder = "name"
	SortByPriceLow  SortOrder = "price-low"
	SortByPriceHigh SortOrder = "price-high"
	SortByNewest    SortOrder = "newest"
)

// SortOrders lists the supported orders; the first is the default.
var SortOrders = []SortOrder{SortByName, SortByPriceLow, SortByPriceHigh, SortByNewest}

// ParseSortOrder resolves a sort key. An empty string yields the default.
func ParseSortOrder(s string) (SortOrder, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortByName, true
	}
	for _, o := range SortOrders {
		if s == string(o) {
			return o, true
		}
	}
	return "", false
}

// PriceRange is an inclusive price interval.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Contains reports whether price lies within the range, both ends
// inclusive.
func (r PriceRange) Contains(price int64) bool {
	return price >= r.Min && price <= r.Max
}

// FilterState holds the user's current refinement of the list.
type FilterState struct {
	PriceRange PriceRange `json:"price_range"`
	Materials  []string   `json:"materials"`
	IsNewOnly  bool       `json:"is_new_only"`
	SortBy     SortOrder  `json:"sort_by"`
}

// HasMaterial reports whether material is one of the selected materials.
// Matching is exact.
func (f FilterState) HasMaterial(material string) bool {
	return slices.Contains(f.Materials, material)
}

// WithMaterial returns a copy of f with material toggled in the selection.
func (f FilterState) WithMaterial(material string) FilterState {
	out := f
	if i := slices.Index(f.Materials, material); i >= 0 {
		out.Materials = slices.Delete(slices.Clone(f.Materials), i, i+1)
		return out
	}
	out.Materials = append(slices.Clone(f.Materials), material)
	return out
}
