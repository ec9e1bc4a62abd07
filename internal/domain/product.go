package domain

import "strings"

// Category groups products on the storefront shelves.
type Category string

// CategoryAll is the selector sentinel that matches every product. It is
// never a valid product category.
const CategoryAll Category = "All"

const (
	CategoryNecklaces Category = "Necklaces"
	CategoryEarrings  Category = "Earrings"
	CategoryBracelets Category = "Bracelets"
	CategoryRings     Category = "Rings"
	CategorySets      Category = "Sets"
)

// ProductCategories lists the categories a product may belong to, in shelf
// order.
var ProductCategories = []Category{
	CategoryNecklaces,
	CategoryEarrings,
	CategoryBracelets,
	CategoryRings,
	CategorySets,
}

// SelectorCategories lists the choices offered by the category selector.
func SelectorCategories() []Category {
	return append([]Category{CategoryAll}, ProductCategories...)
}

// IsProductCategory reports whether c is one of the closed product
// categories.
func (c Category) IsProductCategory() bool {
	for _, pc := range ProductCategories {
		if c == pc {
			return true
		}
	}
	return false
}

// ParseCategory resolves a selector value case-insensitively. An empty
// string selects All.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryAll, true
	}
	for _, c := range SelectorCategories() {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

// Product is a single catalog item. Products are loaded once and never
// mutated.
type Product struct {
	ID          string   `json:"id" yaml:"id" validate:"required"`
	Name        string   `json:"name" yaml:"name" validate:"required"`
	Price       int64    `json:"price" yaml:"price" validate:"gte=0"`
	Category    Category `json:"category" yaml:"category" validate:"required,product_category"`
	Images      []string `json:"images" yaml:"images" validate:"required,min=1,dive,required,uri"`
	Description string   `json:"description" yaml:"description"`
	Material    string   `json:"material" yaml:"material"`
	IsNew       bool     `json:"isNew,omitempty" yaml:"isNew,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Thumbnail returns the first image.
func (p Product) Thumbnail() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// PriceBounds returns the lowest and highest price across products, or the
// zero range for an empty slice.
func PriceBounds(products []Product) PriceRange {
	if len(products) == 0 {
		return PriceRange{}
	}
	r := PriceRange{Min: products[0].Price, Max: products[0].Price}
	for _, p := range products[1:] {
		r.Min = min(r.Min, p.Price)
		r.Max = max(r.Max, p.Price)
	}
	return r
}

// CatalogDocument is the static catalog as stored on disk.
type CatalogDocument struct {
	Products        []Product `json:"products" yaml:"products" validate:"dive"`
	WhatsAppContact string    `json:"whatsappContact" yaml:"whatsappContact" validate:"required,numeric"`
}
