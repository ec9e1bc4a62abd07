package catalog

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/siyara/storefront/internal/domain"
)

// Store is a read-only, indexed view of a catalog document. It is safe for
// concurrent use.
type Store struct {
	products  []domain.Product
	index     map[string]int
	bounds    domain.PriceRange
	materials []string
	contact   string
}

// NewStore indexes a validated document.
func NewStore(doc *domain.CatalogDocument) *Store {
	products := slices.Clone(doc.Products)
	index := make(map[string]int, len(products))
	materials := make([]string, 0, len(products))
	for i, p := range products {
		index[p.ID] = i
		if p.Material != "" && !slices.Contains(materials, p.Material) {
			materials = append(materials, p.Material)
		}
	}
	collate.New(language.Und).SortStrings(materials)

	return &Store{
		products:  products,
		index:     index,
		bounds:    domain.PriceBounds(products),
		materials: materials,
		contact:   doc.WhatsAppContact,
	}
}

// Products returns every product in catalog order.
func (s *Store) Products() []domain.Product {
	return slices.Clone(s.products)
}

// Len returns the number of products.
func (s *Store) Len() int {
	return len(s.products)
}

// Get looks a product up by id.
func (s *Store) Get(id string) (domain.Product, bool) {
	i, ok := s.index[id]
	if !ok {
		return domain.Product{}, false
	}
	return s.products[i], true
}

// Select returns the products whose id is in ids, in catalog order. Ids
// with no product are skipped.
func (s *Store) Select(ids []string) []domain.Product {
	out := make([]domain.Product, 0, len(ids))
	for _, p := range s.products {
		if slices.Contains(ids, p.ID) {
			out = append(out, p)
		}
	}
	return out
}

// PriceBounds returns the catalog's price span.
func (s *Store) PriceBounds() domain.PriceRange {
	return s.bounds
}

// Materials returns the distinct materials, collated.
func (s *Store) Materials() []string {
	return slices.Clone(s.materials)
}

// Contact returns the WhatsApp number orders are sent to.
func (s *Store) Contact() string {
	return s.contact
}
