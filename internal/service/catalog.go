package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/siyara/storefront/internal/browse"
	"github.com/siyara/storefront/internal/catalog"
	"github.com/siyara/storefront/internal/domain"
	"github.com/siyara/storefront/internal/filter"
	"github.com/siyara/storefront/internal/order"
	"github.com/siyara/storefront/internal/search"
	apperrors "github.com/siyara/storefront/pkg/errors"
	"github.com/siyara/storefront/pkg/pagination"
)

// WishlistReader provides the wishlist used to annotate products.
type WishlistReader interface {
	Wishlist(ctx context.Context) (domain.Wishlist, error)
}

// ListInput holds the parameters for listing products. A nil price bound
// falls back to the catalog's own; an empty SortBy means by name.
type ListInput struct {
	Category   domain.Category
	Query      string
	MinPrice   *int64
	MaxPrice   *int64
	Materials  []string
	NewOnly    bool
	SortBy     domain.SortOrder
	Pagination pagination.Params
}

// ProductView is a product as shown in lists, annotated for the shopper.
type ProductView struct {
	domain.Product
	Thumbnail  string `json:"thumbnail"`
	Wishlisted bool   `json:"wishlisted"`
}

// ListResult is one page of the visible list plus the state that shaped it.
type ListResult struct {
	pagination.Result[ProductView]
	Category          domain.Category    `json:"category"`
	Filters           domain.FilterState `json:"filters"`
	ActiveFilterCount int                `json:"active_filter_count"`
	Search            search.Stats       `json:"search"`
}

// Facets describes the choices available for narrowing the catalog.
type Facets struct {
	Categories   []domain.Category  `json:"categories"`
	Materials    []string           `json:"materials"`
	PriceBounds  domain.PriceRange  `json:"price_bounds"`
	SortOrders   []domain.SortOrder `json:"sort_orders"`
	Defaults     domain.FilterState `json:"defaults"`
	ProductCount int                `json:"product_count"`
}

// OrderLink is the WhatsApp hand-off for one product.
type OrderLink struct {
	ProductID string `json:"product_id"`
	Contact   string `json:"contact"`
	Message   string `json:"message"`
	URL       string `json:"url"`
}

// WishlistView is the wishlist resolved against the catalog.
type WishlistView struct {
	IDs      []string         `json:"ids"`
	Count    int              `json:"count"`
	Products []domain.Product `json:"products"`
}

// CatalogService implements read operations over the catalog.
type CatalogService struct {
	store    *catalog.Store
	links    *order.LinkBuilder
	wishlist WishlistReader
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store *catalog.Store, links *order.LinkBuilder, wishlist WishlistReader, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:    store,
		links:    links,
		wishlist: wishlist,
		logger:   logger,
	}
}

// List runs the catalog through category, search and filter, then pages
// the result.
func (s *CatalogService) List(ctx context.Context, input ListInput) (*ListResult, error) {
	state, err := s.filterState(input)
	if err != nil {
		return nil, err
	}

	category := input.Category
	if category == "" {
		category = domain.CategoryAll
	}
	criteria := browse.Criteria{Category: category, Query: input.Query, Filters: state}

	products := s.store.Products()
	searched := browse.Searched(products, criteria)
	visible := filter.Apply(searched, state)

	wishlist, err := s.wishlist.Wishlist(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	params := input.Pagination
	if params.PerPage == 0 {
		params = pagination.DefaultParams()
	}
	page := pagination.Window(visible, params)
	views := make([]ProductView, len(page))
	for i, p := range page {
		views[i] = newProductView(p, wishlist)
	}

	return &ListResult{
		Result:            pagination.NewResult(views, len(visible), params),
		Category:          category,
		Filters:           state,
		ActiveFilterCount: filter.ActiveCount(state, s.store.PriceBounds()),
		Search:            search.StatsFor(input.Query, len(searched)),
	}, nil
}

// Get returns a single product.
func (s *CatalogService) Get(ctx context.Context, id string) (*ProductView, error) {
	p, ok := s.store.Get(id)
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}

	wishlist, err := s.wishlist.Wishlist(ctx)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	view := newProductView(p, wishlist)
	return &view, nil
}

// Facets returns the available categories, materials, price span and sort
// orders.
func (s *CatalogService) Facets(_ context.Context) *Facets {
	bounds := s.store.PriceBounds()
	return &Facets{
		Categories:   domain.SelectorCategories(),
		Materials:    s.store.Materials(),
		PriceBounds:  bounds,
		SortOrders:   domain.SortOrders,
		Defaults:     filter.Default(bounds),
		ProductCount: s.store.Len(),
	}
}

// OrderLink builds the WhatsApp deep link for a product.
func (s *CatalogService) OrderLink(_ context.Context, id string) (*OrderLink, error) {
	p, ok := s.store.Get(id)
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	return &OrderLink{
		ProductID: p.ID,
		Contact:   s.links.Contact(),
		Message:   s.links.Message(p),
		URL:       s.links.Link(p),
	}, nil
}

// Wishlist resolves the wishlist against the catalog. Ids with no product
// count toward Count but are left out of Products.
func (s *CatalogService) Wishlist(ctx context.Context) (*WishlistView, error) {
	w, err := s.wishlist.Wishlist(ctx)
	if err != nil {
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	return s.ResolveWishlist(w), nil
}

// ResolveWishlist builds the view for w.
func (s *CatalogService) ResolveWishlist(w domain.Wishlist) *WishlistView {
	ids := w.IDs()
	return &WishlistView{
		IDs:      ids,
		Count:    len(ids),
		Products: s.store.Select(ids),
	}
}

func (s *CatalogService) filterState(input ListInput) (domain.FilterState, error) {
	state := filter.Default(s.store.PriceBounds())

	if input.MinPrice != nil {
		state.PriceRange.Min = *input.MinPrice
	}
	if input.MaxPrice != nil {
		state.PriceRange.Max = *input.MaxPrice
	}
	if state.PriceRange.Min < 0 || state.PriceRange.Max < 0 {
		return state, apperrors.InvalidParameter("price bounds must not be negative")
	}
	if state.PriceRange.Min > state.PriceRange.Max {
		return state, apperrors.InvalidParameter("min_price must not exceed max_price")
	}
	if len(input.Materials) > 0 {
		state.Materials = input.Materials
	}
	state.IsNewOnly = input.NewOnly
	if input.SortBy != "" {
		state.SortBy = input.SortBy
	}
	return state, nil
}

func newProductView(p domain.Product, w domain.Wishlist) ProductView {
	return ProductView{
		Product:    p,
		Thumbnail:  p.Thumbnail(),
		Wishlisted: w.Contains(p.ID),
	}
}
