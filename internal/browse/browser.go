package browse

import (
	"context"
	"sync"

	"github.com/siyara/storefront/internal/catalog"
	"github.com/siyara/storefront/internal/domain"
	"github.com/siyara/storefront/internal/filter"
	"github.com/siyara/storefront/internal/search"
)

// WishlistToggler applies a wishlist toggle and returns the new wishlist.
type WishlistToggler interface {
	Toggle(ctx context.Context, productID string) (domain.Wishlist, domain.WishlistAction, error)
}

// Browser is one shopper's view of the catalog: the search session, filter
// state, selected category and a read-only copy of the wishlist. Wishlist
// changes go through the toggler, which owns the wishlist.
type Browser struct {
	store   *catalog.Store
	session *search.Session
	toggler WishlistToggler

	mu       sync.RWMutex
	category domain.Category
	filters  domain.FilterState
	wishlist domain.Wishlist
}

// New creates a browser over store showing every category with cleared
// filters. opts configure the search session.
func New(store *catalog.Store, wishlist domain.Wishlist, toggler WishlistToggler, opts ...search.Option) *Browser {
	return &Browser{
		store:    store,
		session:  search.NewSession(store.Products(), opts...),
		toggler:  toggler,
		category: domain.CategoryAll,
		filters:  filter.Default(store.PriceBounds()),
		wishlist: wishlist,
	}
}

// SetQuery updates the live search query. Results change once it settles.
func (b *Browser) SetQuery(query string) {
	b.session.SetQuery(query)
}

// Flush settles the live query now.
func (b *Browser) Flush() {
	b.session.Flush()
}

// Query returns the live query.
func (b *Browser) Query() string {
	return b.session.Query()
}

// SettledQuery returns the query results are filtered by.
func (b *Browser) SettledQuery() string {
	return b.session.SettledQuery()
}

// SelectCategory changes the category shelf.
func (b *Browser) SelectCategory(c domain.Category) {
	b.mu.Lock()
	b.category = c
	b.mu.Unlock()
}

// Category returns the selected category.
func (b *Browser) Category() domain.Category {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.category
}

// SetFilters replaces the filter state.
func (b *Browser) SetFilters(state domain.FilterState) {
	b.mu.Lock()
	b.filters = state
	b.mu.Unlock()
}

// Filters returns the filter state.
func (b *Browser) Filters() domain.FilterState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.filters
}

// ClearFilters restores the default filter state.
func (b *Browser) ClearFilters() {
	b.SetFilters(filter.Default(b.store.PriceBounds()))
}

// ActiveFilterCount counts filter dimensions that differ from the default.
func (b *Browser) ActiveFilterCount() int {
	return filter.ActiveCount(b.Filters(), b.store.PriceBounds())
}

// Criteria returns the current category, settled query and filters.
func (b *Browser) Criteria() Criteria {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Criteria{
		Category: b.category,
		Query:    b.session.SettledQuery(),
		Filters:  b.filters,
	}
}

// Results returns the visible list. It starts from the session's settled
// search results, so matching runs once per settle; category and filters
// are applied on top. Both stages only drop products, so this equals
// Pipeline over the whole catalog.
func (b *Browser) Results() []domain.Product {
	snap := b.session.Snapshot()

	b.mu.RLock()
	category, filters := b.category, b.filters
	b.mu.RUnlock()

	return filter.Apply(SelectCategory(snap.Results, category), filters)
}

// SearchStats reports the search results within the selected category and
// whether the query is still settling.
func (b *Browser) SearchStats() search.Stats {
	snap := b.session.Snapshot()
	st := search.StatsFor(snap.Query, len(SelectCategory(snap.Results, b.Category())))
	st.IsSearching = snap.Searching
	return st
}

// Wishlisted reports whether id is on the wishlist.
func (b *Browser) Wishlisted(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.wishlist.Contains(id)
}

// WishlistCount returns the number of wishlisted ids, stale ones included.
func (b *Browser) WishlistCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.wishlist.Len()
}

// WishlistProducts returns the wishlisted products in catalog order.
func (b *Browser) WishlistProducts() []domain.Product {
	b.mu.RLock()
	ids := b.wishlist.IDs()
	b.mu.RUnlock()
	return b.store.Select(ids)
}

// ToggleWishlist flips id through the toggler and adopts the resulting
// wishlist. On error the local copy is unchanged.
func (b *Browser) ToggleWishlist(ctx context.Context, id string) (domain.WishlistAction, error) {
	next, action, err := b.toggler.Toggle(ctx, id)
	if err != nil {
		return "", err
	}

	b.mu.Lock()
	b.wishlist = next
	b.mu.Unlock()
	return action, nil
}

// Reset returns to the home shelf: all categories and no query.
func (b *Browser) Reset() {
	b.SelectCategory(domain.CategoryAll)
	b.session.SetQuery("")
	b.session.Flush()
}

// Close stops any pending search settle.
func (b *Browser) Close() {
	b.session.Close()
}
