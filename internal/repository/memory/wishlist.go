package memory

import (
	"context"
	"sync"

	"github.com/siyara/storefront/internal/domain"
)

// WishlistRepository keeps the wishlist in process memory. Nothing survives
// a restart.
type WishlistRepository struct {
	mu       sync.RWMutex
	wishlist domain.Wishlist
}

// NewWishlistRepository creates a repository seeded with initial.
func NewWishlistRepository(initial domain.Wishlist) *WishlistRepository {
	return &WishlistRepository{wishlist: initial}
}

func (r *WishlistRepository) Load(_ context.Context) (domain.Wishlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.wishlist, nil
}

func (r *WishlistRepository) Save(_ context.Context, wishlist domain.Wishlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wishlist = wishlist
	return nil
}
