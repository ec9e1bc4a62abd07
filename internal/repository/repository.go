package repository

import (
	"context"

	"github.com/siyara/storefront/internal/domain"
)

// WishlistRepository persists the single wishlist slot.
type WishlistRepository interface {
	// Load returns the stored wishlist, or an empty one if nothing has been
	// saved yet.
	Load(ctx context.Context) (domain.Wishlist, error)

	// Save overwrites the stored wishlist.
	Save(ctx context.Context, wishlist domain.Wishlist) error
}
