package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/siyara/storefront/internal/domain"
)

// WishlistRepository implements repository.WishlistRepository using a
// single Redis string key holding a JSON array of ids.
type WishlistRepository struct {
	client *redis.Client
	key    string
}

// NewWishlistRepository creates a Redis-backed wishlist repository. An
// empty key defaults to domain.WishlistKey.
func NewWishlistRepository(client *redis.Client, key string) *WishlistRepository {
	if key == "" {
		key = domain.WishlistKey
	}
	return &WishlistRepository{
		client: client,
		key:    key,
	}
}

// Load reads the wishlist. A missing key yields an empty wishlist.
func (r *WishlistRepository) Load(ctx context.Context) (domain.Wishlist, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Wishlist{}, nil
		}
		return domain.Wishlist{}, fmt.Errorf("redis get wishlist: %w", err)
	}

	var w domain.Wishlist
	if err := json.Unmarshal(data, &w); err != nil {
		return domain.Wishlist{}, fmt.Errorf("unmarshal wishlist: %w", err)
	}
	return w, nil
}

// Save writes the wishlist with no expiry.
func (r *WishlistRepository) Save(ctx context.Context, wishlist domain.Wishlist) error {
	data, err := json.Marshal(wishlist)
	if err != nil {
		return fmt.Errorf("marshal wishlist: %w", err)
	}

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set wishlist: %w", err)
	}
	return nil
}
