package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/siyara/storefront/internal/domain"
)

// WishlistRepository stores the wishlist in a JSON object file mapping slot
// names to values, so the file can hold other slots alongside the wishlist.
// Writes replace the file atomically.
type WishlistRepository struct {
	mu   sync.Mutex
	path string
	key  string
}

// NewWishlistRepository creates a repository backed by path. An empty key
// defaults to domain.WishlistKey.
func NewWishlistRepository(path, key string) *WishlistRepository {
	if key == "" {
		key = domain.WishlistKey
	}
	return &WishlistRepository{path: path, key: key}
}

// Path returns the backing file.
func (r *WishlistRepository) Path() string {
	return r.path
}

// Load reads the wishlist. A missing file or slot yields an empty wishlist.
func (r *WishlistRepository) Load(_ context.Context) (domain.Wishlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slots, err := r.readSlots()
	if err != nil {
		return domain.Wishlist{}, err
	}

	raw, ok := slots[r.key]
	if !ok {
		return domain.Wishlist{}, nil
	}

	var w domain.Wishlist
	if err := json.Unmarshal(raw, &w); err != nil {
		return domain.Wishlist{}, fmt.Errorf("unmarshal wishlist: %w", err)
	}
	return w, nil
}

// Save writes the wishlist slot, keeping any other slots in the file.
func (r *WishlistRepository) Save(ctx context.Context, wishlist domain.Wishlist) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	slots, err := r.readSlots()
	if err != nil {
		return err
	}

	value, err := json.Marshal(wishlist)
	if err != nil {
		return fmt.Errorf("marshal wishlist: %w", err)
	}
	slots[r.key] = value

	data, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	return r.writeAtomic(data)
}

func (r *WishlistRepository) readSlots() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read store %s: %w", r.path, err)
	}

	slots := map[string]json.RawMessage{}
	if len(data) == 0 {
		return slots, nil
	}
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("parse store %s: %w", r.path, err)
	}
	return slots, nil
}

func (r *WishlistRepository) writeAtomic(data []byte) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace store %s: %w", r.path, err)
	}
	return nil
}
