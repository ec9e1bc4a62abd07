package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siyara/storefront/internal/domain"
)

func newRepo(t *testing.T) *WishlistRepository {
	t.Helper()
	return NewWishlistRepository(filepath.Join(t.TempDir(), "state", "storefront.json"), "")
}

func TestWishlistRepository_MissingFileIsEmpty(t *testing.T) {
	repo := newRepo(t)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestWishlistRepository_RoundTrip(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.NewWishlist([]string{"NK001", "BR002"})))

	reopened := NewWishlistRepository(repo.Path(), "")
	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"NK001", "BR002"}, got.IDs())
}

func TestWishlistRepository_KeepsOtherSlots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"dark","wishlist":["ER001"]}`), 0o600))
	repo := NewWishlistRepository(path, "")
	ctx := context.Background()

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ER001"}, got.IDs())

	require.NoError(t, repo.Save(ctx, domain.Wishlist{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark","wishlist":[]}`, string(data))
}

func TestWishlistRepository_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	require.NoError(t, os.WriteFile(path, []byte(`[1,2`), 0o600))
	repo := NewWishlistRepository(path, "")

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse store")

	err = repo.Save(context.Background(), domain.NewWishlist([]string{"A"}))
	require.Error(t, err)
}

func TestWishlistRepository_SaveHonoursCancelledContext(t *testing.T) {
	repo := newRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, repo.Save(ctx, domain.Wishlist{}), context.Canceled)
	_, err := os.Stat(repo.Path())
	assert.True(t, os.IsNotExist(err))
}
