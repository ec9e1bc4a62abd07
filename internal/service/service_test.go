package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/siyara/storefront/internal/catalog"
	"github.com/siyara/storefront/internal/domain"
	"github.com/siyara/storefront/internal/event"
	"github.com/siyara/storefront/internal/order"
	"github.com/siyara/storefront/internal/repository/memory"
	apperrors "github.com/siyara/storefront/pkg/errors"
	"github.com/siyara/storefront/pkg/pagination"
)

// --- Mock Repository ---

type mockWishlistRepository struct {
	mock.Mock
}

func (m *mockWishlistRepository) Load(ctx context.Context) (domain.Wishlist, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Wishlist), args.Error(1)
}

func (m *mockWishlistRepository) Save(ctx context.Context, w domain.Wishlist) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

// --- Mock Notifier ---

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) WishlistChanged(ctx context.Context, change event.WishlistChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newCatalogService(t *testing.T, wishlist WishlistReader) *CatalogService {
	t.Helper()
	store, err := catalog.Load("")
	require.NoError(t, err)
	return NewCatalogService(store, order.NewLinkBuilder(store.Contact()), wishlist, newTestLogger())
}

func memoryWishlist(ids ...string) *WishlistService {
	return NewWishlistService(memory.NewWishlistRepository(domain.NewWishlist(ids)), nil, newTestLogger())
}

func ptr[T any](v T) *T { return &v }

func viewIDs(views []ProductView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.ID
	}
	return out
}

// ============================================================================
// WishlistService Tests
// ============================================================================

func TestWishlistService_LoadsOnce(t *testing.T) {
	repo := new(mockWishlistRepository)
	repo.On("Load", mock.Anything).Return(domain.NewWishlist([]string{"NK001"}), nil).Once()
	svc := NewWishlistService(repo, nil, newTestLogger())

	for range 3 {
		w, err := svc.Wishlist(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"NK001"}, w.IDs())
	}
	repo.AssertExpectations(t)
}

func TestWishlistService_ToggleSavesThenNotifies(t *testing.T) {
	repo := new(mockWishlistRepository)
	notifier := new(mockNotifier)
	repo.On("Load", mock.Anything).Return(domain.Wishlist{}, nil)
	repo.On("Save", mock.Anything, domain.NewWishlist([]string{"ER001"})).Return(nil).Once()
	notifier.On("WishlistChanged", mock.Anything, event.WishlistChange{
		ProductID: "ER001", Action: domain.WishlistAdded, Size: 1,
	}).Return(nil).Once()

	svc := NewWishlistService(repo, notifier, newTestLogger())
	before := testutil.ToFloat64(wishlistToggles.WithLabelValues("added"))

	w, action, err := svc.Toggle(context.Background(), "ER001")
	require.NoError(t, err)
	assert.Equal(t, domain.WishlistAdded, action)
	assert.Equal(t, []string{"ER001"}, w.IDs())
	assert.Equal(t, before+1, testutil.ToFloat64(wishlistToggles.WithLabelValues("added")))

	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestWishlistService_SaveFailureLeavesStateUnchanged(t *testing.T) {
	repo := new(mockWishlistRepository)
	notifier := new(mockNotifier)
	repo.On("Load", mock.Anything).Return(domain.NewWishlist([]string{"RG001"}), nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	svc := NewWishlistService(repo, notifier, newTestLogger())
	_, _, err := svc.Toggle(context.Background(), "RG001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save wishlist")

	w, err := svc.Wishlist(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"RG001"}, w.IDs())
	notifier.AssertNotCalled(t, "WishlistChanged", mock.Anything, mock.Anything)
}

func TestWishlistService_LoadFailure(t *testing.T) {
	repo := new(mockWishlistRepository)
	repo.On("Load", mock.Anything).Return(domain.Wishlist{}, errors.New("corrupt"))

	svc := NewWishlistService(repo, nil, newTestLogger())
	_, _, err := svc.Toggle(context.Background(), "A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load wishlist")
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestWishlistService_NotifyFailureIsNotAnError(t *testing.T) {
	notifier := new(mockNotifier)
	notifier.On("WishlistChanged", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	svc := NewWishlistService(memory.NewWishlistRepository(domain.Wishlist{}), notifier, newTestLogger())

	_, action, err := svc.Toggle(context.Background(), "ST001")
	require.NoError(t, err)
	assert.Equal(t, domain.WishlistAdded, action)
}

func TestWishlistService_EmptyID(t *testing.T) {
	svc := memoryWishlist()
	_, _, err := svc.Toggle(context.Background(), "  ")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestWishlistService_DoubleToggleRestores(t *testing.T) {
	svc := memoryWishlist("NK001", "BR002")
	ctx := context.Background()

	_, _, err := svc.Toggle(ctx, "BR002")
	require.NoError(t, err)
	w, action, err := svc.Toggle(ctx, "BR002")
	require.NoError(t, err)
	assert.Equal(t, domain.WishlistAdded, action)
	assert.ElementsMatch(t, []string{"NK001", "BR002"}, w.IDs())
}

func TestWishlistService_ConcurrentTogglesSerialize(t *testing.T) {
	svc := memoryWishlist()
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = svc.Toggle(ctx, "RG002")
		}()
	}
	wg.Wait()

	w, err := svc.Wishlist(ctx)
	require.NoError(t, err)
	assert.False(t, w.Contains("RG002"), "an even number of toggles leaves the id out")
}

// ============================================================================
// CatalogService Tests
// ============================================================================

func TestCatalogService_ListDefaults(t *testing.T) {
	svc := newCatalogService(t, memoryWishlist("ST001"))

	res, err := svc.List(context.Background(), ListInput{})
	require.NoError(t, err)
	assert.Equal(t, 12, res.TotalCount)
	assert.Equal(t, domain.CategoryAll, res.Category)
	assert.Equal(t, 0, res.ActiveFilterCount)
	assert.Equal(t, "ST001", res.Data[0].ID)
	assert.True(t, res.Data[0].Wishlisted)
	assert.False(t, res.Data[1].Wishlisted)
	assert.NotEmpty(t, res.Data[0].Thumbnail)
	assert.False(t, res.Search.HasQuery)
}

func TestCatalogService_ListPipeline(t *testing.T) {
	svc := newCatalogService(t, memoryWishlist())

	res, err := svc.List(context.Background(), ListInput{
		Category: domain.CategoryNecklaces,
		Query:    "gold",
		MinPrice: ptr(int64(700)),
		MaxPrice: ptr(int64(2000)),
		SortBy:   domain.SortByPriceHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"NK003", "NK002"}, viewIDs(res.Data))
	assert.Equal(t, 2, res.ActiveFilterCount)
	assert.Equal(t, 3, res.Search.TotalResults)
	assert.True(t, res.Search.HasQuery)
}

func TestCatalogService_ListPaginates(t *testing.T) {
	svc := newCatalogService(t, memoryWishlist())

	res, err := svc.List(context.Background(), ListInput{Pagination: pagination.New(3, 5)})
	require.NoError(t, err)
	assert.Len(t, res.Data, 2)
	assert.Equal(t, 3, res.TotalPages)
	assert.False(t, res.HasNext)
	assert.True(t, res.HasPrev)
}

func TestCatalogService_ListRejectsInvertedRange(t *testing.T) {
	svc := newCatalogService(t, memoryWishlist())

	_, err := svc.List(context.Background(), ListInput{MinPrice: ptr(int64(900)), MaxPrice: ptr(int64(100))})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_PARAMETER", appErr.Code)
}

func TestCatalogService_ListOpenEndedRange(t *testing.T) {
	svc := newCatalogService(t, memoryWishlist())

	res, err := svc.List(context.Background(), ListInput{MinPrice: ptr(int64(3000))})
	require.NoError(t, err)
	assert.Equal(t, domain.PriceRange{Min: 3000, Max: 4999}, res.Filters.PriceRange)
	assert.Equal(t, []string{"ST001", "ST002"}, viewIDs(res.Data))
	assert.Equal(t, 1, res.ActiveFilterCount)
}

func TestCatalogService_Get(t *testing.T) {
	svc := newCatalogService(t, memoryWishlist())

	p, err := svc.Get(context.Background(), "BR002")
	require.NoError(t, err)
	assert.Equal(t, "Crystal Bangle Set", p.Name)

	_, err = svc.Get(context.Background(), "XX000")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalogService_Facets(t *testing.T) {
	svc := newCatalogService(t, memoryWishlist())

	f := svc.Facets(context.Background())
	assert.Equal(t, domain.CategoryAll, f.Categories[0])
	assert.Equal(t, domain.PriceRange{Min: 599, Max: 4999}, f.PriceBounds)
	assert.Equal(t, f.PriceBounds, f.Defaults.PriceRange)
	assert.Equal(t, domain.SortByName, f.Defaults.SortBy)
	assert.Equal(t, 12, f.ProductCount)
	assert.NotEmpty(t, f.Materials)
}

func TestCatalogService_OrderLink(t *testing.T) {
	svc := newCatalogService(t, memoryWishlist())

	link, err := svc.OrderLink(context.Background(), "NK001")
	require.NoError(t, err)
	assert.Equal(t, "919876543210", link.Contact)
	assert.Contains(t, link.URL, "https://wa.me/919876543210?text=Hi!%20I'm%20interested")
	assert.Contains(t, link.Message, "Price: ₹2499")

	_, err = svc.OrderLink(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalogService_WishlistSkipsStaleIDs(t *testing.T) {
	svc := newCatalogService(t, memoryWishlist("ST002", "retired", "ER003"))

	view, err := svc.Wishlist(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, view.Count)
	require.Len(t, view.Products, 2)
	assert.Equal(t, "ER003", view.Products[0].ID)
	assert.Equal(t, "ST002", view.Products[1].ID)
}
