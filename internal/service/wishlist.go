package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/siyara/storefront/internal/domain"
	"github.com/siyara/storefront/internal/event"
	"github.com/siyara/storefront/internal/repository"
	apperrors "github.com/siyara/storefront/pkg/errors"
	"github.com/siyara/storefront/pkg/logger"
	"github.com/siyara/storefront/pkg/tracing"
)

var wishlistToggles = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "wishlist_toggles_total",
		Help: "Wishlist toggles by outcome.",
	},
	[]string{"outcome"},
)

const outcomeFailed = "failed"

// WishlistService owns the wishlist. It loads the stored wishlist on first
// use and persists every toggle before making it visible.
type WishlistService struct {
	repo     repository.WishlistRepository
	notifier event.Notifier
	logger   *slog.Logger

	mu      sync.Mutex
	current domain.Wishlist
	loaded  bool
}

// NewWishlistService creates a new wishlist service. notifier may be nil.
func NewWishlistService(repo repository.WishlistRepository, notifier event.Notifier, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// Wishlist returns the current wishlist.
func (s *WishlistService) Wishlist(ctx context.Context) (domain.Wishlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return domain.Wishlist{}, err
	}
	return s.current, nil
}

// Toggle adds productID if absent and removes it if present. The id is not
// checked against the catalog. If saving fails the wishlist is unchanged.
func (s *WishlistService) Toggle(ctx context.Context, productID string) (domain.Wishlist, domain.WishlistAction, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return domain.Wishlist{}, "", apperrors.InvalidInput("product id is required")
	}

	ctx, span := tracing.Tracer("storefront/wishlist").Start(ctx, "WishlistService.Toggle")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", productID))

	s.mu.Lock()
	if err := s.loadLocked(ctx); err != nil {
		s.mu.Unlock()
		s.fail(span, err)
		return domain.Wishlist{}, "", err
	}

	next, action := s.current.Toggle(productID)
	if err := s.repo.Save(ctx, next); err != nil {
		s.mu.Unlock()
		err = fmt.Errorf("save wishlist: %w", err)
		s.fail(span, err)
		return domain.Wishlist{}, "", err
	}
	s.current = next
	s.mu.Unlock()

	wishlistToggles.WithLabelValues(string(action)).Inc()
	span.SetAttributes(attribute.String("wishlist.action", string(action)))

	if s.notifier != nil {
		change := event.WishlistChange{ProductID: productID, Action: action, Size: next.Len()}
		if err := s.notifier.WishlistChanged(ctx, change); err != nil {
			logger.WithContext(ctx, s.logger).WarnContext(ctx, "wishlist notification failed",
				slog.String("product_id", productID),
				slog.String("error", err.Error()),
			)
		}
	}

	return next, action, nil
}

func (s *WishlistService) loadLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	w, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load wishlist: %w", err)
	}
	s.current = w
	s.loaded = true
	return nil
}

func (s *WishlistService) fail(span trace.Span, err error) {
	wishlistToggles.WithLabelValues(outcomeFailed).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
