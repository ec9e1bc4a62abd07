package event

import (
	"context"
	"errors"
	"log/slog"

	"github.com/siyara/storefront/internal/domain"
	"github.com/siyara/storefront/pkg/logger"
)

// WishlistChange describes one applied toggle.
type WishlistChange struct {
	ProductID string
	Action    domain.WishlistAction
	Size      int
}

// Message is the user-facing confirmation for the change.
func (c WishlistChange) Message() string {
	return c.Action.Message()
}

// Notifier is told about every wishlist change after it is persisted.
type Notifier interface {
	WishlistChanged(ctx context.Context, change WishlistChange) error
}

// LogNotifier writes each change as a structured log line.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier that logs to l.
func NewLogNotifier(l *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: l}
}

func (n *LogNotifier) WishlistChanged(ctx context.Context, change WishlistChange) error {
	logger.WithContext(ctx, n.logger).InfoContext(ctx, change.Message(),
		slog.String("product_id", change.ProductID),
		slog.String("action", string(change.Action)),
		slog.Int("wishlist_size", change.Size),
	)
	return nil
}

// Notifiers fans a change out to every notifier, in order. Every notifier
// is called even if an earlier one fails.
type Notifiers []Notifier

func (ns Notifiers) WishlistChanged(ctx context.Context, change WishlistChange) error {
	var errs []error
	for _, n := range ns {
		if err := n.WishlistChanged(ctx, change); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
