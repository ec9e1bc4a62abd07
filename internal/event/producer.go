package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/siyara/storefront/internal/domain"
	pkgkafka "github.com/siyara/storefront/pkg/kafka"
	"github.com/siyara/storefront/pkg/logger"
)

// Kafka topic for wishlist domain events.
const TopicWishlistChanged = "storefront.wishlist.changed"

// Event type constants.
const (
	EventWishlistItemAdded   = "wishlist.item_added"
	EventWishlistItemRemoved = "wishlist.item_removed"
)

// Aggregate type constant.
const AggregateTypeWishlist = "wishlist"

// WishlistAggregate is the single wishlist slot every change belongs to.
func WishlistAggregate() pkgkafka.Aggregate {
	return pkgkafka.Aggregate{Type: AggregateTypeWishlist, ID: domain.WishlistKey}
}

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront"

// WishlistChangedData is the payload for wishlist events.
type WishlistChangedData struct {
	ProductID    string `json:"product_id"`
	Action       string `json:"action"`
	Message      string `json:"message"`
	WishlistSize int    `json:"wishlist_size"`
}

// Publisher sends an event to a topic. *pkgkafka.Producer satisfies it.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes wishlist events to Kafka.
type Producer struct {
	publisher Publisher
	logger    *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(publisher Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		publisher: publisher,
		logger:    logger,
	}
}

// EventType maps a toggle action to its event type.
func EventType(action domain.WishlistAction) string {
	if action == domain.WishlistAdded {
		return EventWishlistItemAdded
	}
	return EventWishlistItemRemoved
}

// WishlistChanged publishes the change keyed by the wishlist slot, so all
// changes land on one partition in order.
func (p *Producer) WishlistChanged(ctx context.Context, change WishlistChange) error {
	eventType := EventType(change.Action)
	data := WishlistChangedData{
		ProductID:    change.ProductID,
		Action:       string(change.Action),
		Message:      change.Message(),
		WishlistSize: change.Size,
	}

	evt, err := pkgkafka.NewEvent(eventType, WishlistAggregate(), SourceStorefront, data,
		pkgkafka.WithCorrelationID(logger.CorrelationIDFromContext(ctx)),
		pkgkafka.WithMetadata("session_id", logger.SessionIDFromContext(ctx)),
	)
	if err != nil {
		return fmt.Errorf("create %s event: %w", eventType, err)
	}

	if err := p.publisher.Publish(ctx, TopicWishlistChanged, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}

	p.logger.DebugContext(ctx, "published wishlist event",
		slog.String("event_type", eventType),
		slog.String("product_id", change.ProductID),
	)
	return nil
}
