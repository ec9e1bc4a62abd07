package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/siyara/storefront/internal/catalog"
	"github.com/siyara/storefront/internal/config"
	"github.com/siyara/storefront/internal/domain"
	"github.com/siyara/storefront/internal/event"
	"github.com/siyara/storefront/internal/order"
	"github.com/siyara/storefront/internal/repository"
	filerepo "github.com/siyara/storefront/internal/repository/file"
	memoryrepo "github.com/siyara/storefront/internal/repository/memory"
	redisrepo "github.com/siyara/storefront/internal/repository/redis"
	"github.com/siyara/storefront/internal/service"
	"github.com/siyara/storefront/pkg/database"
	pkgkafka "github.com/siyara/storefront/pkg/kafka"
)

// Components is the dependency graph shared by the HTTP server and the CLI.
type Components struct {
	Store           *catalog.Store
	Links           *order.LinkBuilder
	WishlistService *service.WishlistService
	CatalogService  *service.CatalogService

	rdb      *redis.Client
	producer *pkgkafka.Producer
}

// Build loads the catalog and connects the wishlist backend and notifiers.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	store, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	source := cfg.CatalogPath
	if source == "" {
		source = catalog.DefaultSource
	}
	logger.Info("catalog loaded",
		slog.String("source", source),
		slog.Int("products", store.Len()),
	)

	c := &Components{Store: store}

	repo, err := c.wishlistRepository(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	notifiers := event.Notifiers{event.NewLogNotifier(logger)}
	if len(cfg.KafkaBrokers) > 0 {
		c.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		notifiers = append(notifiers, event.NewProducer(c.producer, logger))
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	c.Links = order.NewLinkBuilder(store.Contact(),
		order.WithBaseURL(cfg.OrderBaseURL),
		order.WithCurrency(cfg.OrderCurrency),
	)
	c.WishlistService = service.NewWishlistService(repo, notifiers, logger)
	c.CatalogService = service.NewCatalogService(store, c.Links, c.WishlistService, logger)

	return c, nil
}

func (c *Components) wishlistRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.WishlistRepository, error) {
	switch cfg.WishlistStore {
	case config.WishlistStoreRedis:
		rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		c.rdb = rdb
		logger.Info("connected to Redis",
			slog.String("addr", fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort)),
			slog.Int("db", cfg.RedisDB),
		)
		return redisrepo.NewWishlistRepository(rdb, cfg.WishlistKey), nil
	case config.WishlistStoreFile:
		logger.Info("wishlist stored in file", slog.String("path", cfg.WishlistFile))
		return filerepo.NewWishlistRepository(cfg.WishlistFile, cfg.WishlistKey), nil
	default:
		logger.Warn("wishlist kept in memory; it will not survive a restart")
		return memoryrepo.NewWishlistRepository(domain.Wishlist{}), nil
	}
}

// Redis returns the Redis client, or nil when Redis is not the backend.
func (c *Components) Redis() *redis.Client {
	return c.rdb
}

// Producer returns the Kafka producer, or nil when events are disabled.
func (c *Components) Producer() *pkgkafka.Producer {
	return c.producer
}

// Close releases the Kafka producer and Redis client.
func (c *Components) Close() error {
	var errs []error
	if c.producer != nil {
		if err := c.producer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close kafka producer: %w", err))
		}
	}
	if c.rdb != nil {
		if err := c.rdb.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
