package config

import (
	"fmt"
	"slices"
	"time"

	pkgconfig "github.com/siyara/storefront/pkg/config"
)

// Wishlist storage backends.
const (
	WishlistStoreMemory = "memory"
	WishlistStoreFile   = "file"
	WishlistStoreRedis  = "redis"
)

// Config holds all configuration for the storefront.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort       int           `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`
	RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"30s"`
	CacheMaxAge    int           `env:"HTTP_CACHE_MAX_AGE" envDefault:"300"`
	CORSOrigins    []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Catalog; empty uses the embedded catalog
	CatalogPath string `env:"CATALOG_PATH"`

	// Order hand-off
	OrderBaseURL  string `env:"ORDER_BASE_URL" envDefault:"https://wa.me"`
	OrderCurrency string `env:"ORDER_CURRENCY" envDefault:"₹"`

	// Search
	SearchDebounce time.Duration `env:"SEARCH_DEBOUNCE" envDefault:"300ms"`

	// Wishlist persistence
	WishlistStore string `env:"WISHLIST_STORE" envDefault:"file"`
	WishlistFile  string `env:"WISHLIST_FILE" envDefault:"data/storefront.json"`
	WishlistKey   string `env:"WISHLIST_KEY" envDefault:"wishlist"`

	// Redis
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Kafka; empty disables wishlist events
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`

	// Tracing
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from .env files and environment variables.
// Environment variables win.
func Load(envFiles ...string) (*Config, error) {
	if err := pkgconfig.LoadDotEnv(envFiles...); err != nil {
		return nil, fmt.Errorf("load storefront env files: %w", err)
	}

	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if !slices.Contains([]string{WishlistStoreMemory, WishlistStoreFile, WishlistStoreRedis}, c.WishlistStore) {
		return fmt.Errorf("invalid WISHLIST_STORE %q: must be memory, file or redis", c.WishlistStore)
	}
	if c.WishlistStore == WishlistStoreFile && c.WishlistFile == "" {
		return fmt.Errorf("WISHLIST_FILE is required when WISHLIST_STORE is file")
	}
	if c.WishlistStore == WishlistStoreRedis && (c.RedisPort < 1 || c.RedisPort > 65535) {
		return fmt.Errorf("invalid redis port: %d", c.RedisPort)
	}
	if c.SearchDebounce < 0 {
		return fmt.Errorf("invalid SEARCH_DEBOUNCE: %s", c.SearchDebounce)
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("invalid OTEL_SAMPLE_RATE: %v", c.OTELSampleRate)
	}
	return nil
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
