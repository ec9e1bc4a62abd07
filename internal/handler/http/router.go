package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/siyara/storefront/internal/service"
	"github.com/siyara/storefront/pkg/health"
	"github.com/siyara/storefront/pkg/middleware"
)

// RouterConfig holds the HTTP surface settings.
type RouterConfig struct {
	ServiceName string
	CORS        middleware.CORSConfig
	// CacheMaxAge is the max-age in seconds for static catalog responses.
	CacheMaxAge    int
	RequestTimeout time.Duration
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	catalogService *service.CatalogService,
	wishlistService *service.WishlistService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "storefront"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	productHandler := NewProductHandler(catalogService, logger)
	wishlistHandler := NewWishlistHandler(catalogService, wishlistService, logger)

	r.Route("/api/v1", func(r chi.Router) {
		// Lists and details carry the wishlisted flag, so they are not cached.
		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Get("/products", productHandler.ListProducts)
			r.Get("/products/{id}", productHandler.GetProduct)
			r.Get("/wishlist", wishlistHandler.GetWishlist)
			r.Post("/wishlist/{productId}/toggle", wishlistHandler.ToggleWishlist)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(cfg.CacheMaxAge))
			r.Get("/catalog/facets", productHandler.GetFacets)
			r.Get("/products/{id}/order-link", productHandler.GetOrderLink)
			r.Get("/products/{id}/order", productHandler.RedirectToOrder)
		})
	})

	return r
}
