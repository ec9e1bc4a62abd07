package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/siyara/storefront/internal/config"
	handler "github.com/siyara/storefront/internal/handler/http"
	"github.com/siyara/storefront/pkg/database"
	"github.com/siyara/storefront/pkg/health"
	"github.com/siyara/storefront/pkg/middleware"
	"github.com/siyara/storefront/pkg/tracing"
)

// ServiceName identifies the storefront in logs, metrics and traces.
const ServiceName = "storefront"

// App wires together all dependencies and runs the storefront HTTP service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	components     *Components
	shutdownTracer tracing.ShutdownFunc
	httpServer     *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdownTracer, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:  ServiceName,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTELEndpoint,
		SampleRate:   cfg.OTELSampleRate,
		Enabled:      cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	components, err := Build(ctx, cfg, logger)
	if err != nil {
		_ = shutdownTracer(context.Background())
		return nil, err
	}

	healthHandler := NewHealthHandler(components)

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSOrigins
	router := handler.NewRouter(components.CatalogService, components.WishlistService, healthHandler, logger, handler.RouterConfig{
		ServiceName:    ServiceName,
		CORS:           cors,
		CacheMaxAge:    cfg.CacheMaxAge,
		RequestTimeout: cfg.RequestTimeout,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		components:     components,
		shutdownTracer: shutdownTracer,
		httpServer:     httpServer,
	}, nil
}

// NewHealthHandler registers readiness checks for the catalog and whichever
// backends are configured.
func NewHealthHandler(c *Components) *health.Handler {
	h := health.NewHandler()
	h.Register("catalog", func(context.Context) error {
		if c.Store == nil {
			return errors.New("catalog not loaded")
		}
		return nil
	})
	if rdb := c.Redis(); rdb != nil {
		h.Register("redis", database.RedisChecker(rdb))
	}
	if p := c.Producer(); p != nil {
		h.Register("kafka", p.Ping)
	}
	return h
}

// Handler returns the HTTP handler, for tests.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.components.Close(); err != nil {
		a.logger.Error("component close error", slog.String("error", err.Error()))
	}

	if err := a.shutdownTracer(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
