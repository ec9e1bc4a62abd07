package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/siyara/storefront/internal/service"
	"github.com/siyara/storefront/pkg/httputil"
)

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	catalog  *service.CatalogService
	wishlist *service.WishlistService
	logger   *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(catalog *service.CatalogService, wishlist *service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		catalog:  catalog,
		wishlist: wishlist,
		logger:   logger,
	}
}

// toggleResponse reports the outcome of a toggle.
type toggleResponse struct {
	ProductID  string                `json:"product_id"`
	Action     string                `json:"action"`
	Message    string                `json:"message"`
	Wishlisted bool                  `json:"wishlisted"`
	Wishlist   *service.WishlistView `json:"wishlist"`
}

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	view, err := h.catalog.Wishlist(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, view)
}

// ToggleWishlist handles POST /api/v1/wishlist/{productId}/toggle
func (h *WishlistHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	next, action, err := h.wishlist.Toggle(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, toggleResponse{
		ProductID:  productID,
		Action:     string(action),
		Message:    action.Message(),
		Wishlisted: next.Contains(productID),
		Wishlist:   h.catalog.ResolveWishlist(next),
	})
}
