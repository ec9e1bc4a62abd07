package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/siyara/storefront/internal/domain"
	"github.com/siyara/storefront/internal/service"
	apperrors "github.com/siyara/storefront/pkg/errors"
	"github.com/siyara/storefront/pkg/httputil"
	"github.com/siyara/storefront/pkg/pagination"
	"github.com/siyara/storefront/pkg/validator"
)

// ProductHandler handles HTTP requests for catalog endpoints.
type ProductHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// listQuery is the raw query string of a product listing.
type listQuery struct {
	Query     string   `json:"q" validate:"max=200"`
	Category  string   `json:"category" validate:"max=50"`
	MinPrice  string   `json:"min_price" validate:"omitempty,numeric"`
	MaxPrice  string   `json:"max_price" validate:"omitempty,numeric"`
	Materials []string `json:"material" validate:"max=20,dive,required,max=200"`
	NewOnly   string   `json:"new_only" validate:"omitempty,boolean"`
	Sort      string   `json:"sort" validate:"omitempty,oneof=name price-low price-high newest"`
}

func parseListQuery(r *http.Request) listQuery {
	q := r.URL.Query()
	return listQuery{
		Query:     q.Get("q"),
		Category:  q.Get("category"),
		MinPrice:  strings.TrimSpace(q.Get("min_price")),
		MaxPrice:  strings.TrimSpace(q.Get("max_price")),
		Materials: q["material"],
		NewOnly:   strings.TrimSpace(q.Get("new_only")),
		Sort:      strings.ToLower(strings.TrimSpace(q.Get("sort"))),
	}
}

func (lq listQuery) toInput(r *http.Request) (service.ListInput, error) {
	input := service.ListInput{
		Query:      lq.Query,
		Materials:  lq.Materials,
		Pagination: pagination.FromRequest(r),
	}

	category, ok := domain.ParseCategory(lq.Category)
	if !ok {
		return input, apperrors.InvalidParameter(fmt.Sprintf("unknown category %q", lq.Category))
	}
	input.Category = category

	sortBy, ok := domain.ParseSortOrder(lq.Sort)
	if !ok {
		return input, apperrors.InvalidParameter(fmt.Sprintf("unknown sort %q", lq.Sort))
	}
	input.SortBy = sortBy

	var err error
	if input.MinPrice, err = parsePrice("min_price", lq.MinPrice); err != nil {
		return input, err
	}
	if input.MaxPrice, err = parsePrice("max_price", lq.MaxPrice); err != nil {
		return input, err
	}

	if lq.NewOnly != "" {
		input.NewOnly, _ = strconv.ParseBool(lq.NewOnly)
	}
	return input, nil
}

func parsePrice(name, raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return nil, apperrors.InvalidParameter(name + " must be a non-negative integer")
	}
	return &v, nil
}

// --- Handlers ---

// ListProducts handles GET /api/v1/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	lq := parseListQuery(r)
	if err := validator.Validate(lq); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input, err := lq.toInput(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	result, err := h.service.List(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, result)
}

// GetProduct handles GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, product)
}

// GetFacets handles GET /api/v1/catalog/facets
func (h *ProductHandler) GetFacets(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, h.service.Facets(r.Context()))
}

// GetOrderLink handles GET /api/v1/products/{id}/order-link
func (h *ProductHandler) GetOrderLink(w http.ResponseWriter, r *http.Request) {
	link, err := h.service.OrderLink(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, link)
}

// RedirectToOrder handles GET /api/v1/products/{id}/order
func (h *ProductHandler) RedirectToOrder(w http.ResponseWriter, r *http.Request) {
	link, err := h.service.OrderLink(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	http.Redirect(w, r, link.URL, http.StatusFound)
}
