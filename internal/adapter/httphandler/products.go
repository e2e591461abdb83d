package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// The header marking a fail-soft catalog response: the store was
// unreachable and the listing is served empty instead of failing.
const DegradedHeader = "X-Degraded"

type ProductsHandler struct {
	catalog port.CatalogProvider
}

func RegisterProducts(mux *http.ServeMux, catalog port.CatalogProvider) {
	h := ProductsHandler{catalog}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/recommended", h.GetRecommended)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
	mux.HandleFunc("POST /v1/products", h.PostProduct)
}

func (h ProductsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProducts"

	listing := h.catalog.Products(r.Context())
	h.writeListing(w, op, listing)
}

func (h ProductsHandler) GetRecommended(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetRecommended"

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	listing := h.catalog.RecommendedProducts(r.Context(), limit)
	h.writeListing(w, op, listing)
}

func (h ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProduct"
	log := slog.With("op", op)

	p, err := h.catalog.ProductByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		log.Error("failed to read product", "err", err)
		return
	}

	writeJSON(w, op, http.StatusOK, toProduct(p))
}

func (h ProductsHandler) PostProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PostProduct"
	log := slog.With("op", op)

	var req CreateProduct
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	p, err := validateCreateProduct(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Warn("invalid product data", "err", err)
		return
	}

	created, err := h.catalog.CreateProduct(r.Context(), p)
	if err != nil {
		http.Error(w, "failed to create product", http.StatusServiceUnavailable)
		log.Error("failed to create product", "err", err)
		return
	}

	writeJSON(w, op, http.StatusCreated, toProduct(created))
	log.Info("product created", "productID", created.ProductID)
}

func (h ProductsHandler) writeListing(
	w http.ResponseWriter, op string, listing domain.CatalogListing,
) {
	if listing.Degraded {
		w.Header().Set(DegradedHeader, "true")
	}
	writeJSON(w, op, http.StatusOK, toProducts(listing.Products))
}

// validateCreateProduct is the form boundary: invalid input is rejected
// here and never reaches the core.
func validateCreateProduct(req CreateProduct) (domain.Product, error) {
	var errs []error

	if req.Name == "" {
		errs = append(errs, errors.New("name: required"))
	}
	if req.Description == "" {
		errs = append(errs, errors.New("description: required"))
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || !price.IsPositive() {
		errs = append(errs, errors.New("price: must be a positive decimal"))
	}

	rating := decimal.Zero
	if req.Rating != "" {
		rating, err = decimal.NewFromString(req.Rating)
		if err != nil || rating.IsNegative() {
			errs = append(errs, errors.New("rating: must be a non-negative decimal"))
		}
	}

	if req.Reviews < 0 {
		errs = append(errs, errors.New("reviews: must be non-negative"))
	}

	if u, err := url.Parse(req.Image); err != nil || req.Image == "" ||
		(!u.IsAbs() && req.Image[0] != '/') {
		errs = append(errs, errors.New("image: must be an URL or absolute path"))
	}

	badge := domain.Badge(req.Badge)
	if req.Badge == "" {
		badge = domain.BadgeNone
	} else if !badge.Valid() {
		errs = append(errs, errors.New("badge: unknown value"))
	}

	inventory := domain.Inventory(req.Inventory)
	if req.Inventory == "" {
		inventory = domain.InventoryInStock
	} else if !inventory.Valid() {
		errs = append(errs, errors.New("inventory: unknown value"))
	}

	if len(errs) != 0 {
		return domain.Product{}, errors.Join(errs...)
	}

	return domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Badge:       badge,
		Rating:      rating,
		Reviews:     req.Reviews,
		Image:       req.Image,
		Inventory:   inventory,
	}, nil
}

func writeJSON(w http.ResponseWriter, op string, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.With("op", op).Error("failed to write response body", "err", err)
	}
}
