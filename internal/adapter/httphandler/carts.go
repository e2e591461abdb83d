package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

type CartsHandler struct {
	cart port.CartKeeper
}

func RegisterCarts(mux *http.ServeMux, cart port.CartKeeper) {
	h := CartsHandler{cart}
	mux.HandleFunc("GET /v1/carts/{cartID}", h.GetCart)
	mux.HandleFunc("GET /v1/carts/{cartID}/summary", h.GetSummary)
	mux.HandleFunc("POST /v1/carts/{cartID}/items", h.PostItem)
	mux.HandleFunc("PUT /v1/carts/{cartID}/items/{productID}", h.PutItem)
	mux.HandleFunc("DELETE /v1/carts/{cartID}/items/{productID}", h.DeleteItem)
	mux.HandleFunc("DELETE /v1/carts/{cartID}", h.DeleteCart)
}

func (h CartsHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartsHandler.GetCart"

	snap, err := h.cart.Cart(r.Context(), r.PathValue("cartID"))
	h.writeSnapshot(w, op, snap, err)
}

func (h CartsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	const op = "CartsHandler.GetSummary"
	log := slog.With("op", op)

	sum, err := h.cart.CartSummary(r.Context(), r.PathValue("cartID"))
	if err != nil {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		log.Error("failed to read cart summary", "err", err)
		return
	}
	writeJSON(w, op, http.StatusOK, toCartSummary(sum))
}

// PostItem adds the product to the cart. An omitted quantity means 1.
func (h CartsHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartsHandler.PostItem"
	log := slog.With("op", op)

	var req AddCartItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if req.ProductID == "" {
		http.Error(w, "product_id: required", http.StatusBadRequest)
		return
	}

	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	snap, err := h.cart.AddToCart(
		r.Context(), r.PathValue("cartID"), req.ProductID, qty,
	)
	h.writeSnapshot(w, op, snap, err)
}

func (h CartsHandler) PutItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartsHandler.PutItem"
	log := slog.With("op", op)

	var req UpdateCartItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	snap, err := h.cart.UpdateCartItem(
		r.Context(), r.PathValue("cartID"), r.PathValue("productID"), req.Quantity,
	)
	h.writeSnapshot(w, op, snap, err)
}

func (h CartsHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartsHandler.DeleteItem"

	snap, err := h.cart.RemoveFromCart(
		r.Context(), r.PathValue("cartID"), r.PathValue("productID"),
	)
	h.writeSnapshot(w, op, snap, err)
}

func (h CartsHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartsHandler.DeleteCart"

	snap, err := h.cart.ClearCart(r.Context(), r.PathValue("cartID"))
	h.writeSnapshot(w, op, snap, err)
}

func (h CartsHandler) writeSnapshot(
	w http.ResponseWriter, op string, snap domain.CartSnapshot, err error,
) {
	if err != nil {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		slog.With("op", op).Error("cart operation failed", "err", err)
		return
	}
	writeJSON(w, op, http.StatusOK, toCartSnapshot(snap))
}
