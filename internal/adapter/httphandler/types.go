package httphandler

import (
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
)

type (
	Product struct {
		ID          string    `json:"id"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		Price       string    `json:"price"`
		Badge       string    `json:"badge"`
		Rating      string    `json:"rating"`
		Reviews     int       `json:"reviews"`
		Image       string    `json:"image"`
		Inventory   string    `json:"inventory"`
		CreatedAt   time.Time `json:"created_at"`
	}

	CreateProduct struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Price       string `json:"price"`
		Badge       string `json:"badge"`
		Rating      string `json:"rating"`
		Reviews     int    `json:"reviews"`
		Image       string `json:"image"`
		Inventory   string `json:"inventory"`
	}

	CartItem struct {
		Product
		Quantity int `json:"quantity"`
	}

	CartSummary struct {
		Count    int    `json:"count"`
		Subtotal string `json:"subtotal"`
		Shipping string `json:"shipping"`
		Total    string `json:"total"`
	}

	CartSnapshot struct {
		CartID  string      `json:"cart_id"`
		Items   []CartItem  `json:"items"`
		Summary CartSummary `json:"summary"`
	}

	AddCartItem struct {
		ProductID string `json:"product_id"`
		Quantity  *int   `json:"quantity"`
	}

	UpdateCartItem struct {
		Quantity int `json:"quantity"`
	}
)

func toProduct(v domain.Product) Product {
	return Product{
		ID:          v.ProductID,
		Name:        v.Name,
		Description: v.Description,
		Price:       v.Price.String(),
		Badge:       string(v.Badge),
		Rating:      v.Rating.String(),
		Reviews:     v.Reviews,
		Image:       v.Image,
		Inventory:   string(v.Inventory),
		CreatedAt:   v.CreatedAt,
	}
}

func toProducts(vs []domain.Product) []Product {
	ps := make([]Product, 0, len(vs))
	for _, v := range vs {
		ps = append(ps, toProduct(v))
	}
	return ps
}

func toCartSummary(v domain.CartSummary) CartSummary {
	return CartSummary{
		Count:    v.Count,
		Subtotal: v.Subtotal.StringFixed(2),
		Shipping: v.Shipping.StringFixed(2),
		Total:    v.Total.StringFixed(2),
	}
}

func toCartSnapshot(v domain.CartSnapshot) CartSnapshot {
	items := make([]CartItem, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, CartItem{
			Product:  toProduct(it.Product),
			Quantity: it.Quantity,
		})
	}
	return CartSnapshot{
		CartID:  v.CartID,
		Items:   items,
		Summary: toCartSummary(v.Summary),
	}
}
