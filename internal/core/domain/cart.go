package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quantity bounds for a persisted cart line. A line with quantity 0
// must not exist: operations delete it instead.
const (
	MinQuantity = 1
	MaxQuantity = 99
)

// ClampAddQuantity clamps an add request to [MinQuantity, MaxQuantity].
func ClampAddQuantity(q int) int {
	return max(MinQuantity, min(q, MaxQuantity))
}

// ClampUpdateQuantity clamps an update request to [0, MaxQuantity].
// Zero means "delete the line".
func ClampUpdateQuantity(q int) int {
	return max(0, min(q, MaxQuantity))
}

type (
	CartLine struct {
		CartID    string
		ProductID string
		Quantity  int
		CreatedAt time.Time
	}

	CartItem struct {
		Product  Product
		Quantity int
	}

	CartSummary struct {
		Count    int
		Subtotal decimal.Decimal
		Shipping decimal.Decimal
		Total    decimal.Decimal
	}

	CartSnapshot struct {
		CartID  string
		Items   []CartItem
		Summary CartSummary
	}
)

// Summarize recomputes the derived cart totals from scratch, so the
// summary can never drift from the line set. shippingFee applies only
// to a non-empty cart.
func Summarize(items []CartItem, shippingFee decimal.Decimal) CartSummary {
	var s CartSummary
	s.Subtotal = decimal.Zero
	s.Shipping = decimal.Zero

	for _, it := range items {
		s.Count += it.Quantity
		lineTotal := it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		s.Subtotal = s.Subtotal.Add(lineTotal)
	}

	if s.Count > 0 {
		s.Shipping = shippingFee
	}
	s.Total = s.Subtotal.Add(s.Shipping)
	return s
}
