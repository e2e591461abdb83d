package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/internal/core/domain"
)

func TestClampQuantity(t *testing.T) {
	t.Run("Add", func(t *testing.T) {
		assert.Equal(t, 1, domain.ClampAddQuantity(0))
		assert.Equal(t, 1, domain.ClampAddQuantity(-5))
		assert.Equal(t, 1, domain.ClampAddQuantity(1))
		assert.Equal(t, 42, domain.ClampAddQuantity(42))
		assert.Equal(t, 99, domain.ClampAddQuantity(99))
		assert.Equal(t, 99, domain.ClampAddQuantity(200))
	})

	t.Run("Update", func(t *testing.T) {
		assert.Equal(t, 0, domain.ClampUpdateQuantity(0))
		assert.Equal(t, 0, domain.ClampUpdateQuantity(-1))
		assert.Equal(t, 5, domain.ClampUpdateQuantity(5))
		assert.Equal(t, 99, domain.ClampUpdateQuantity(99))
		assert.Equal(t, 99, domain.ClampUpdateQuantity(100))
	})
}

func TestSummarize(t *testing.T) {
	shippingFee := decimal.RequireFromString("8.00")

	item := func(price string, qty int) domain.CartItem {
		return domain.CartItem{
			Product:  domain.Product{Price: decimal.RequireFromString(price)},
			Quantity: qty,
		}
	}

	t.Run("EmptyCart", func(t *testing.T) {
		s := domain.Summarize(nil, shippingFee)

		assert.Zero(t, s.Count)
		assert.True(t, s.Subtotal.IsZero())
		assert.True(t, s.Shipping.IsZero())
		assert.True(t, s.Total.IsZero())
	})

	t.Run("SingleItem", func(t *testing.T) {
		s := domain.Summarize(
			[]domain.CartItem{item("19.99", 1)}, shippingFee,
		)

		assert.Equal(t, 1, s.Count)
		assert.Equal(t, "19.99", s.Subtotal.String())
		assert.Equal(t, "8.00", s.Shipping.StringFixed(2))
		assert.Equal(t, "27.99", s.Total.String())
	})

	t.Run("TotalIsSubtotalPlusShipping", func(t *testing.T) {
		items := []domain.CartItem{
			item("19.99", 3),
			item("129.99", 2),
			item("0.01", 99),
		}

		s := domain.Summarize(items, shippingFee)

		require.Equal(t, 3+2+99, s.Count)
		assert.True(t, s.Total.Equal(s.Subtotal.Add(s.Shipping)))
		assert.Equal(t, "320.94", s.Subtotal.String())
	})

	t.Run("NoDriftOnRepeatedAdditions", func(t *testing.T) {
		// 0.10 a hundred times must be exactly 10, not 9.99999...
		items := make([]domain.CartItem, 0, 100)
		for range 100 {
			items = append(items, item("0.10", 1))
		}

		s := domain.Summarize(items, shippingFee)

		assert.True(t, s.Subtotal.Equal(decimal.RequireFromString("10")))
		assert.True(t, s.Total.Equal(decimal.RequireFromString("18")))
	})

	t.Run("ShippingOnlyWhenNonEmpty", func(t *testing.T) {
		s := domain.Summarize([]domain.CartItem{item("1.00", 1)}, shippingFee)
		assert.True(t, s.Shipping.Equal(shippingFee))

		s = domain.Summarize(nil, shippingFee)
		assert.True(t, s.Shipping.IsZero())
	})
}
