package storage_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/domain"
)

func TestMemoryCartRepository(t *testing.T) {
	t.Run("OrphanLineExcludedFromSnapshot", func(t *testing.T) {
		products := storage.NewMemoryProductsRepository()
		cart := storage.NewMemoryCartRepository(products)

		p, err := products.StoreProduct(t.Context(), domain.Product{
			Name:  "Sample Product 1",
			Price: decimal.RequireFromString("19.99"),
		})
		require.NoError(t, err)

		require.NoError(t, cart.UpsertAdd(t.Context(), "c1", p.ProductID, 1))
		require.NoError(t, cart.UpsertAdd(t.Context(), "c1", "vanished", 1))

		items, err := cart.ReadItems(t.Context(), "c1")
		require.NoError(t, err)

		require.Len(t, items, 1)
		assert.Equal(t, p.ProductID, items[0].Product.ProductID)
	})

	t.Run("UpsertAddClampsIncrement", func(t *testing.T) {
		products := storage.NewMemoryProductsRepository()
		cart := storage.NewMemoryCartRepository(products)

		p, err := products.StoreProduct(t.Context(), domain.Product{
			Name:  "Sample Product 1",
			Price: decimal.RequireFromString("19.99"),
		})
		require.NoError(t, err)

		require.NoError(t, cart.UpsertAdd(t.Context(), "c1", p.ProductID, 98))
		require.NoError(t, cart.UpsertAdd(t.Context(), "c1", p.ProductID, 98))

		items, err := cart.ReadItems(t.Context(), "c1")
		require.NoError(t, err)

		require.Len(t, items, 1)
		assert.Equal(t, domain.MaxQuantity, items[0].Quantity)
	})
}
