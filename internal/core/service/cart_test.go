package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
)

const testCartID = "test-cart"

type MockMutationProducer struct {
	mock.Mock
}

func (m *MockMutationProducer) ProduceMutation(
	ctx context.Context, mu domain.CartMutation,
) error {
	args := m.Called(ctx, mu)
	return args.Error(0)
}

type MockSummaryViewer struct {
	mock.Mock
}

func (m *MockSummaryViewer) Summary(
	cartID string,
) (domain.CartSummary, bool, error) {
	args := m.Called(cartID)
	return args.Get(0).(domain.CartSummary), args.Bool(1), args.Error(2)
}

type fixture struct {
	service  service.Service
	producer *MockMutationProducer
	p1, p2   domain.Product
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	products := storage.NewMemoryProductsRepository()
	cart := storage.NewMemoryCartRepository(products)

	p1, err := products.StoreProduct(t.Context(), domain.Product{
		Name:  "Sample Product 1",
		Price: decimal.RequireFromString("19.99"),
	})
	require.NoError(t, err)

	p2, err := products.StoreProduct(t.Context(), domain.Product{
		Name:  "Sample Product 2",
		Price: decimal.RequireFromString("129.99"),
	})
	require.NoError(t, err)

	producer := new(MockMutationProducer)
	producer.On("ProduceMutation", mock.Anything, mock.Anything).
		Return(nil).Maybe()

	s := service.New(
		products, cart, producer, nil,
		decimal.RequireFromString("8.00"),
	)
	return fixture{service: s, producer: producer, p1: p1, p2: p2}
}

func lineQuantity(snap domain.CartSnapshot, productID string) (int, bool) {
	for _, it := range snap.Items {
		if it.Product.ProductID == productID {
			return it.Quantity, true
		}
	}
	return 0, false
}

func TestAddToCart(t *testing.T) {
	t.Run("FirstAdd", func(t *testing.T) {
		f := newFixture(t)

		snap, err := f.service.AddToCart(
			t.Context(), testCartID, f.p1.ProductID, 1,
		)
		require.NoError(t, err)

		require.Len(t, snap.Items, 1)
		assert.Equal(t, 1, snap.Summary.Count)
		assert.Equal(t, "19.99", snap.Summary.Subtotal.String())
		assert.Equal(t, "8.00", snap.Summary.Shipping.StringFixed(2))
		assert.Equal(t, "27.99", snap.Summary.Total.String())
	})

	t.Run("IncrementClampsToMax", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.AddToCart(t.Context(), testCartID, f.p1.ProductID, 1)
		require.NoError(t, err)

		snap, err := f.service.AddToCart(
			t.Context(), testCartID, f.p1.ProductID, 200,
		)
		require.NoError(t, err)

		qty, ok := lineQuantity(snap, f.p1.ProductID)
		require.True(t, ok)
		assert.Equal(t, 99, qty)
	})

	t.Run("ZeroRequestClampsToOne", func(t *testing.T) {
		f := newFixture(t)

		snap, err := f.service.AddToCart(
			t.Context(), testCartID, f.p1.ProductID, 0,
		)
		require.NoError(t, err)

		qty, ok := lineQuantity(snap, f.p1.ProductID)
		require.True(t, ok)
		assert.Equal(t, 1, qty)
	})

	t.Run("NewestLineFirst", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.AddToCart(t.Context(), testCartID, f.p1.ProductID, 1)
		require.NoError(t, err)

		snap, err := f.service.AddToCart(
			t.Context(), testCartID, f.p2.ProductID, 1,
		)
		require.NoError(t, err)

		require.Len(t, snap.Items, 2)
		assert.Equal(t, f.p2.ProductID, snap.Items[0].Product.ProductID)
		assert.Equal(t, f.p1.ProductID, snap.Items[1].Product.ProductID)
	})

	t.Run("CartsAreIsolated", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.AddToCart(t.Context(), "cart-a", f.p1.ProductID, 1)
		require.NoError(t, err)

		snap, err := f.service.Cart(t.Context(), "cart-b")
		require.NoError(t, err)
		assert.Empty(t, snap.Items)
	})
}

func TestUpdateCartItem(t *testing.T) {
	t.Run("SetsQuantity", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.AddToCart(t.Context(), testCartID, f.p1.ProductID, 1)
		require.NoError(t, err)

		snap, err := f.service.UpdateCartItem(
			t.Context(), testCartID, f.p1.ProductID, 5,
		)
		require.NoError(t, err)

		qty, ok := lineQuantity(snap, f.p1.ProductID)
		require.True(t, ok)
		assert.Equal(t, 5, qty)
	})

	t.Run("ClampsToMax", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.AddToCart(t.Context(), testCartID, f.p1.ProductID, 1)
		require.NoError(t, err)

		snap, err := f.service.UpdateCartItem(
			t.Context(), testCartID, f.p1.ProductID, 150,
		)
		require.NoError(t, err)

		qty, _ := lineQuantity(snap, f.p1.ProductID)
		assert.Equal(t, 99, qty)
	})

	t.Run("ZeroDeletesLine", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.AddToCart(t.Context(), testCartID, f.p1.ProductID, 3)
		require.NoError(t, err)

		snap, err := f.service.UpdateCartItem(
			t.Context(), testCartID, f.p1.ProductID, 0,
		)
		require.NoError(t, err)
		assert.Empty(t, snap.Items)
	})

	t.Run("AbsentLineIsNoop", func(t *testing.T) {
		f := newFixture(t)

		snap, err := f.service.UpdateCartItem(
			t.Context(), testCartID, f.p1.ProductID, 5,
		)
		require.NoError(t, err)
		assert.Empty(t, snap.Items)
	})
}

func TestRemoveFromCart(t *testing.T) {
	t.Run("Idempotent", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.AddToCart(t.Context(), testCartID, f.p1.ProductID, 2)
		require.NoError(t, err)

		first, err := f.service.RemoveFromCart(
			t.Context(), testCartID, f.p1.ProductID,
		)
		require.NoError(t, err)

		second, err := f.service.RemoveFromCart(
			t.Context(), testCartID, f.p1.ProductID,
		)
		require.NoError(t, err)

		assert.Equal(t, first.Items, second.Items)
		assert.Equal(t, first.Summary, second.Summary)
	})
}

func TestClearCart(t *testing.T) {
	t.Run("EmptiesCartAndZeroesSummary", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.AddToCart(t.Context(), testCartID, f.p1.ProductID, 2)
		require.NoError(t, err)
		_, err = f.service.AddToCart(t.Context(), testCartID, f.p2.ProductID, 1)
		require.NoError(t, err)

		snap, err := f.service.ClearCart(t.Context(), testCartID)
		require.NoError(t, err)

		assert.Empty(t, snap.Items)
		assert.Zero(t, snap.Summary.Count)
		assert.True(t, snap.Summary.Subtotal.IsZero())
		assert.True(t, snap.Summary.Shipping.IsZero())
		assert.True(t, snap.Summary.Total.IsZero())
	})
}

func TestMutationEvents(t *testing.T) {
	t.Run("PublishedAfterEveryMutation", func(t *testing.T) {
		producer := new(MockMutationProducer)
		producer.On("ProduceMutation", mock.Anything, mock.MatchedBy(
			func(m domain.CartMutation) bool {
				return m.CartID == testCartID && m.OccurredAt.IsZero() == false
			},
		)).Return(nil).Times(3)

		products := storage.NewMemoryProductsRepository()
		cart := storage.NewMemoryCartRepository(products)
		p, err := products.StoreProduct(t.Context(), domain.Product{
			Name:  "Sample Product 1",
			Price: decimal.RequireFromString("19.99"),
		})
		require.NoError(t, err)

		s := service.New(
			products, cart, producer, nil,
			decimal.RequireFromString("8.00"),
		)

		_, err = s.AddToCart(t.Context(), testCartID, p.ProductID, 1)
		require.NoError(t, err)
		_, err = s.UpdateCartItem(t.Context(), testCartID, p.ProductID, 4)
		require.NoError(t, err)
		_, err = s.ClearCart(t.Context(), testCartID)
		require.NoError(t, err)

		producer.AssertExpectations(t)
	})

	t.Run("BrokerFailureDoesNotFailMutation", func(t *testing.T) {
		producer := new(MockMutationProducer)
		producer.On("ProduceMutation", mock.Anything, mock.Anything).
			Return(errors.New("broker unreachable"))

		products := storage.NewMemoryProductsRepository()
		cart := storage.NewMemoryCartRepository(products)
		p, err := products.StoreProduct(t.Context(), domain.Product{
			Name:  "Sample Product 1",
			Price: decimal.RequireFromString("19.99"),
		})
		require.NoError(t, err)

		s := service.New(
			products, cart, producer, nil,
			decimal.RequireFromString("8.00"),
		)

		snap, err := s.AddToCart(t.Context(), testCartID, p.ProductID, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, snap.Summary.Count)
	})
}

func TestCartSummary(t *testing.T) {
	t.Run("PrefersView", func(t *testing.T) {
		f := newFixture(t)

		cached := domain.CartSummary{
			Count:    7,
			Subtotal: decimal.RequireFromString("70.00"),
			Shipping: decimal.RequireFromString("8.00"),
			Total:    decimal.RequireFromString("78.00"),
		}

		viewer := new(MockSummaryViewer)
		viewer.On("Summary", testCartID).Return(cached, true, nil)

		products := storage.NewMemoryProductsRepository()
		cart := storage.NewMemoryCartRepository(products)
		s := service.New(
			products, cart, f.producer, viewer,
			decimal.RequireFromString("8.00"),
		)

		sum, err := s.CartSummary(t.Context(), testCartID)
		require.NoError(t, err)
		assert.Equal(t, cached, sum)
	})

	t.Run("FallsBackToStore", func(t *testing.T) {
		viewer := new(MockSummaryViewer)
		viewer.On("Summary", testCartID).
			Return(domain.CartSummary{}, false, nil)

		products := storage.NewMemoryProductsRepository()
		cart := storage.NewMemoryCartRepository(products)
		p, err := products.StoreProduct(t.Context(), domain.Product{
			Name:  "Sample Product 1",
			Price: decimal.RequireFromString("19.99"),
		})
		require.NoError(t, err)

		producer := new(MockMutationProducer)
		producer.On("ProduceMutation", mock.Anything, mock.Anything).
			Return(nil).Maybe()

		s := service.New(
			products, cart, producer, viewer,
			decimal.RequireFromString("8.00"),
		)

		_, err = s.AddToCart(t.Context(), testCartID, p.ProductID, 2)
		require.NoError(t, err)

		sum, err := s.CartSummary(t.Context(), testCartID)
		require.NoError(t, err)
		assert.Equal(t, 2, sum.Count)
		assert.Equal(t, "39.98", sum.Subtotal.String())
		viewer.AssertExpectations(t)
	})
}
