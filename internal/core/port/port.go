package port

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
)

type CatalogProvider interface {
	Products(context.Context) domain.CatalogListing
	RecommendedProducts(ctx context.Context, limit int) domain.CatalogListing
	ProductByID(ctx context.Context, productID string) (domain.Product, error)
	CreateProduct(context.Context, domain.Product) (domain.Product, error)
}

type CartKeeper interface {
	AddToCart(ctx context.Context, cartID, productID string, quantity int) (domain.CartSnapshot, error)
	UpdateCartItem(ctx context.Context, cartID, productID string, quantity int) (domain.CartSnapshot, error)
	RemoveFromCart(ctx context.Context, cartID, productID string) (domain.CartSnapshot, error)
	ClearCart(ctx context.Context, cartID string) (domain.CartSnapshot, error)
	Cart(ctx context.Context, cartID string) (domain.CartSnapshot, error)
	CartSummary(ctx context.Context, cartID string) (domain.CartSummary, error)
}

type ProductsRepository interface {
	ReadProducts(context.Context) ([]domain.Product, error)
	ReadRecommended(ctx context.Context, limit int) ([]domain.Product, error)
	ReadProduct(ctx context.Context, productID string) (domain.Product, error)
	StoreProduct(context.Context, domain.Product) (domain.Product, error)
}

type CartRepository interface {
	// UpsertAdd inserts the line or atomically increments an existing
	// one, clamping the result to the quantity upper bound.
	UpsertAdd(ctx context.Context, cartID, productID string, quantity int) error

	// SetQuantity updates an existing line only; it never creates one.
	SetQuantity(ctx context.Context, cartID, productID string, quantity int) error

	DeleteLine(ctx context.Context, cartID, productID string) error
	DeleteAll(ctx context.Context, cartID string) error

	// ReadItems returns the cart lines joined with their products,
	// newest line first. Lines without a product are excluded.
	ReadItems(ctx context.Context, cartID string) ([]domain.CartItem, error)
}

type CartMutationProducer interface {
	ProduceMutation(context.Context, domain.CartMutation) error
}

type CartSummaryViewer interface {
	Summary(cartID string) (domain.CartSummary, bool, error)
}
