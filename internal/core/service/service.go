package service

import (
	"github.com/shopspring/decimal"

	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogProvider = (*Service)(nil)
var _ port.CartKeeper = (*Service)(nil)

type Service struct {
	products    port.ProductsRepository
	cart        port.CartRepository
	mutations   port.CartMutationProducer
	summaryView port.CartSummaryViewer
	shippingFee decimal.Decimal
}

// New wires the core service. summaryView is optional: without it the
// cart summary is recomputed from the repositories on every request.
func New(
	products port.ProductsRepository,
	cart port.CartRepository,
	mutations port.CartMutationProducer,
	summaryView port.CartSummaryViewer,
	shippingFee decimal.Decimal,
) Service {
	return Service{
		products:    products,
		cart:        cart,
		mutations:   mutations,
		summaryView: summaryView,
		shippingFee: shippingFee,
	}
}
