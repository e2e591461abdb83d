package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
)

const defaultRecommendedLimit = 3

// Products returns the whole catalog. A store failure degrades to an
// empty listing instead of propagating: the storefront keeps rendering
// while the outage is visible through the Degraded flag and the log.
func (s Service) Products(ctx context.Context) domain.CatalogListing {
	const op = "Service.Products"
	log := slog.With("op", op)

	ps, err := s.products.ReadProducts(ctx)
	if err != nil {
		log.Error("failed to read products", "err", err)
		return domain.CatalogListing{Degraded: true}
	}
	return domain.CatalogListing{Products: ps}
}

// RecommendedProducts returns up to limit products with the same
// fail-soft policy as Products. Non-positive limit falls back to the
// default.
func (s Service) RecommendedProducts(
	ctx context.Context, limit int,
) domain.CatalogListing {
	const op = "Service.RecommendedProducts"
	log := slog.With("op", op)

	if limit <= 0 {
		limit = defaultRecommendedLimit
	}

	ps, err := s.products.ReadRecommended(ctx, limit)
	if err != nil {
		log.Error("failed to read recommended products", "err", err)
		return domain.CatalogListing{Degraded: true}
	}
	return domain.CatalogListing{Products: ps}
}

func (s Service) ProductByID(
	ctx context.Context, productID string,
) (domain.Product, error) {
	const op = "Service.ProductByID"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.products.ReadProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s Service) CreateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "Service.CreateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.products.StoreProduct(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}
