package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ProductsRepository = (*ProductsRepository)(nil)

const productColumns = `
	id, name, description, price::text, badge,
	rating::text, reviews, image, inventory, created_at`

type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

func (r ProductsRepository) ReadProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "ProductsRepository.ReadProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT` + productColumns + `
		FROM products ORDER BY created_at ASC;`

	return r.queryProducts(ctx, op, query)
}

func (r ProductsRepository) ReadRecommended(
	ctx context.Context, limit int,
) ([]domain.Product, error) {
	const op = "ProductsRepository.ReadRecommended"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT` + productColumns + `
		FROM products ORDER BY created_at ASC LIMIT $1;`

	return r.queryProducts(ctx, op, query, limit)
}

func (r ProductsRepository) ReadProduct(
	ctx context.Context, productID string,
) (domain.Product, error) {
	const op = "ProductsRepository.ReadProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT` + productColumns + `
		FROM products WHERE id = $1;`

	row := r.sqldb.QueryRowContext(ctx, query, productID)
	v, err := scanProduct(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func (r ProductsRepository) StoreProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.StoreProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO products (
			id, name, description, price, badge,
			rating, reviews, image, inventory
		)
		VALUES ($1, $2, $3, $4::numeric, $5, $6::numeric, $7, $8, $9)
		RETURNING` + productColumns + `;`

	row := r.sqldb.QueryRowContext(ctx, query,
		uuid.NewString(), p.Name, p.Description, p.Price.String(), string(p.Badge),
		p.Rating.String(), p.Reviews, p.Image, string(p.Inventory),
	)

	created, err := scanProduct(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrCreateFailed)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

func (r ProductsRepository) queryProducts(
	ctx context.Context, op, query string, args ...any,
) (ps []domain.Product, err error) {
	rows, err := r.sqldb.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		v, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ps = append(ps, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func scanProduct(scan func(...any) error) (domain.Product, error) {
	var (
		v       domain.Product
		priceS  string
		ratingS string
		badgeS  string
		invS    string
	)

	err := scan(
		&v.ProductID, &v.Name, &v.Description, &priceS, &badgeS,
		&ratingS, &v.Reviews, &v.Image, &invS, &v.CreatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}

	v.Price, err = decimal.NewFromString(priceS)
	if err != nil {
		return domain.Product{}, err
	}
	v.Rating, err = decimal.NewFromString(ratingS)
	if err != nil {
		return domain.Product{}, err
	}
	v.Badge = domain.Badge(badgeS)
	v.Inventory = domain.Inventory(invS)
	return v, nil
}
