package storage

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CartRepository = (*CartRepository)(nil)

type CartRepository struct {
	sqldb sqldb
}

func NewCartRepository(sqldb sqldb) CartRepository {
	return CartRepository{sqldb}
}

// UpsertAdd is a single statement, so two concurrent adds to the same
// line cannot lose an update. The clamp in SQL mirrors
// [domain.MaxQuantity].
func (r CartRepository) UpsertAdd(
	ctx context.Context, cartID, productID string, quantity int,
) error {
	const op = "CartRepository.UpsertAdd"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id) DO UPDATE
		SET quantity = LEAST($4, cart_items.quantity + EXCLUDED.quantity);`

	_, err := r.sqldb.ExecContext(
		ctx, query, cartID, productID, quantity, domain.MaxQuantity,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CartRepository) SetQuantity(
	ctx context.Context, cartID, productID string, quantity int,
) error {
	const op = "CartRepository.SetQuantity"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		UPDATE cart_items SET quantity = $3
		WHERE cart_id = $1 AND product_id = $2;`

	_, err := r.sqldb.ExecContext(ctx, query, cartID, productID, quantity)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CartRepository) DeleteLine(
	ctx context.Context, cartID, productID string,
) error {
	const op = "CartRepository.DeleteLine"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		DELETE FROM cart_items
		WHERE cart_id = $1 AND product_id = $2;`

	_, err := r.sqldb.ExecContext(ctx, query, cartID, productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CartRepository) DeleteAll(
	ctx context.Context, cartID string,
) error {
	const op = "CartRepository.DeleteAll"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		DELETE FROM cart_items
		WHERE cart_id = $1 AND quantity > 0;`

	_, err := r.sqldb.ExecContext(ctx, query, cartID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ReadItems joins the lines with their products; a line whose product
// is gone drops out of the join.
func (r CartRepository) ReadItems(
	ctx context.Context, cartID string,
) (items []domain.CartItem, err error) {
	const op = "CartRepository.ReadItems"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT
			p.id, p.name, p.description, p.price::text, p.badge,
			p.rating::text, p.reviews, p.image, p.inventory, p.created_at,
			ci.quantity
		FROM cart_items ci
		INNER JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at DESC;`

	rows, err := r.sqldb.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.CartItem
		it.Product, err = scanProduct(func(dst ...any) error {
			return rows.Scan(append(dst, &it.Quantity)...)
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}
