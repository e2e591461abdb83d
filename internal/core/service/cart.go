package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
)

// AddToCart clamps the requested quantity to [1,99] and inserts the
// line, or increments an existing one with the sum re-clamped to 99.
// Excess is silently dropped.
func (s Service) AddToCart(
	ctx context.Context, cartID, productID string, quantity int,
) (domain.CartSnapshot, error) {
	const op = "Service.AddToCart"

	if err := ctx.Err(); err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	qty := domain.ClampAddQuantity(quantity)
	if err := s.cart.UpsertAdd(ctx, cartID, productID, qty); err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.afterMutation(ctx, op, domain.CartMutation{
		Action:    domain.CartActionAdd,
		CartID:    cartID,
		ProductID: productID,
		Quantity:  qty,
	})
}

// UpdateCartItem clamps to [0,99]. Zero deletes the line; a positive
// quantity overwrites an existing line and is a no-op when none exists,
// mirroring the storefront's historical behavior.
func (s Service) UpdateCartItem(
	ctx context.Context, cartID, productID string, quantity int,
) (domain.CartSnapshot, error) {
	const op = "Service.UpdateCartItem"

	if err := ctx.Err(); err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	qty := domain.ClampUpdateQuantity(quantity)

	var err error
	if qty == 0 {
		err = s.cart.DeleteLine(ctx, cartID, productID)
	} else {
		err = s.cart.SetQuantity(ctx, cartID, productID, qty)
	}
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.afterMutation(ctx, op, domain.CartMutation{
		Action:    domain.CartActionUpdate,
		CartID:    cartID,
		ProductID: productID,
		Quantity:  qty,
	})
}

// RemoveFromCart deletes the line if present. Idempotent.
func (s Service) RemoveFromCart(
	ctx context.Context, cartID, productID string,
) (domain.CartSnapshot, error) {
	const op = "Service.RemoveFromCart"

	if err := ctx.Err(); err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cart.DeleteLine(ctx, cartID, productID); err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.afterMutation(ctx, op, domain.CartMutation{
		Action:    domain.CartActionRemove,
		CartID:    cartID,
		ProductID: productID,
	})
}

// ClearCart empties the cart.
func (s Service) ClearCart(
	ctx context.Context, cartID string,
) (domain.CartSnapshot, error) {
	const op = "Service.ClearCart"

	if err := ctx.Err(); err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cart.DeleteAll(ctx, cartID); err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.afterMutation(ctx, op, domain.CartMutation{
		Action: domain.CartActionClear,
		CartID: cartID,
	})
}

// Cart returns the current snapshot: lines joined with products, newest
// first, with totals recomputed from scratch.
func (s Service) Cart(
	ctx context.Context, cartID string,
) (domain.CartSnapshot, error) {
	const op = "Service.Cart"

	snap, err := s.snapshot(ctx, cartID)
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	return snap, nil
}

// CartSummary serves the header-badge counters. It prefers the summary
// view fed by mutation events and falls back to recomputing from the
// store when the view is absent or has no entry yet.
func (s Service) CartSummary(
	ctx context.Context, cartID string,
) (domain.CartSummary, error) {
	const op = "Service.CartSummary"
	log := slog.With("op", op)

	if s.summaryView != nil {
		sum, ok, err := s.summaryView.Summary(cartID)
		if err != nil {
			log.Error("failed to read summary view", "err", err)
		} else if ok {
			return sum, nil
		}
	}

	snap, err := s.snapshot(ctx, cartID)
	if err != nil {
		return domain.CartSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	return snap.Summary, nil
}

func (s Service) snapshot(
	ctx context.Context, cartID string,
) (domain.CartSnapshot, error) {
	items, err := s.cart.ReadItems(ctx, cartID)
	if err != nil {
		return domain.CartSnapshot{}, err
	}
	return domain.CartSnapshot{
		CartID:  cartID,
		Items:   items,
		Summary: domain.Summarize(items, s.shippingFee),
	}, nil
}

// afterMutation re-reads the authoritative snapshot and publishes the
// mutation event the dependent caches refresh from. Publication is
// best-effort: the returned snapshot is already fresh, so a broker
// failure is logged, not surfaced.
func (s Service) afterMutation(
	ctx context.Context, op string, m domain.CartMutation,
) (domain.CartSnapshot, error) {
	snap, err := s.snapshot(ctx, m.CartID)
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	m.Summary = snap.Summary
	m.OccurredAt = time.Now().UTC()

	if s.mutations != nil {
		if err := s.mutations.ProduceMutation(ctx, m); err != nil {
			slog.With("op", op).Error(
				"failed to produce cart mutation", "err", err,
			)
		}
	}
	return snap, nil
}
