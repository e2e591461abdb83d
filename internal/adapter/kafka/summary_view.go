package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/shopspring/decimal"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
)

var _ port.CartSummaryViewer = (*CartSummaryView)(nil)

// A cartSummaryCodec used for serde [schema.CartSummaryV1]
type cartSummaryCodec struct {
	serde Serde
}

func (c cartSummaryCodec) Encode(v any) ([]byte, error) {
	const op = "cartSummaryCodec.Encode"
	if _, ok := v.(schema.CartSummaryV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c cartSummaryCodec) Decode(data []byte) (any, error) {
	const op = "cartSummaryCodec.Decode"
	var s schema.CartSummaryV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// A CartSummaryViewConfig used for setup [CartSummaryView].
//
// All fields are required.
type CartSummaryViewConfig struct {
	SeedBrokers []string
	Topic       string
	Serde       Serde
}

// CartSummaryView materializes the compacted summary table topic, so
// the header badge reads the latest count/total without touching the
// relational store.
type CartSummaryView struct {
	gv *goka.View
}

func NewCartSummaryView(
	config CartSummaryViewConfig,
) (CartSummaryView, error) {
	const op = "NewCartSummaryView"

	gv, err := goka.NewView(
		config.SeedBrokers,
		goka.Table(config.Topic),
		cartSummaryCodec{config.Serde},
	)
	if err != nil {
		return CartSummaryView{}, opErr(err, op)
	}

	return CartSummaryView{gv}, nil
}

func (v CartSummaryView) Run(ctx context.Context) {
	const op = "CartSummaryView.Run"
	log := slog.With("op", op)

	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

// Summary returns the cached counters for the cart. The second value
// reports whether the view holds an entry for the cart yet.
func (v CartSummaryView) Summary(
	cartID string,
) (domain.CartSummary, bool, error) {
	const op = "CartSummaryView.Summary"

	val, err := v.gv.Get(cartID)
	if err != nil {
		return domain.CartSummary{}, false, opErr(err, op)
	}
	if val == nil {
		return domain.CartSummary{}, false, nil
	}

	s, ok := val.(schema.CartSummaryV1)
	if !ok {
		err := fmt.Errorf("%w: %T", ErrInvalidValueType, val)
		return domain.CartSummary{}, false, opErr(err, op)
	}

	sum, err := summaryToDomain(s)
	if err != nil {
		return domain.CartSummary{}, false, opErr(err, op)
	}
	return sum, true, nil
}

func summaryToDomain(s schema.CartSummaryV1) (domain.CartSummary, error) {
	subtotal, err := decimal.NewFromString(s.Subtotal)
	if err != nil {
		return domain.CartSummary{}, err
	}
	shipping, err := decimal.NewFromString(s.Shipping)
	if err != nil {
		return domain.CartSummary{}, err
	}
	total, err := decimal.NewFromString(s.Total)
	if err != nil {
		return domain.CartSummary{}, err
	}
	return domain.CartSummary{
		Count:    s.Count,
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    total,
	}, nil
}
