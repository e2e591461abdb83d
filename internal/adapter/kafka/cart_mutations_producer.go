package kafka

import (
	"context"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CartMutationProducer = (*CartMutationsProducer)(nil)

// A CartMutationsProducer publishes every completed cart mutation
// twice: the full event to the mutation stream and the latest badge
// counters to the compacted summary table, both keyed by cart id.
type CartMutationsProducer struct {
	cl           ProducerClient
	eventTopic   string
	eventEnc     Encoder
	summaryTopic string
	summaryEnc   Encoder
	opPrefix     string
}

func NewCartMutationsProducer(
	opts ...ProducerOpt,
) (CartMutationsProducer, error) {
	const op = "NewCartMutationsProducer"

	if len(opts) != 3 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return CartMutationsProducer{}, opErr(err, op)
		}
	}

	return CartMutationsProducer{
		cl:           options.cl,
		eventTopic:   options.eventTopic,
		eventEnc:     options.eventEnc,
		summaryTopic: options.summaryTopic,
		summaryEnc:   options.summaryEnc,
		opPrefix:     "CartMutationsProducer",
	}, nil
}

func (p CartMutationsProducer) Close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p CartMutationsProducer) ProduceMutation(
	ctx context.Context, m domain.CartMutation,
) error {
	const op = "ProduceMutation"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	rs, err := p.createRecords(m)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

func (p CartMutationsProducer) createRecords(
	m domain.CartMutation,
) ([]*kgo.Record, error) {
	const op = "createRecords"

	msgKey := []byte(m.CartID)

	eventB, err := p.eventEnc.Encode(cartMutationToEventV1(m))
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}

	summaryB, err := p.summaryEnc.Encode(cartMutationToSummaryV1(m))
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}

	return []*kgo.Record{
		{Topic: p.eventTopic, Key: msgKey, Value: eventB},
		{Topic: p.summaryTopic, Key: msgKey, Value: summaryB},
	}, nil
}
