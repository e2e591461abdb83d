package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/schema"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl           ProducerClient
	eventTopic   string
	eventEnc     Encoder
	summaryTopic string
	summaryEnc   Encoder
}

func ProducerClientOpt(
	ctx context.Context, seedBrokers []string,
) ProducerOpt {
	return func(opts *producerOpts) error {
		cl, err := kgo.NewClient(
			kgo.SeedBrokers(seedBrokers...),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			return err
		}
		opts.cl = cl
		return nil
	}
}

func EventStreamOpt(topic string, encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if topic == "" {
			return errors.New("event topic is empty string")
		}
		if encoder == nil {
			return errors.New("event encoder is nil")
		}
		opts.eventTopic = topic
		opts.eventEnc = encoder
		return nil
	}
}

func SummaryTableOpt(topic string, encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if topic == "" {
			return errors.New("summary topic is empty string")
		}
		if encoder == nil {
			return errors.New("summary encoder is nil")
		}
		opts.summaryTopic = topic
		opts.summaryEnc = encoder
		return nil
	}
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func cartMutationToEventV1(m domain.CartMutation) (s schema.CartEventV1) {
	s.Action = string(m.Action)
	s.CartID = m.CartID
	s.ProductID = m.ProductID
	s.Quantity = m.Quantity
	s.Summary = cartSummaryToTotalsV1(m.Summary)
	s.OccurredAt = m.OccurredAt.UnixMilli()
	return
}

func cartSummaryToTotalsV1(v domain.CartSummary) (s schema.CartTotalsV1) {
	s.Count = v.Count
	s.Subtotal = v.Subtotal.String()
	s.Shipping = v.Shipping.String()
	s.Total = v.Total.String()
	return
}

func cartMutationToSummaryV1(m domain.CartMutation) (s schema.CartSummaryV1) {
	s.CartID = m.CartID
	s.Count = m.Summary.Count
	s.Subtotal = m.Summary.Subtotal.String()
	s.Shipping = m.Summary.Shipping.String()
	s.Total = m.Summary.Total.String()
	s.UpdatedAt = m.OccurredAt.UnixMilli()
	return
}
