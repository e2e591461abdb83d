package schema_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/pkg/schema"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestSerdeCartEventV1(t *testing.T) {

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeCartEventV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeCartEventV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaID := 1
		subject := "testTopic-value"

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.CartEventSchemaTextV1,
		).Return(schemaID, nil)

		serde, err := schema.NewSerdeCartEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)

		event := schema.CartEventV1{
			Action:    "add",
			CartID:    "testCartID",
			ProductID: "testProductID",
			Quantity:  3,
			Summary: schema.CartTotalsV1{
				Count:    3,
				Subtotal: "59.97",
				Shipping: "8.00",
				Total:    "67.97",
			},
			OccurredAt: 1700000000000,
		}

		b, err := serde.Encode(event)
		require.NoError(t, err)

		var got schema.CartEventV1
		require.NoError(t, serde.Decode(b, &got))
		assert.Equal(t, event, got)
	})
}

func TestSerdeCartSummaryV1(t *testing.T) {
	t.Run("EncodeDecode", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaID := 2
		subject := "testSummaryTopic-value"

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.CartSummarySchemaTextV1,
		).Return(schemaID, nil)

		serde, err := schema.NewSerdeCartSummaryV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)

		summary := schema.CartSummaryV1{
			CartID:    "testCartID",
			Count:     2,
			Subtotal:  "39.98",
			Shipping:  "8.00",
			Total:     "47.98",
			UpdatedAt: 1700000000000,
		}

		b, err := serde.Encode(summary)
		require.NoError(t, err)

		var got schema.CartSummaryV1
		require.NoError(t, serde.Decode(b, &got))
		assert.Equal(t, summary, got)
	})
}
