package schema

const CartEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "cart_event",
	"fields": [
		{"name": "action", "type": "string"},
		{"name": "cart_id", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "quantity", "type": "int"},
		{"name": "summary", "type": {
			"type": "record",
			"name": "cart_totals",
			"fields": [
				{"name": "count", "type": "int"},
				{"name": "subtotal", "type": "string"},
				{"name": "shipping", "type": "string"},
				{"name": "total", "type": "string"}
			]
		}},
		{"name": "occurred_at", "type": "long"}
	]
}`

const CartSummarySchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "cart_summary",
	"fields": [
		{"name": "cart_id", "type": "string"},
		{"name": "count", "type": "int"},
		{"name": "subtotal", "type": "string"},
		{"name": "shipping", "type": "string"},
		{"name": "total", "type": "string"},
		{"name": "updated_at", "type": "long"}
	]
}`

type (
	CartEventV1 struct {
		Action     string       `avro:"action"`
		CartID     string       `avro:"cart_id"`
		ProductID  string       `avro:"product_id"`
		Quantity   int          `avro:"quantity"`
		Summary    CartTotalsV1 `avro:"summary"`
		OccurredAt int64        `avro:"occurred_at"`
	}

	CartTotalsV1 struct {
		Count    int    `avro:"count"`
		Subtotal string `avro:"subtotal"`
		Shipping string `avro:"shipping"`
		Total    string `avro:"total"`
	}

	// CartSummaryV1 is the compacted table-topic value: the latest
	// badge counters for one cart.
	CartSummaryV1 struct {
		CartID    string `avro:"cart_id"`
		Count     int    `avro:"count"`
		Subtotal  string `avro:"subtotal"`
		Shipping  string `avro:"shipping"`
		Total     string `avro:"total"`
		UpdatedAt int64  `avro:"updated_at"`
	}
)
