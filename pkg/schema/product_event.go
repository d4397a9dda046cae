package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const ProductEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "catalog",
	"name": "product_event",
	"fields" : [
		{"name": "event_type", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "name", "type": "string"},
		{"name": "category", "type": "string"},
		{"name": "summary", "type": "string"},
		{"name": "description", "type": "string"},
		{"name": "image_file", "type": "string"},
		{"name": "price", "type": "double"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type ProductEventV1 struct {
	EventType   string    `avro:"event_type"`
	ProductID   string    `avro:"product_id"`
	Name        string    `avro:"name"`
	Category    string    `avro:"category"`
	Summary     string    `avro:"summary"`
	Description string    `avro:"description"`
	ImageFile   string    `avro:"image_file"`
	Price       float64   `avro:"price"`
	OccurredAt  time.Time `avro:"occurred_at"`
}

// ProductEventV1Avro panics if the schema text is malformed.
func ProductEventV1Avro() avro.Schema {
	return avro.MustParse(ProductEventSchemaTextV1)
}
