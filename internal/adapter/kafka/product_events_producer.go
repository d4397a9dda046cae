package kafka

import (
	"context"
	"log/slog"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
	"github.com/niksmo/catalog/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.ProductEventsProducer = (*ProductEventsProducer)(nil)

// A ProductEventsProducer produces [domain.ProductEvent] keyed by product
// ID, so events of one product stay in one partition.
type ProductEventsProducer struct {
	cl       ProducerClient
	encoder  Encoder
	opPrefix string
}

func NewProductEventsProducer(
	opts ...ProducerOpt,
) (ProductEventsProducer, error) {
	const op = "NewProductEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ProductEventsProducer{}, opErr(err, op)
		}
	}

	return ProductEventsProducer{
		cl:       options.cl,
		encoder:  options.encoder,
		opPrefix: "ProductEventsProducer",
	}, nil
}

func (p ProductEventsProducer) Close() {
	const op = "Close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p ProductEventsProducer) ProduceEvent(
	ctx context.Context, evt domain.ProductEvent,
) error {
	const op = "ProduceEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(evt)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	res := p.cl.ProduceSync(ctx, r)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

func (p ProductEventsProducer) createRecord(
	evt domain.ProductEvent,
) (*kgo.Record, error) {
	const op = "createRecord"

	s := p.toSchema(evt)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}
	return &kgo.Record{Key: []byte(s.ProductID), Value: b}, nil
}

func (ProductEventsProducer) toSchema(
	evt domain.ProductEvent,
) (s schema.ProductEventV1) {
	s.EventType = string(evt.Type)
	s.ProductID = evt.Product.ID
	s.Name = evt.Product.Name
	s.Category = evt.Product.Category
	s.Summary = evt.Product.Summary
	s.Description = evt.Product.Description
	s.ImageFile = evt.Product.ImageFile
	s.Price = evt.Product.Price
	s.OccurredAt = evt.OccurredAt
	return s
}
