package schema

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/sr"
)

type SchemaIdentifier interface {
	DetermineID(ctx context.Context, subject string, avroSchemaText string) (id int, err error)
}

type RegistryClient interface {
	CreateSchema(ctx context.Context, subject string, s sr.Schema) (sr.SubjectSchema, error)
}

var _ SchemaIdentifier = (*RegistryIdentifier)(nil)

// A RegistryIdentifier registers avro schemas in the schema registry.
// Registering an already known schema returns its existing ID.
type RegistryIdentifier struct {
	cl RegistryClient
}

func NewSchemaIdentifier(cl RegistryClient) RegistryIdentifier {
	return RegistryIdentifier{cl}
}

func (r RegistryIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (int, error) {
	const op = "RegistryIdentifier.DetermineID"

	ss, err := r.cl.CreateSchema(
		ctx, subject, sr.Schema{Schema: avroSchemaText, Type: sr.TypeAvro},
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return ss.ID, nil
}
