package schema_test

import (
	"context"
	"errors"
	"testing"

	"github.com/niksmo/catalog/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/sr"
)

type MockRegistryClient struct {
	mock.Mock
}

func (c *MockRegistryClient) CreateSchema(
	ctx context.Context, subject string, s sr.Schema,
) (sr.SubjectSchema, error) {
	args := c.Called(ctx, subject, s)
	return args.Get(0).(sr.SubjectSchema), args.Error(1)
}

func TestRegistryIdentifier(t *testing.T) {
	const subject = "product-events-value"
	want := sr.Schema{Schema: schema.ProductEventSchemaTextV1, Type: sr.TypeAvro}

	t.Run("Registered", func(t *testing.T) {
		cl := new(MockRegistryClient)
		cl.On("CreateSchema", t.Context(), subject, want).
			Return(sr.SubjectSchema{Subject: subject, Version: 1, ID: 42}, nil)

		id, err := schema.NewSchemaIdentifier(cl).DetermineID(
			t.Context(), subject, schema.ProductEventSchemaTextV1,
		)
		require.NoError(t, err)
		assert.Equal(t, 42, id)
	})

	t.Run("Failed", func(t *testing.T) {
		cl := new(MockRegistryClient)
		registryErr := errors.New("incompatible schema")
		cl.On("CreateSchema", t.Context(), subject, want).
			Return(sr.SubjectSchema{}, registryErr)

		_, err := schema.NewSchemaIdentifier(cl).DetermineID(
			t.Context(), subject, schema.ProductEventSchemaTextV1,
		)
		assert.ErrorIs(t, err, registryErr)
	})
}
