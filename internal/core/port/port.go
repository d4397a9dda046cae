package port

import (
	"context"

	"github.com/niksmo/catalog/internal/core/domain"
)

type ProductsReader interface {
	ListAll(context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (domain.Product, error)
	GetByCategory(ctx context.Context, category string) ([]domain.Product, error)
	GetByName(ctx context.Context, name string) ([]domain.Product, error)
}

type ProductsWriter interface {
	Create(context.Context, domain.Product) (domain.Product, error)
	Update(context.Context, domain.Product) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ProductsCatalog interface {
	ProductsReader
	ProductsWriter
}

type CatalogSeeder interface {
	SeedIfEmpty(context.Context, []domain.Product) (bool, error)
}

// ProductsStorage is the document collection capability the catalog is
// built over. Each method maps to exactly one storage call.
type ProductsStorage interface {
	FindAll(context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (domain.Product, error)
	FindByCategory(ctx context.Context, category string) ([]domain.Product, error)
	FindByName(ctx context.Context, name string) ([]domain.Product, error)
	Insert(context.Context, domain.Product) (domain.Product, error)
	Replace(context.Context, domain.Product) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(context.Context) (int64, error)
	InsertMany(context.Context, []domain.Product) error
}

type ProductEventsProducer interface {
	ProduceEvent(context.Context, domain.ProductEvent) error
}
