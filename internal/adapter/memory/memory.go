package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ port.ProductsStorage = (*ProductsStorage)(nil)

// A ProductsStorage keeps products in process memory.
//
// IDs are generated and validated the same way the mongo storage does it,
// so both are interchangeable behind [port.ProductsStorage].
type ProductsStorage struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

func NewProductsStorage() *ProductsStorage {
	return &ProductsStorage{products: make(map[string]domain.Product)}
}

func (s *ProductsStorage) FindAll(ctx context.Context) ([]domain.Product, error) {
	return s.filter(ctx, func(domain.Product) bool { return true })
}

func (s *ProductsStorage) FindByID(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "ProductsStorage.FindByID"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
	}
	return p, nil
}

func (s *ProductsStorage) FindByCategory(
	ctx context.Context, category string,
) ([]domain.Product, error) {
	return s.filter(ctx, func(p domain.Product) bool {
		return p.Category == category
	})
}

func (s *ProductsStorage) FindByName(
	ctx context.Context, name string,
) ([]domain.Product, error) {
	return s.filter(ctx, func(p domain.Product) bool {
		return p.Name == name
	})
}

func (s *ProductsStorage) Insert(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsStorage.Insert"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.insert(p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s *ProductsStorage) Replace(
	ctx context.Context, p domain.Product,
) (bool, error) {
	const op = "ProductsStorage.Replace"

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.products[p.ID]
	if !ok || stored == p {
		return false, nil
	}
	s.products[p.ID] = p
	return true, nil
}

func (s *ProductsStorage) Delete(ctx context.Context, id string) (bool, error) {
	const op = "ProductsStorage.Delete"

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return false, nil
	}
	delete(s.products, id)
	return true, nil
}

func (s *ProductsStorage) Count(ctx context.Context) (int64, error) {
	const op = "ProductsStorage.Count"

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.products)), nil
}

// InsertMany stops at the first failing product, keeping the ones
// inserted before it, as an ordered insert does.
func (s *ProductsStorage) InsertMany(
	ctx context.Context, ps []domain.Product,
) error {
	const op = "ProductsStorage.InsertMany"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range ps {
		if _, err := s.insert(p); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

func (s *ProductsStorage) insert(p domain.Product) (domain.Product, error) {
	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}

	if _, err := primitive.ObjectIDFromHex(p.ID); err != nil {
		return domain.Product{}, fmt.Errorf("%w: %q", domain.ErrInvalidProductID, p.ID)
	}

	if _, ok := s.products[p.ID]; ok {
		return domain.Product{}, fmt.Errorf("%w: %q", ErrDuplicateID, p.ID)
	}

	s.products[p.ID] = p
	return p, nil
}

// filter returns matching products ordered by ID, which for generated
// IDs is insertion order.
func (s *ProductsStorage) filter(
	ctx context.Context, match func(domain.Product) bool,
) ([]domain.Product, error) {
	const op = "ProductsStorage.filter"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ps := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if match(p) {
			ps = append(ps, p)
		}
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })
	return ps, nil
}
