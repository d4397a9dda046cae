package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
)

var _ port.ProductsCatalog = (*Service)(nil)
var _ port.CatalogSeeder = (*Service)(nil)

type Service struct {
	productsStorage port.ProductsStorage
	eventsProducer  port.ProductEventsProducer
}

// New returns the catalog service. A nil eventsProducer disables
// product events.
func New(
	productsStorage port.ProductsStorage,
	eventsProducer port.ProductEventsProducer,
) Service {
	if eventsProducer == nil {
		eventsProducer = nopProducer{}
	}
	return Service{productsStorage, eventsProducer}
}

func (s Service) ListAll(ctx context.Context) ([]domain.Product, error) {
	const op = "Service.ListAll"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.productsStorage.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return nonNil(ps), nil
}

// GetByID returns [domain.ErrProductNotFound] when no product has the id.
func (s Service) GetByID(ctx context.Context, id string) (domain.Product, error) {
	const op = "Service.GetByID"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.productsStorage.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s Service) GetByCategory(
	ctx context.Context, category string,
) ([]domain.Product, error) {
	const op = "Service.GetByCategory"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.productsStorage.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return nonNil(ps), nil
}

func (s Service) GetByName(
	ctx context.Context, name string,
) ([]domain.Product, error) {
	const op = "Service.GetByName"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.productsStorage.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return nonNil(ps), nil
}

func (s Service) Create(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "Service.Create"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.productsStorage.Insert(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.notify(ctx, domain.ProductCreated, created)
	return created, nil
}

// Update replaces the whole product document with the same ID.
//
// Reports false without error when nothing was matched or modified.
func (s Service) Update(ctx context.Context, p domain.Product) (bool, error) {
	const op = "Service.Update"

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if p.ID == "" {
		return false, nil
	}

	ok, err := s.productsStorage.Replace(ctx, p)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if ok {
		s.notify(ctx, domain.ProductUpdated, p)
	}
	return ok, nil
}

// Delete reports false without error when no product has the id.
func (s Service) Delete(ctx context.Context, id string) (bool, error) {
	const op = "Service.Delete"

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	ok, err := s.productsStorage.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if ok {
		s.notify(ctx, domain.ProductDeleted, domain.Product{ID: id})
	}
	return ok, nil
}

// SeedIfEmpty inserts seed when the catalog holds no products and reports
// whether it did.
//
// The emptiness check and the insert are separate calls, so instances
// starting concurrently may both seed.
func (s Service) SeedIfEmpty(
	ctx context.Context, seed []domain.Product,
) (bool, error) {
	const op = "Service.SeedIfEmpty"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	n, err := s.productsStorage.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if n != 0 || len(seed) == 0 {
		log.Info("seeding skipped", "nProducts", n)
		return false, nil
	}

	if err := s.productsStorage.InsertMany(ctx, seed); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("catalog seeded", "nProducts", len(seed))
	return true, nil
}

func (s Service) notify(
	ctx context.Context, t domain.ProductEventType, p domain.Product,
) {
	const op = "Service.notify"

	evt := domain.ProductEvent{Type: t, Product: p, OccurredAt: time.Now()}
	err := s.eventsProducer.ProduceEvent(ctx, evt)
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error(
			"failed to produce product event",
			"op", op, "type", t, "productID", p.ID, "err", err,
		)
	}
}

func nonNil(ps []domain.Product) []domain.Product {
	if ps == nil {
		return []domain.Product{}
	}
	return ps
}

type nopProducer struct{}

func (nopProducer) ProduceEvent(context.Context, domain.ProductEvent) error {
	return nil
}
