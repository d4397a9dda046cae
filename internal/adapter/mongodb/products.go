package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ port.ProductsStorage = (*ProductsRepository)(nil)

type collection interface {
	Find(ctx context.Context, filter any, opts ...*options.FindOptions) (*mongo.Cursor, error)
	FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) *mongo.SingleResult
	InsertOne(ctx context.Context, document any, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	InsertMany(ctx context.Context, documents []any, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
	ReplaceOne(ctx context.Context, filter any, replacement any, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter any, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
	CountDocuments(ctx context.Context, filter any, opts ...*options.CountOptions) (int64, error)
}

// productDocument keeps the element names of the existing collection.
type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"Name"`
	Category    string             `bson:"Category"`
	Summary     string             `bson:"Summary"`
	Description string             `bson:"Description"`
	ImageFile   string             `bson:"ImageFile"`
	Price       float64            `bson:"Price"`
}

const (
	idField       = "_id"
	nameField     = "Name"
	categoryField = "Category"
)

// A ProductsRepository translates each catalog operation into a single
// call on the products collection. Driver errors are returned as is,
// prefixed with the operation name.
type ProductsRepository struct {
	coll collection
}

func NewProductsRepository(coll collection) ProductsRepository {
	return ProductsRepository{coll}
}

func (r ProductsRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	const op = "ProductsRepository.FindAll"

	ps, err := r.find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r ProductsRepository) FindByID(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "ProductsRepository.FindByID"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
	}

	var doc productDocument
	err = r.coll.FindOne(ctx, bson.D{{Key: idField, Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return r.toDomain(doc), nil
}

func (r ProductsRepository) FindByCategory(
	ctx context.Context, category string,
) ([]domain.Product, error) {
	const op = "ProductsRepository.FindByCategory"

	ps, err := r.find(ctx, bson.D{{Key: categoryField, Value: category}})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r ProductsRepository) FindByName(
	ctx context.Context, name string,
) ([]domain.Product, error) {
	const op = "ProductsRepository.FindByName"

	ps, err := r.find(ctx, bson.D{{Key: nameField, Value: name}})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

// Insert assigns a new ObjectID when the product has no ID.
func (r ProductsRepository) Insert(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.Insert"

	doc, err := r.toDocument(p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return r.toDomain(doc), nil
}

// Replace reports true only if a document was matched and modified.
func (r ProductsRepository) Replace(
	ctx context.Context, p domain.Product,
) (bool, error) {
	const op = "ProductsRepository.Replace"

	doc, err := r.toDocument(p)
	if err != nil || doc.ID.IsZero() {
		return false, nil
	}

	res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: idField, Value: doc.ID}}, doc)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return res.MatchedCount > 0 && res.ModifiedCount > 0, nil
}

func (r ProductsRepository) Delete(ctx context.Context, id string) (bool, error) {
	const op = "ProductsRepository.Delete"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: idField, Value: oid}})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return res.DeletedCount > 0, nil
}

func (r ProductsRepository) Count(ctx context.Context) (int64, error) {
	const op = "ProductsRepository.Count"

	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (r ProductsRepository) InsertMany(
	ctx context.Context, ps []domain.Product,
) error {
	const op = "ProductsRepository.InsertMany"

	docs := make([]any, 0, len(ps))
	for _, p := range ps {
		doc, err := r.toDocument(p)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		docs = append(docs, doc)
	}

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r ProductsRepository) find(
	ctx context.Context, filter bson.D,
) ([]domain.Product, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	ps := make([]domain.Product, len(docs))
	for i := range docs {
		ps[i] = r.toDomain(docs[i])
	}
	return ps, nil
}

func (ProductsRepository) toDocument(p domain.Product) (productDocument, error) {
	doc := productDocument{
		Name:        p.Name,
		Category:    p.Category,
		Summary:     p.Summary,
		Description: p.Description,
		ImageFile:   p.ImageFile,
		Price:       p.Price,
	}

	if p.ID == "" {
		return doc, nil
	}

	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return productDocument{}, fmt.Errorf("%w: %q", domain.ErrInvalidProductID, p.ID)
	}
	doc.ID = oid
	return doc, nil
}

func (ProductsRepository) toDomain(doc productDocument) domain.Product {
	return domain.Product{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Category:    doc.Category,
		Summary:     doc.Summary,
		Description: doc.Description,
		ImageFile:   doc.ImageFile,
		Price:       doc.Price,
	}
}
