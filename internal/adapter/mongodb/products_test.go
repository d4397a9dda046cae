package mongodb

import (
	"testing"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func productBSON(id primitive.ObjectID, name, category string, price float64) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "Name", Value: name},
		{Key: "Category", Value: category},
		{Key: "Summary", Value: "summary of " + name},
		{Key: "Description", Value: "description of " + name},
		{Key: "ImageFile", Value: name + ".png"},
		{Key: "Price", Value: price},
	}
}

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func TestProductsRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("FindAll", func(mt *mtest.T) {
		id1, id2 := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(
			0, namespace(mt), mtest.FirstBatch,
			productBSON(id1, "Socks", "Clothes", 5),
			productBSON(id2, "Hat", "Clothes", 12.5),
		))

		r := NewProductsRepository(mt.Coll)
		ps, err := r.FindAll(mt.Context())
		require.NoError(mt, err)
		require.Len(mt, ps, 2)

		assert.Equal(mt, domain.Product{
			ID:          id1.Hex(),
			Name:        "Socks",
			Category:    "Clothes",
			Summary:     "summary of Socks",
			Description: "description of Socks",
			ImageFile:   "Socks.png",
			Price:       5,
		}, ps[0])
		assert.Equal(mt, id2.Hex(), ps[1].ID)
		assert.Equal(mt, 12.5, ps[1].Price)
	})

	mt.Run("FindAllEmpty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(
			0, namespace(mt), mtest.FirstBatch,
		))

		r := NewProductsRepository(mt.Coll)
		ps, err := r.FindAll(mt.Context())
		require.NoError(mt, err)
		assert.Empty(mt, ps)
	})

	mt.Run("FindAllCommandError", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))

		r := NewProductsRepository(mt.Coll)
		_, err := r.FindAll(mt.Context())
		require.Error(mt, err)

		var cmdErr mongo.CommandError
		assert.ErrorAs(mt, err, &cmdErr)
	})

	mt.Run("FindByIDFound", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(
			0, namespace(mt), mtest.FirstBatch,
			productBSON(id, "Socks", "Clothes", 5),
		))

		r := NewProductsRepository(mt.Coll)
		p, err := r.FindByID(mt.Context(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), p.ID)
		assert.Equal(mt, "Socks", p.Name)

		filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
		assert.Equal(mt, id, filter.Lookup("_id").ObjectID())
	})

	mt.Run("FindByIDNotFound", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(
			0, namespace(mt), mtest.FirstBatch,
		))

		r := NewProductsRepository(mt.Coll)
		_, err := r.FindByID(mt.Context(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, domain.ErrProductNotFound)
	})

	mt.Run("FindByIDMalformed", func(mt *mtest.T) {
		r := NewProductsRepository(mt.Coll)
		_, err := r.FindByID(mt.Context(), "not-an-object-id")
		assert.ErrorIs(mt, err, domain.ErrProductNotFound)
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("FindByCategory", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(
			0, namespace(mt), mtest.FirstBatch,
			productBSON(primitive.NewObjectID(), "Socks", "Clothes", 5),
		))

		r := NewProductsRepository(mt.Coll)
		ps, err := r.FindByCategory(mt.Context(), "Clothes")
		require.NoError(mt, err)
		require.Len(mt, ps, 1)
		assert.Equal(mt, "Clothes", ps[0].Category)

		filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
		assert.Equal(mt, "Clothes", filter.Lookup("Category").StringValue())
	})

	mt.Run("FindByName", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(
			0, namespace(mt), mtest.FirstBatch,
		))

		r := NewProductsRepository(mt.Coll)
		ps, err := r.FindByName(mt.Context(), "Socks")
		require.NoError(mt, err)
		assert.Empty(mt, ps)

		filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
		assert.Equal(mt, "Socks", filter.Lookup("Name").StringValue())
	})

	mt.Run("InsertAssignsID", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		r := NewProductsRepository(mt.Coll)
		p, err := r.Insert(mt.Context(), domain.Product{
			Name: "Socks", Category: "Clothes", Price: 5,
		})
		require.NoError(mt, err)
		assert.Len(mt, p.ID, 24)
		assert.Equal(mt, "Socks", p.Name)

		doc := mt.GetStartedEvent().Command.Lookup("documents").Array().Index(0).Value().Document()
		assert.Equal(mt, p.ID, doc.Lookup("_id").ObjectID().Hex())
		assert.Equal(mt, "Clothes", doc.Lookup("Category").StringValue())
	})

	mt.Run("InsertKeepsID", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id := primitive.NewObjectID().Hex()
		r := NewProductsRepository(mt.Coll)
		p, err := r.Insert(mt.Context(), domain.Product{ID: id, Name: "Socks"})
		require.NoError(mt, err)
		assert.Equal(mt, id, p.ID)
	})

	mt.Run("InsertInvalidID", func(mt *mtest.T) {
		r := NewProductsRepository(mt.Coll)
		_, err := r.Insert(mt.Context(), domain.Product{ID: "xyz", Name: "Socks"})
		assert.ErrorIs(mt, err, domain.ErrInvalidProductID)
	})

	mt.Run("InsertDuplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		r := NewProductsRepository(mt.Coll)
		_, err := r.Insert(mt.Context(), domain.Product{
			ID: primitive.NewObjectID().Hex(), Name: "Socks",
		})
		require.Error(mt, err)
		assert.True(mt, mongo.IsDuplicateKeyError(err))
	})

	mt.Run("ReplaceModified", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		r := NewProductsRepository(mt.Coll)
		ok, err := r.Replace(mt.Context(), domain.Product{
			ID: primitive.NewObjectID().Hex(), Name: "Socks", Price: 6,
		})
		require.NoError(mt, err)
		assert.True(mt, ok)
	})

	mt.Run("ReplaceNotMatched", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		r := NewProductsRepository(mt.Coll)
		ok, err := r.Replace(mt.Context(), domain.Product{
			ID: primitive.NewObjectID().Hex(), Name: "Socks",
		})
		require.NoError(mt, err)
		assert.False(mt, ok)
	})

	mt.Run("ReplaceMalformedID", func(mt *mtest.T) {
		r := NewProductsRepository(mt.Coll)
		ok, err := r.Replace(mt.Context(), domain.Product{ID: "123", Name: "Socks"})
		require.NoError(mt, err)
		assert.False(mt, ok)
	})

	mt.Run("DeleteRemoved", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
		))

		r := NewProductsRepository(mt.Coll)
		ok, err := r.Delete(mt.Context(), primitive.NewObjectID().Hex())
		require.NoError(mt, err)
		assert.True(mt, ok)
	})

	mt.Run("DeleteMissing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
		))

		r := NewProductsRepository(mt.Coll)
		ok, err := r.Delete(mt.Context(), primitive.NewObjectID().Hex())
		require.NoError(mt, err)
		assert.False(mt, ok)
	})

	mt.Run("Count", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(
			0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(6)}},
		))

		r := NewProductsRepository(mt.Coll)
		n, err := r.Count(mt.Context())
		require.NoError(mt, err)
		assert.Equal(mt, int64(6), n)
	})

	mt.Run("InsertMany", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		r := NewProductsRepository(mt.Coll)
		err := r.InsertMany(mt.Context(), domain.SeedProducts())
		require.NoError(mt, err)

		docs := mt.GetStartedEvent().Command.Lookup("documents").Array()
		values, err := docs.Values()
		require.NoError(mt, err)
		assert.Len(mt, values, len(domain.SeedProducts()))
	})
}
