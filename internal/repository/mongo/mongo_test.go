package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"adoptapi/internal/model"
	"adoptapi/internal/repository"
)

func TestCollection_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("applies defaults and id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		c := New[model.Pet](mt.DB)

		got, err := c.Create(context.Background(), &model.Pet{Name: "Firulais", Specie: "Dog"})
		require.NoError(mt, err)
		assert.False(mt, got.ID.IsZero())
		assert.False(mt, got.Adopted)
		assert.Nil(mt, got.Owner)
	})

	mt.Run("validation happens before any write", func(mt *mtest.T) {
		c := New[model.Pet](mt.DB)

		_, err := c.Create(context.Background(), &model.Pet{Name: "Firulais"})
		assert.True(mt, repository.IsValidation(err))
	})

	mt.Run("duplicate email is a conflict", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: test.users index: email_unique dup key",
		}))
		c := New[model.User](mt.DB)

		_, err := c.Create(context.Background(), &model.User{
			FirstName: "A", LastName: "B", Email: "dup@example.com", Age: 30, Password: "h",
		})
		require.Error(mt, err)
		var ce *repository.ConflictError
		require.ErrorAs(mt, err, &ce)
		assert.Equal(mt, "email", ce.Field)
		assert.ErrorIs(mt, err, repository.ErrDuplicateKey)
	})
}

func TestCollection_CreateMany(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("empty input", func(mt *mtest.T) {
		c := New[model.Pet](mt.DB)
		out, err := c.CreateMany(context.Background(), nil)
		require.NoError(mt, err)
		assert.Empty(mt, out)
	})

	mt.Run("inserts batch", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		c := New[model.Pet](mt.DB)

		out, err := c.CreateMany(context.Background(), []model.Pet{{Name: "a", Specie: "Dog"}, {Name: "b", Specie: "Cat"}})
		require.NoError(mt, err)
		require.Len(mt, out, 2)
		assert.False(mt, out[0].ID.IsZero())
		assert.NotEqual(mt, out[0].ID, out[1].ID)
	})

	mt.Run("invalid record rejects batch", func(mt *mtest.T) {
		c := New[model.Pet](mt.DB)
		_, err := c.CreateMany(context.Background(), []model.Pet{{Name: "a", Specie: "Dog"}, {Name: "b"}})
		assert.True(mt, repository.IsValidation(err))
	})
}

func TestCollection_Get(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes all documents", func(mt *mtest.T) {
		id1, id2 := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.pets", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: id1}, {Key: "name", Value: "a"}, {Key: "specie", Value: "Dog"}, {Key: "adopted", Value: false}},
			bson.D{{Key: "_id", Value: id2}, {Key: "name", Value: "b"}, {Key: "specie", Value: "Cat"}, {Key: "adopted", Value: true}},
		))
		c := New[model.Pet](mt.DB)

		out, err := c.Get(context.Background(), repository.Filter{"adopted": "true", "color": "x"})
		require.NoError(mt, err)
		require.Len(mt, out, 2)
		assert.Equal(mt, id1, out[0].ID)
		assert.True(mt, out[1].Adopted)
	})

	mt.Run("malformed id in filter", func(mt *mtest.T) {
		c := New[model.Pet](mt.DB)
		_, err := c.Get(context.Background(), repository.Filter{"_id": "zz"})
		assert.True(mt, repository.IsValidation(err))
	})
}

func TestCollection_GetOne(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.pets", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: id}, {Key: "name", Value: "Rex"}, {Key: "specie", Value: "Dog"}},
		))
		c := New[model.Pet](mt.DB)

		got, err := c.GetOne(context.Background(), repository.Filter{"_id": id.Hex()})
		require.NoError(mt, err)
		require.NotNil(mt, got)
		assert.Equal(mt, "Rex", got.Name)
	})

	mt.Run("not found is nil", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.pets", mtest.FirstBatch))
		c := New[model.Pet](mt.DB)

		got, err := c.GetOne(context.Background(), repository.Filter{"name": "none"})
		require.NoError(mt, err)
		assert.Nil(mt, got)
	})
}

func TestCollection_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id := primitive.NewObjectID()

	mt.Run("modified", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		c := New[model.Pet](mt.DB)

		res, err := c.Update(context.Background(), id.Hex(), repository.Fields{"adopted": true, "owner": primitive.NewObjectID().Hex()})
		require.NoError(mt, err)
		assert.Equal(mt, &repository.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, res)
	})

	mt.Run("missing id is a zero result", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))
		c := New[model.Pet](mt.DB)

		res, err := c.Update(context.Background(), id.Hex(), repository.Fields{"adopted": true})
		require.NoError(mt, err)
		assert.Equal(mt, int64(0), res.ModifiedCount)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		c := New[model.Pet](mt.DB)
		_, err := c.Update(context.Background(), "bad", repository.Fields{"adopted": true})
		assert.True(mt, repository.IsValidation(err))
	})

	mt.Run("uncoercible value", func(mt *mtest.T) {
		c := New[model.User](mt.DB)
		_, err := c.Update(context.Background(), id.Hex(), repository.Fields{"age": "old"})
		assert.True(mt, repository.IsValidation(err))
	})
}

func TestCollection_Delete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id := primitive.NewObjectID()

	mt.Run("returns deleted record", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: bson.D{{Key: "_id", Value: id}, {Key: "name", Value: "Rex"}, {Key: "specie", Value: "Dog"}}},
		})
		c := New[model.Pet](mt.DB)

		got, err := c.Delete(context.Background(), id.Hex())
		require.NoError(mt, err)
		require.NotNil(mt, got)
		assert.Equal(mt, id, got.ID)
	})

	mt.Run("missing id is nil", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}})
		c := New[model.Pet](mt.DB)

		got, err := c.Delete(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Nil(mt, got)
	})
}

func TestCollection_EnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("users get a unique email index", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, New[model.User](mt.DB).EnsureIndexes(context.Background()))
	})

	mt.Run("pets need none", func(mt *mtest.T) {
		require.NoError(mt, New[model.Pet](mt.DB).EnsureIndexes(context.Background()))
	})
}
