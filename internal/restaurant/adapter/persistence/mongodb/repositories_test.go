package mongodb

import (
	"context"
	"errors"
	"testing"

	"restaurant-management/internal/restaurant/domain/model"
	apperrors "restaurant-management/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestIDFilter(t *testing.T) {
	oid := primitive.NewObjectID()

	filter, err := idFilter(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, bson.M{"_id": oid}, filter)

	_, err = idFilter("not-an-id")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.ErrorIs(t, err, apperrors.ErrInvalidID)
}

func TestContainsFold_EscapesInput(t *testing.T) {
	filter := containsFold("name", "piz.*(")

	assert.Equal(t, bson.M{"name": bson.M{"$regex": `piz\.\*\(`, "$options": "i"}}, filter)
}

func TestFoodRepository_List(t *testing.T) {
	col := &mockCollection{}
	cur := &stubCursor{docs: []model.Document{{"name": "Pizza"}}}
	col.On("Find", mock.Anything, bson.M{}, mock.Anything).Return(cur, nil)

	docs, err := NewFoodRepository(col).List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []model.Document{{"name": "Pizza"}}, docs)
	assert.True(t, cur.closed)
}

func TestFoodRepository_ListEmptyIsNotNil(t *testing.T) {
	col := &mockCollection{}
	col.On("Find", mock.Anything, bson.M{}, mock.Anything).Return(&stubCursor{}, nil)

	docs, err := NewFoodRepository(col).List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestFoodRepository_Search(t *testing.T) {
	col := &mockCollection{}
	want := bson.M{"name": bson.M{"$regex": "piz", "$options": "i"}}
	col.On("Find", mock.Anything, want, mock.Anything).Return(&stubCursor{}, nil)

	_, err := NewFoodRepository(col).Search(context.Background(), "piz")

	require.NoError(t, err)
	col.AssertExpectations(t)
}

func TestFoodRepository_ListByOwner(t *testing.T) {
	col := &mockCollection{}
	col.On("Find", mock.Anything, bson.M{"email": "chef@example.com"}, mock.Anything).Return(&stubCursor{}, nil)

	_, err := NewFoodRepository(col).ListByOwner(context.Background(), "chef@example.com")

	require.NoError(t, err)
	col.AssertExpectations(t)
}

func TestFoodRepository_GetByID(t *testing.T) {
	oid := primitive.NewObjectID()

	t.Run("found", func(t *testing.T) {
		col := &mockCollection{}
		doc := model.Document{"_id": oid, "name": "Pasta"}
		col.On("FindOne", mock.Anything, bson.M{"_id": oid}).Return(&stubSingleResult{doc: doc})

		got, err := NewFoodRepository(col).GetByID(context.Background(), oid.Hex())

		require.NoError(t, err)
		assert.Equal(t, doc, got)
	})

	t.Run("absent", func(t *testing.T) {
		col := &mockCollection{}
		col.On("FindOne", mock.Anything, bson.M{"_id": oid}).Return(&stubSingleResult{err: mongo.ErrNoDocuments})

		got, err := NewFoodRepository(col).GetByID(context.Background(), oid.Hex())

		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("store failure", func(t *testing.T) {
		col := &mockCollection{}
		col.On("FindOne", mock.Anything, bson.M{"_id": oid}).Return(&stubSingleResult{err: errors.New("socket closed")})

		_, err := NewFoodRepository(col).GetByID(context.Background(), oid.Hex())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "socket closed")
	})

	t.Run("malformed id", func(t *testing.T) {
		col := &mockCollection{}

		_, err := NewFoodRepository(col).GetByID(context.Background(), "xyz")

		assert.True(t, apperrors.IsValidation(err))
		col.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything)
	})
}

func TestFoodRepository_Create(t *testing.T) {
	col := &mockCollection{}
	oid := primitive.NewObjectID()
	food := model.Document{"name": "Pasta", "price": 10}
	col.On("InsertOne", mock.Anything, food).Return(oid, nil)

	res, err := NewFoodRepository(col).Create(context.Background(), food)

	require.NoError(t, err)
	assert.Equal(t, &model.InsertResult{Acknowledged: true, InsertedID: oid}, res)
}

func TestFoodRepository_CreateFailure(t *testing.T) {
	col := &mockCollection{}
	col.On("InsertOne", mock.Anything, mock.Anything).Return(nil, errors.New("duplicate key"))

	_, err := NewFoodRepository(col).Create(context.Background(), model.Document{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert into foods")
}

func TestFoodRepository_Upsert(t *testing.T) {
	oid := primitive.NewObjectID()
	col := &mockCollection{}
	col.On("UpdateOne", mock.Anything, bson.M{"_id": oid},
		bson.M{"$set": model.Document{"price": 12}},
		mock.MatchedBy(func(opts []*options.UpdateOptions) bool {
			return len(opts) == 1 && opts[0].Upsert != nil && *opts[0].Upsert
		}),
	).Return(stubUpdateResult{upserted: 1, id: oid}, nil)

	res, err := NewFoodRepository(col).Upsert(context.Background(), oid.Hex(),
		model.Document{"_id": "ignored", "price": 12})

	require.NoError(t, err)
	assert.Equal(t, &model.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: oid}, res)
}

func TestFoodRepository_UpsertEmptyBody(t *testing.T) {
	col := &mockCollection{}

	_, err := NewFoodRepository(col).Upsert(context.Background(), primitive.NewObjectID().Hex(),
		model.Document{"_id": "only-id"})

	assert.True(t, apperrors.IsValidation(err))
	col.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFoodRepository_Delete(t *testing.T) {
	oid := primitive.NewObjectID()
	col := &mockCollection{}
	col.On("DeleteOne", mock.Anything, bson.M{"_id": oid}).Return(stubDeleteResult(1), nil)

	res, err := NewFoodRepository(col).Delete(context.Background(), oid.Hex())

	require.NoError(t, err)
	assert.Equal(t, &model.DeleteResult{Acknowledged: true, DeletedCount: 1}, res)
}

func TestFoodRepository_IncrementOrderCount(t *testing.T) {
	oid := primitive.NewObjectID()
	col := &mockCollection{}
	col.On("UpdateOne", mock.Anything, bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"order_count": 1}}, mock.Anything,
	).Return(stubUpdateResult{matched: 1, modified: 1}, nil)

	res, err := NewFoodRepository(col).IncrementOrderCount(context.Background(), oid.Hex())

	require.NoError(t, err)
	assert.EqualValues(t, 1, res.MatchedCount)
	assert.EqualValues(t, 1, res.ModifiedCount)
}

func TestOrderRepository_ListByQuantityDesc(t *testing.T) {
	col := &mockCollection{}
	col.On("Find", mock.Anything, bson.M{}, mock.MatchedBy(func(opts []*options.FindOptions) bool {
		return len(opts) == 1 && assert.ObjectsAreEqual(bson.D{{Key: "quantity", Value: -1}}, opts[0].Sort)
	})).Return(&stubCursor{docs: []model.Document{{"quantity": 5}, {"quantity": 1}}}, nil)

	docs, err := NewOrderRepository(col).ListByQuantityDesc(context.Background())

	require.NoError(t, err)
	assert.Len(t, docs, 2)
	col.AssertExpectations(t)
}

func TestOrderRepository_FindFailure(t *testing.T) {
	col := &mockCollection{}
	col.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	_, err := NewOrderRepository(col).ListByQuantityDesc(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query orders")
}

func TestOrderRepository_DeleteMalformedID(t *testing.T) {
	col := &mockCollection{}

	_, err := NewOrderRepository(col).Delete(context.Background(), "123")

	assert.ErrorIs(t, err, apperrors.ErrInvalidID)
}

func TestGalleryAndUserRepositories(t *testing.T) {
	oid := primitive.NewObjectID()

	gallery := &mockCollection{}
	gallery.On("InsertOne", mock.Anything, model.Document{"url": "a.jpg"}).Return(oid, nil)
	gallery.On("Find", mock.Anything, bson.M{}, mock.Anything).Return(&stubCursor{docs: []model.Document{{"url": "a.jpg"}}}, nil)

	g := NewGalleryRepository(gallery)
	res, err := g.Create(context.Background(), model.Document{"url": "a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, oid, res.InsertedID)
	photos, err := g.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, photos, 1)

	users := &mockCollection{}
	users.On("InsertOne", mock.Anything, model.Document{}).Return(oid, nil)
	users.On("Find", mock.Anything, bson.M{}, mock.Anything).Return(&stubCursor{}, nil)

	u := NewUserRepository(users)
	_, err = u.Create(context.Background(), nil)
	require.NoError(t, err)
	list, err := u.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
