package mongodb

import (
	"context"

	"restaurant-management/internal/restaurant/domain/model"
	"restaurant-management/internal/restaurant/domain/repository"
	apperrors "restaurant-management/internal/shared/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FoodRepository implements repository.FoodRepository on a MongoDB collection.
type FoodRepository struct {
	documentCollection
}

var _ repository.FoodRepository = (*FoodRepository)(nil)

// NewFoodRepository creates a food repository backed by col.
func NewFoodRepository(col CollectionInterface) *FoodRepository {
	return &FoodRepository{documentCollection: newDocumentCollection(col, "foods")}
}

func (r *FoodRepository) List(ctx context.Context) ([]model.Document, error) {
	return r.find(ctx, bson.M{})
}

func (r *FoodRepository) Search(ctx context.Context, text string) ([]model.Document, error) {
	return r.find(ctx, containsFold(model.FieldName, text))
}

func (r *FoodRepository) GetByID(ctx context.Context, id string) (model.Document, error) {
	return r.findByID(ctx, id)
}

func (r *FoodRepository) ListByOwner(ctx context.Context, email string) ([]model.Document, error) {
	return r.find(ctx, fieldEquals(model.FieldEmail, email))
}

func (r *FoodRepository) Create(ctx context.Context, food model.Document) (*model.InsertResult, error) {
	return r.insert(ctx, food)
}

// Upsert $sets fields on the food with id. The filter is an _id equality, so
// an upserted document takes the path id. An _id in fields is ignored.
func (r *FoodRepository) Upsert(ctx context.Context, id string, fields model.Document) (*model.UpdateResult, error) {
	filter, err := idFilter(id)
	if err != nil {
		return nil, err
	}

	set := fields.Without(model.FieldID)
	if len(set) == 0 {
		return nil, apperrors.NewValidationError("update body must contain at least one field")
	}

	return r.update(ctx, filter, bson.M{"$set": set}, options.Update().SetUpsert(true))
}

func (r *FoodRepository) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	return r.deleteByID(ctx, id)
}

// IncrementOrderCount adds one to order_count of the food with id.
func (r *FoodRepository) IncrementOrderCount(ctx context.Context, id string) (*model.UpdateResult, error) {
	filter, err := idFilter(id)
	if err != nil {
		return nil, err
	}
	return r.update(ctx, filter, bson.M{"$inc": bson.M{model.FieldOrderCount: 1}})
}
