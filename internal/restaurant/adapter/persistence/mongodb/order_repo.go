package mongodb

import (
	"context"

	"restaurant-management/internal/restaurant/domain/model"
	"restaurant-management/internal/restaurant/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderRepository implements repository.OrderRepository on a MongoDB collection.
type OrderRepository struct {
	documentCollection
}

var _ repository.OrderRepository = (*OrderRepository)(nil)

// NewOrderRepository creates an order repository backed by col.
func NewOrderRepository(col CollectionInterface) *OrderRepository {
	return &OrderRepository{documentCollection: newDocumentCollection(col, "orders")}
}

func (r *OrderRepository) Create(ctx context.Context, order model.Document) (*model.InsertResult, error) {
	return r.insert(ctx, order)
}

// ListByQuantityDesc returns every order, largest quantity first.
func (r *OrderRepository) ListByQuantityDesc(ctx context.Context) ([]model.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: model.FieldQuantity, Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (model.Document, error) {
	return r.findByID(ctx, id)
}

func (r *OrderRepository) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	return r.deleteByID(ctx, id)
}
