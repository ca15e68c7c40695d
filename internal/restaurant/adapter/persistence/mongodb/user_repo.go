package mongodb

import (
	"context"

	"restaurant-management/internal/restaurant/domain/model"
	"restaurant-management/internal/restaurant/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository stores user profile documents. Credentials never reach it.
type UserRepository struct {
	documentCollection
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository(col CollectionInterface) *UserRepository {
	return &UserRepository{documentCollection: newDocumentCollection(col, "users")}
}

func (r *UserRepository) Create(ctx context.Context, user model.Document) (*model.InsertResult, error) {
	return r.insert(ctx, user)
}

func (r *UserRepository) List(ctx context.Context) ([]model.Document, error) {
	return r.find(ctx, bson.M{})
}
