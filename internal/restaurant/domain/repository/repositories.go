package repository

import (
	"context"

	"restaurant-management/internal/restaurant/domain/model"
)

// Identifiers are store-assigned ids in hex form. Lookups of an absent id
// return a nil document and no error.

// FoodRepository persists food items.
type FoodRepository interface {
	List(ctx context.Context) ([]model.Document, error)
	// Search matches name case-insensitively against text taken literally.
	Search(ctx context.Context, text string) ([]model.Document, error)
	GetByID(ctx context.Context, id string) (model.Document, error)
	ListByOwner(ctx context.Context, email string) ([]model.Document, error)
	Create(ctx context.Context, food model.Document) (*model.InsertResult, error)
	// Upsert sets fields on the food with id, creating it under that id when absent.
	Upsert(ctx context.Context, id string, fields model.Document) (*model.UpdateResult, error)
	Delete(ctx context.Context, id string) (*model.DeleteResult, error)
	IncrementOrderCount(ctx context.Context, id string) (*model.UpdateResult, error)
}

// OrderRepository persists orders.
type OrderRepository interface {
	Create(ctx context.Context, order model.Document) (*model.InsertResult, error)
	ListByQuantityDesc(ctx context.Context) ([]model.Document, error)
	GetByID(ctx context.Context, id string) (model.Document, error)
	Delete(ctx context.Context, id string) (*model.DeleteResult, error)
}

// GalleryRepository persists gallery photos.
type GalleryRepository interface {
	Create(ctx context.Context, photo model.Document) (*model.InsertResult, error)
	List(ctx context.Context) ([]model.Document, error)
}

// UserRepository persists users.
type UserRepository interface {
	Create(ctx context.Context, user model.Document) (*model.InsertResult, error)
	List(ctx context.Context) ([]model.Document, error)
}
