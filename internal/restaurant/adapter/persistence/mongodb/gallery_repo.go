package mongodb

import (
	"context"

	"restaurant-management/internal/restaurant/domain/model"
	"restaurant-management/internal/restaurant/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
)

// GalleryRepository stores gallery photos.
type GalleryRepository struct {
	documentCollection
}

var _ repository.GalleryRepository = (*GalleryRepository)(nil)

func NewGalleryRepository(col CollectionInterface) *GalleryRepository {
	return &GalleryRepository{documentCollection: newDocumentCollection(col, "gallery")}
}

func (r *GalleryRepository) Create(ctx context.Context, photo model.Document) (*model.InsertResult, error) {
	return r.insert(ctx, photo)
}

func (r *GalleryRepository) List(ctx context.Context) ([]model.Document, error) {
	return r.find(ctx, bson.M{})
}
