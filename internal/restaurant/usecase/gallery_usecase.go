package usecase

import (
	"context"

	"restaurant-management/internal/restaurant/domain/model"
	"restaurant-management/internal/restaurant/domain/repository"
)

// GalleryUsecaseInterface defines the photo gallery operations.
type GalleryUsecaseInterface interface {
	AddPhoto(ctx context.Context, photo model.Document) (*model.InsertResult, error)
	ListPhotos(ctx context.Context) ([]model.Document, error)
}

type GalleryUsecase struct {
	repo repository.GalleryRepository
}

func NewGalleryUsecase(repo repository.GalleryRepository) *GalleryUsecase {
	return &GalleryUsecase{repo: repo}
}

func (uc *GalleryUsecase) AddPhoto(ctx context.Context, photo model.Document) (*model.InsertResult, error) {
	return uc.repo.Create(ctx, photo)
}

func (uc *GalleryUsecase) ListPhotos(ctx context.Context) ([]model.Document, error) {
	return uc.repo.List(ctx)
}
