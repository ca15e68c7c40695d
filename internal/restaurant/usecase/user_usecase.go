package usecase

import (
	"context"

	"restaurant-management/internal/restaurant/domain/model"
	"restaurant-management/internal/restaurant/domain/repository"
)

// UserUsecaseInterface defines the user profile operations.
type UserUsecaseInterface interface {
	CreateUser(ctx context.Context, user model.Document) (*model.InsertResult, error)
	ListUsers(ctx context.Context) ([]model.Document, error)
}

type UserUsecase struct {
	repo repository.UserRepository
}

func NewUserUsecase(repo repository.UserRepository) *UserUsecase {
	return &UserUsecase{repo: repo}
}

func (uc *UserUsecase) CreateUser(ctx context.Context, user model.Document) (*model.InsertResult, error) {
	return uc.repo.Create(ctx, user)
}

func (uc *UserUsecase) ListUsers(ctx context.Context) ([]model.Document, error) {
	return uc.repo.List(ctx)
}
