package usecase

import (
	"context"

	"restaurant-management/internal/restaurant/domain/model"
	"restaurant-management/internal/restaurant/domain/repository"
	"restaurant-management/internal/shared/eventbus"
	"restaurant-management/internal/shared/logger"
)

const eventSource = "restaurant"

// FoodUsecaseInterface defines the food menu operations.
type FoodUsecaseInterface interface {
	ListFoods(ctx context.Context) ([]model.Document, error)
	SearchFoods(ctx context.Context, text string) ([]model.Document, error)
	GetFood(ctx context.Context, id string) (model.Document, error)
	ListFoodsByOwner(ctx context.Context, email string) ([]model.Document, error)
	CreateFood(ctx context.Context, food model.Document) (*model.InsertResult, error)
	UpdateFood(ctx context.Context, id string, fields model.Document) (*model.UpdateResult, error)
	DeleteFood(ctx context.Context, id string) (*model.DeleteResult, error)
}

// FoodUsecase passes each call to the store and announces writes on the bus.
type FoodUsecase struct {
	repo      repository.FoodRepository
	publisher eventbus.Publisher
	log       logger.Logger
}

// NewFoodUsecase creates a FoodUsecase. publisher may be nil.
func NewFoodUsecase(repo repository.FoodRepository, publisher eventbus.Publisher, log logger.Logger) *FoodUsecase {
	if log == nil {
		log = logger.Noop()
	}
	return &FoodUsecase{repo: repo, publisher: publisher, log: log.WithComponent("food_usecase")}
}

func (uc *FoodUsecase) ListFoods(ctx context.Context) ([]model.Document, error) {
	return uc.repo.List(ctx)
}

func (uc *FoodUsecase) SearchFoods(ctx context.Context, text string) ([]model.Document, error) {
	return uc.repo.Search(ctx, text)
}

func (uc *FoodUsecase) GetFood(ctx context.Context, id string) (model.Document, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *FoodUsecase) ListFoodsByOwner(ctx context.Context, email string) ([]model.Document, error) {
	return uc.repo.ListByOwner(ctx, email)
}

func (uc *FoodUsecase) CreateFood(ctx context.Context, food model.Document) (*model.InsertResult, error) {
	res, err := uc.repo.Create(ctx, food)
	if err != nil {
		return nil, err
	}
	uc.log.WithContext(ctx).Infof("food %s added", model.IDString(res.InsertedID))
	publish(ctx, uc.publisher, eventbus.EventTypeFoodCreated, res)
	return res, nil
}

func (uc *FoodUsecase) UpdateFood(ctx context.Context, id string, fields model.Document) (*model.UpdateResult, error) {
	res, err := uc.repo.Upsert(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if res.UpsertedCount > 0 {
		uc.log.WithContext(ctx).Infof("food %s created by update", id)
	}
	publish(ctx, uc.publisher, eventbus.EventTypeFoodUpdated, map[string]interface{}{"id": id, "result": res})
	return res, nil
}

func (uc *FoodUsecase) DeleteFood(ctx context.Context, id string) (*model.DeleteResult, error) {
	res, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.DeletedCount > 0 {
		publish(ctx, uc.publisher, eventbus.EventTypeFoodDeleted, map[string]interface{}{"id": id})
	}
	return res, nil
}

func publish(ctx context.Context, publisher eventbus.Publisher, eventType string, data interface{}) {
	if publisher == nil {
		return
	}
	publisher.PublishAndForget(ctx, eventbus.NewEvent(eventType, data, eventSource))
}
