package usecase

import (
	"context"
	"time"

	"restaurant-management/internal/restaurant/domain/model"
	"restaurant-management/internal/restaurant/domain/repository"
	"restaurant-management/internal/shared/eventbus"
	"restaurant-management/internal/shared/logger"
	"restaurant-management/internal/shared/metrics"
)

// Outcomes of the order_count increment that follows an order insert.
const (
	countUpdated   = "updated"
	countUnmatched = "unmatched"
	countSkipped   = "skipped"
	countFailed    = "failed"
)

// OrderUsecaseInterface defines the order operations.
type OrderUsecaseInterface interface {
	PlaceOrder(ctx context.Context, order model.Document) (*model.InsertResult, error)
	ListOrders(ctx context.Context) ([]model.Document, error)
	GetOrder(ctx context.Context, id string) (model.Document, error)
	DeleteOrder(ctx context.Context, id string) (*model.DeleteResult, error)
}

// OrderUsecase places and manages orders.
type OrderUsecase struct {
	orders    repository.OrderRepository
	foods     repository.FoodRepository
	publisher eventbus.Publisher
	metrics   *metrics.Metrics
	log       logger.Logger
	now       func() time.Time
}

// NewOrderUsecase creates an OrderUsecase. publisher and m may be nil.
func NewOrderUsecase(
	orders repository.OrderRepository,
	foods repository.FoodRepository,
	publisher eventbus.Publisher,
	m *metrics.Metrics,
	log logger.Logger,
) *OrderUsecase {
	if log == nil {
		log = logger.Noop()
	}
	return &OrderUsecase{
		orders:    orders,
		foods:     foods,
		publisher: publisher,
		metrics:   m,
		log:       log.WithComponent("order_usecase"),
		now:       time.Now,
	}
}

// PlaceOrder inserts order, then bumps order_count of the food it references.
// The two writes are not atomic. The increment is best effort: its failure is
// logged and never changes the insert result.
func (uc *OrderUsecase) PlaceOrder(ctx context.Context, order model.Document) (*model.InsertResult, error) {
	if order == nil {
		order = model.Document{}
	}

	res, err := uc.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	uc.metrics.OrderPlaced()

	foodID := order.FoodReference()
	uc.metrics.OrderCountUpdate(uc.incrementOrderCount(ctx, foodID))

	if uc.publisher != nil {
		ev := model.NewOrderPlaced(order, res.InsertedID, uc.now())
		uc.publisher.PublishAndForget(ctx, eventbus.NewEvent(eventbus.EventTypeOrderPlaced, ev, eventSource))
	}
	return res, nil
}

func (uc *OrderUsecase) incrementOrderCount(ctx context.Context, foodID string) string {
	log := uc.log.WithContext(ctx)
	if foodID == "" {
		log.Warn("order has no food reference, order_count not updated")
		return countSkipped
	}

	res, err := uc.foods.IncrementOrderCount(ctx, foodID)
	if err != nil {
		log.Warnf("failed to update order_count of food %s: %v", foodID, err)
		return countFailed
	}
	if res.MatchedCount == 0 {
		log.Warnf("order references unknown food %s", foodID)
		return countUnmatched
	}
	return countUpdated
}

// ListOrders returns every order, largest quantity first.
func (uc *OrderUsecase) ListOrders(ctx context.Context) ([]model.Document, error) {
	return uc.orders.ListByQuantityDesc(ctx)
}

func (uc *OrderUsecase) GetOrder(ctx context.Context, id string) (model.Document, error) {
	return uc.orders.GetByID(ctx, id)
}

func (uc *OrderUsecase) DeleteOrder(ctx context.Context, id string) (*model.DeleteResult, error) {
	return uc.orders.Delete(ctx, id)
}
