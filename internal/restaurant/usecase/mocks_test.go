package usecase_test

import (
	"context"
	"sync"

	"restaurant-management/internal/restaurant/domain/model"
	"restaurant-management/internal/shared/eventbus"

	"github.com/stretchr/testify/mock"
)

type mockFoodRepository struct {
	mock.Mock
}

func (m *mockFoodRepository) docs(args mock.Arguments) ([]model.Document, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *mockFoodRepository) List(ctx context.Context) ([]model.Document, error) {
	return m.docs(m.Called(ctx))
}

func (m *mockFoodRepository) Search(ctx context.Context, text string) ([]model.Document, error) {
	return m.docs(m.Called(ctx, text))
}

func (m *mockFoodRepository) GetByID(ctx context.Context, id string) (model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Document), args.Error(1)
}

func (m *mockFoodRepository) ListByOwner(ctx context.Context, email string) ([]model.Document, error) {
	return m.docs(m.Called(ctx, email))
}

func (m *mockFoodRepository) Create(ctx context.Context, food model.Document) (*model.InsertResult, error) {
	args := m.Called(ctx, food)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InsertResult), args.Error(1)
}

func (m *mockFoodRepository) Upsert(ctx context.Context, id string, fields model.Document) (*model.UpdateResult, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UpdateResult), args.Error(1)
}

func (m *mockFoodRepository) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeleteResult), args.Error(1)
}

func (m *mockFoodRepository) IncrementOrderCount(ctx context.Context, id string) (*model.UpdateResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UpdateResult), args.Error(1)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order model.Document) (*model.InsertResult, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InsertResult), args.Error(1)
}

func (m *mockOrderRepository) ListByQuantityDesc(ctx context.Context) ([]model.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Document), args.Error(1)
}

func (m *mockOrderRepository) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeleteResult), args.Error(1)
}

// recordingPublisher captures published events synchronously.
type recordingPublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event eventbus.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) PublishAndForget(ctx context.Context, event eventbus.Event) {
	_ = p.Publish(ctx, event)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type())
	}
	return out
}
