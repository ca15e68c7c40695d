package http_test

import (
	"context"

	"restaurant-management/internal/auth/domain/model"

	"github.com/stretchr/testify/mock"
)

// mockSessionUsecase is a shared mock type for the SessionUsecaseInterface
type mockSessionUsecase struct {
	mock.Mock
}

func (m *mockSessionUsecase) IssueSession(ctx context.Context, identity model.Identity) (string, error) {
	args := m.Called(ctx, identity)
	return args.String(0), args.Error(1)
}

func (m *mockSessionUsecase) EndSession(ctx context.Context, identity model.Identity) {
	m.Called(ctx, identity)
}

func (m *mockSessionUsecase) ValidateToken(ctx context.Context, token string) (model.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Identity), args.Error(1)
}
