package usecase

import (
	"context"
	"fmt"

	"restaurant-management/internal/auth/domain/model"
	"restaurant-management/internal/auth/domain/repository"
	"restaurant-management/internal/shared/eventbus"
	"restaurant-management/internal/shared/logger"
	"restaurant-management/internal/shared/metrics"
)

const (
	sessionIssued   = "issued"
	sessionCleared  = "cleared"
	sessionRejected = "rejected"

	eventSource = "auth"
)

// SessionUsecaseInterface defines the contract for session use cases.
type SessionUsecaseInterface interface {
	IssueSession(ctx context.Context, identity model.Identity) (string, error)
	EndSession(ctx context.Context, identity model.Identity)
	ValidateToken(ctx context.Context, token string) (model.Identity, error)
}

// SessionUsecase issues and checks stateless session tokens. Nothing is
// stored server-side; logging out only clears the client cookie.
type SessionUsecase struct {
	tokenSvc  repository.TokenService
	publisher eventbus.Publisher
	metrics   *metrics.Metrics
	log       logger.Logger
}

// NewSessionUsecase creates a new SessionUsecase. publisher and m may be nil.
func NewSessionUsecase(tokenSvc repository.TokenService, publisher eventbus.Publisher, m *metrics.Metrics, log logger.Logger) *SessionUsecase {
	if log == nil {
		log = logger.Noop()
	}
	return &SessionUsecase{
		tokenSvc:  tokenSvc,
		publisher: publisher,
		metrics:   m,
		log:       log.WithComponent("session_usecase"),
	}
}

// IssueSession signs a token for identity.
func (uc *SessionUsecase) IssueSession(ctx context.Context, identity model.Identity) (string, error) {
	if identity == nil {
		identity = model.Identity{}
	}

	token, err := uc.tokenSvc.Issue(ctx, identity)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("failed to issue session token: %v", err)
		return "", fmt.Errorf("failed to issue session token: %w", err)
	}

	uc.metrics.Session(sessionIssued)
	uc.log.WithContext(ctx).WithFields(map[string]interface{}{"email": identity.Email()}).Debug("session issued")
	uc.publish(ctx, eventbus.EventTypeUserAuthenticated, identity)
	return token, nil
}

// EndSession records a logout. identity is whatever the caller could recover
// from the cookie and may be nil.
func (uc *SessionUsecase) EndSession(ctx context.Context, identity model.Identity) {
	uc.metrics.Session(sessionCleared)
	uc.log.WithContext(ctx).Debug("session cleared")
	uc.publish(ctx, eventbus.EventTypeUserLoggedOut, identity)
}

// ValidateToken verifies token and returns its identity claims.
func (uc *SessionUsecase) ValidateToken(ctx context.Context, token string) (model.Identity, error) {
	if token == "" {
		uc.metrics.Session(sessionRejected)
		return nil, model.ErrTokenMissing
	}

	identity, err := uc.tokenSvc.Verify(ctx, token)
	if err != nil {
		uc.metrics.Session(sessionRejected)
		uc.log.WithContext(ctx).Debugf("session token rejected: %v", err)
		return nil, err
	}
	return identity, nil
}

func (uc *SessionUsecase) publish(ctx context.Context, eventType string, identity model.Identity) {
	if uc.publisher == nil {
		return
	}
	uc.publisher.PublishAndForget(ctx, eventbus.NewEvent(eventType, identity, eventSource))
}
