package repository

import (
	"context"

	"restaurant-management/internal/auth/domain/model"
)

// TokenService issues and verifies session tokens.
type TokenService interface {
	// Issue signs identity into a token that expires after the configured TTL.
	Issue(ctx context.Context, identity model.Identity) (string, error)
	// Verify checks signature and expiry and returns the embedded identity.
	Verify(ctx context.Context, token string) (model.Identity, error)
}
