package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant-management/internal/auth/config"
	"restaurant-management/internal/auth/domain/model"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired          = fmt.Errorf("%w: token is expired", model.ErrTokenInvalidOrExpired)
	ErrTokenSignatureInvalid = fmt.Errorf("%w: token signature is invalid", model.ErrTokenInvalidOrExpired)
	ErrTokenMalformed        = fmt.Errorf("%w: token is malformed", model.ErrTokenInvalidOrExpired)
)

const (
	claimIssuedAt  = "iat"
	claimExpiresAt = "exp"
)

// JWTokenService signs and verifies HS256 session tokens that carry an
// arbitrary identity claim set.
type JWTokenService struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// Option customizes a JWTokenService.
type Option func(*JWTokenService)

// WithClock replaces time.Now; tests use it to move past expiry.
func WithClock(now func() time.Time) Option {
	return func(s *JWTokenService) { s.now = now }
}

// NewJWTokenService creates a new JWT token service
func NewJWTokenService(cfg *config.Config, opts ...Option) (*JWTokenService, error) {
	if cfg.TokenSecret == "" {
		return nil, errors.New("jwt secret key cannot be empty")
	}
	if cfg.TokenTTL <= 0 {
		return nil, errors.New("jwt token TTL must be positive")
	}

	s := &JWTokenService{
		secretKey: []byte(cfg.TokenSecret),
		ttl:       cfg.TokenTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue embeds identity as claims and adds iat and exp. Identity values for
// iat and exp are overwritten.
func (s *JWTokenService) Issue(ctx context.Context, identity model.Identity) (string, error) {
	now := s.now()
	claims := make(jwt.MapClaims, len(identity)+2)
	for k, v := range identity {
		claims[k] = v
	}
	claims[claimIssuedAt] = now.Unix()
	claims[claimExpiresAt] = now.Add(s.ttl).Unix()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the identity claims
// without iat and exp.
func (s *JWTokenService) Verify(ctx context.Context, tokenString string) (model.Identity, error) {
	if tokenString == "" {
		return nil, ErrTokenMalformed
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		default:
			return nil, fmt.Errorf("%w: %v", model.ErrTokenInvalidOrExpired, err)
		}
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	identity := make(model.Identity, len(claims))
	for k, v := range claims {
		if k == claimIssuedAt || k == claimExpiresAt {
			continue
		}
		identity[k] = v
	}
	return identity, nil
}
