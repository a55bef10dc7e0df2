package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/deep-core/internal/core/domain"
	"github.com/custodia-labs/deep-core/internal/core/ports/driven"
	"github.com/custodia-labs/deep-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// DefaultTokenTTL is how long issued tokens stay valid
const DefaultTokenTTL = 30 * 24 * time.Hour

// authService implements the AuthService interface
type authService struct {
	authAdapter driven.AuthAdapter
	tokenTTL    time.Duration
	now         func() time.Time
}

// NewAuthService creates a new AuthService. A zero ttl uses DefaultTokenTTL.
func NewAuthService(authAdapter driven.AuthAdapter, tokenTTL time.Duration) driving.AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &authService{
		authAdapter: authAdapter,
		tokenTTL:    tokenTTL,
		now:         time.Now,
	}
}

// IssueToken mints a signed token for clientID
func (s *authService) IssueToken(ctx context.Context, clientID string) (string, *domain.TokenClaims, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return "", nil, fmt.Errorf("%w: client id is required", domain.ErrInvalidInput)
	}

	claims := domain.NewTokenClaims(clientID, s.now(), s.tokenTTL)
	token, err := s.authAdapter.GenerateToken(claims)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, claims, nil
}

// ValidateToken validates a token and returns the auth context
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims, err := s.authAdapter.ParseToken(token)
	if errors.Is(err, domain.ErrTokenExpired) {
		return nil, domain.ErrTokenExpired
	}
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	// Check expiration
	if claims.IsExpired(s.now()) {
		return nil, domain.ErrTokenExpired
	}
	if claims.ClientID == "" {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.AuthContext{ClientID: claims.ClientID}, nil
}
