package driving

import (
	"context"

	"github.com/custodia-labs/deep-core/internal/core/domain"
)

// AuthService issues and validates control-API tokens
type AuthService interface {
	// IssueToken mints a token for a named client (e.g. "cli", "menubar")
	IssueToken(ctx context.Context, clientID string) (string, *domain.TokenClaims, error)

	// ValidateToken validates a token and returns the auth context
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)
}
