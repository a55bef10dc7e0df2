package driven

import "github.com/custodia-labs/deep-core/internal/core/domain"

// AuthAdapter handles token cryptography for the control API.
// Clients share a secret with the daemon; there is no user store.
type AuthAdapter interface {
	GenerateToken(claims *domain.TokenClaims) (string, error)
	ParseToken(token string) (*domain.TokenClaims, error)
}
