package domain

import "time"

// TokenClaims identifies a client of the control API
type TokenClaims struct {
	ClientID  string `json:"client_id"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// NewTokenClaims builds claims for a client valid for ttl from now
func NewTokenClaims(clientID string, now time.Time, ttl time.Duration) *TokenClaims {
	return &TokenClaims{
		ClientID:  clientID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
}

// IsExpired checks the claims against the given time
func (c *TokenClaims) IsExpired(now time.Time) bool {
	return now.Unix() >= c.ExpiresAt
}

// AuthContext contains the authenticated client for request context
type AuthContext struct {
	ClientID string `json:"client_id"`
}
