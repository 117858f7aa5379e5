package gradeauth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the decoded payload of a platform token.
type TokenClaims struct {
	jwt.RegisteredClaims
	Roles RoleList `json:"roles,omitempty"`
}

// Subject returns the subject claim, the account username.
func (c *TokenClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Issuer returns the issuer claim
func (c *TokenClaims) Issuer() string {
	return c.RegisteredClaims.Issuer
}

// Audience returns the audience claim as plain strings
func (c *TokenClaims) Audience() []string {
	return c.RegisteredClaims.Audience
}

// HasRole checks if the account holds a specific role
func (c *TokenClaims) HasRole(role Role) bool {
	return c.Roles.Contains(role)
}

// Expires returns the expiration time
func (c *TokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *TokenClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
