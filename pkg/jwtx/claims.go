package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the fixed lifetime of a session token. Sessions expire
// purely by timestamp; there is no server-side revocation.
const DefaultSessionTTL = 24 * time.Hour

// Claims are the session-token claims downstream services authorise against.
// Keep changes additive to preserve compatibility.
type Claims struct {
	jwt.RegisteredClaims

	// TenantID scopes the session to exactly one tenant.
	TenantID string `json:"tid,omitempty"`

	// Role is the user's role within the tenant, e.g. "tenant_admin".
	Role string `json:"role,omitempty"`

	// Email of the authenticated user.
	Email string `json:"email,omitempty"`
}

// NewSessionClaims builds minimally-correct session claims. The subject is
// the user ID; expiry is now+ttl. Passing now explicitly keeps issuance
// deterministic for tests.
func NewSessionClaims(
	subject, tenantID, role, email string,
	issuer string,
	ttl time.Duration,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		TenantID: tenantID,
		Role:     role,
		Email:    email,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the issuer claim against an expected value.
// An empty expected value enforces nothing.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
