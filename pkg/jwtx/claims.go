package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the lifetime of tokens minted by tooling.
const DefaultAccessTokenTTL = 15 * time.Minute

// Claims are the access-token claims the invitation service trusts.
type Claims struct {
	jwt.RegisteredClaims

	// Tenant the caller is acting in
	TenantID string `json:"tenant_id"`

	// Display name of the tenant, recorded for accept responses
	TenantName string `json:"tenant_name,omitempty"`

	// Email of the caller, used to match invitations on accept
	Email string `json:"email,omitempty"`

	// Permissions such as "aurora.invitations.view"
	Permissions []string `json:"permissions,omitempty"`
}

// NewAccessClaims builds minimally-correct claims.
func NewAccessClaims(
	subject, tenantID, tenantName, email string,
	permissions []string,
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
		TenantID:    tenantID,
		TenantName:  tenantName,
		Email:       email,
		Permissions: permissions,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// HasPermission reports whether p was granted.
func (c *Claims) HasPermission(p string) bool {
	return slices.Contains(c.Permissions, p)
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateTenant rejects tokens that do not name a tenant.
func (c *Claims) ValidateTenant() error {
	if c.TenantID == "" {
		return ErrInvalidClaim
	}
	return nil
}

// ValidateExpiryWithLeeway checks exp and nbf with a grace period for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
