package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretBytes is the shortest HMAC secret accepted.
const MinSecretBytes = 32

var (
	ErrWeakSecret   = errors.New("jwtx: secret must be at least 32 bytes")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// Signer is anything that can mint access tokens.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// HS256 signs and verifies tokens with a shared HMAC-SHA256 secret, the
// scheme used by the upstream identity service that fronts Aurora.
type HS256 struct {
	secret []byte
	issuer string
	leeway time.Duration
	now    func() time.Time
}

// NewHS256 returns a signer/verifier for secret. An empty issuer disables
// the issuer check.
func NewHS256(secret []byte, issuer string) (*HS256, error) {
	if len(secret) < MinSecretBytes {
		return nil, ErrWeakSecret
	}
	return &HS256{
		secret: secret,
		issuer: issuer,
		leeway: 30 * time.Second,
		now:    time.Now,
	}, nil
}

// Sign takes your claims and turns them into a signed JWT string.
func (h *HS256) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
}

// Verify validates the JWT string and returns its parsed Claims.
func (h *HS256) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// Time checks are done below with our own clock and leeway.
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return h.secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	if err := claims.ValidateIssuer(h.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiryWithLeeway(h.now(), h.leeway); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateTenant(); err != nil {
		return Claims{}, err
	}
	if claims.Subject == "" {
		return Claims{}, ErrInvalidClaim
	}

	return claims, nil
}
