package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// InvitationTokenSize is the entropy of invitation tokens in bytes. Encoded
// it is 43 characters, inside the 32-64 range accepted on redemption.
const InvitationTokenSize = 32

// GenerateToken creates a cryptographically secure random token of size
// bytes, returned base64url-encoded without padding.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// FingerprintToken returns the hex SHA-256 of a token. Only fingerprints are
// stored, so a leaked database row cannot be redeemed.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// MatchFingerprint compares a raw token against a stored fingerprint in
// constant time.
func MatchFingerprint(token, fingerprint string) bool {
	return subtle.ConstantTimeCompare([]byte(FingerprintToken(token)), []byte(fingerprint)) == 1
}
