package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/aurora/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var secret = []byte(strings.Repeat("s", jwtx.MinSecretBytes))

func TestHS256RoundTrip(t *testing.T) {
	h, err := jwtx.NewHS256(secret, "aurora")
	require.NoError(t, err)

	in := jwtx.NewAccessClaims("user-1", "tenant-1", "Acme", "u@example.com",
		[]string{"aurora.invitations.view"}, "aurora", time.Minute, time.Now())

	tok, err := h.Sign(in)
	require.NoError(t, err)

	out, err := h.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "user-1", out.Subject)
	require.Equal(t, "Acme", out.TenantName)
	require.True(t, out.HasPermission("aurora.invitations.view"))
	require.False(t, out.HasPermission("aurora.invitations.revoke"))
}

func TestHS256Rejects(t *testing.T) {
	h, err := jwtx.NewHS256(secret, "aurora")
	require.NoError(t, err)

	t.Run("weak secret", func(t *testing.T) {
		_, err := jwtx.NewHS256([]byte("short"), "")
		require.ErrorIs(t, err, jwtx.ErrWeakSecret)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		tok, err := h.Sign(jwtx.NewAccessClaims("u", "t", "", "", nil, "other", time.Minute, time.Now()))
		require.NoError(t, err)
		_, err = h.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("expired", func(t *testing.T) {
		tok, err := h.Sign(jwtx.NewAccessClaims("u", "t", "", "", nil, "aurora", time.Minute, time.Now().Add(-time.Hour)))
		require.NoError(t, err)
		_, err = h.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("missing tenant", func(t *testing.T) {
		tok, err := h.Sign(jwtx.NewAccessClaims("u", "", "", "", nil, "aurora", time.Minute, time.Now()))
		require.NoError(t, err)
		_, err = h.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})

	t.Run("tampered signature", func(t *testing.T) {
		other, err := jwtx.NewHS256([]byte(strings.Repeat("x", jwtx.MinSecretBytes)), "aurora")
		require.NoError(t, err)
		tok, err := other.Sign(jwtx.NewAccessClaims("u", "t", "", "", nil, "aurora", time.Minute, time.Now()))
		require.NoError(t, err)
		_, err = h.Verify(tok)
		require.Error(t, err)
	})
}
