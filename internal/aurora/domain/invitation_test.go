package domain_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

func pending() *domain.Invitation {
	return &domain.Invitation{
		ID:        "inv-1",
		Email:     "a@example.com",
		Status:    domain.StatusPending,
		CreatedAt: now.Add(-time.Hour),
		ExpiresAt: now.Add(24 * time.Hour),
	}
}

func TestParseStatus(t *testing.T) {
	st, err := domain.ParseStatus("pending")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, st)

	_, err = domain.ParseStatus("ARCHIVED")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestStatusTransitions(t *testing.T) {
	for _, to := range []domain.Status{domain.StatusAccepted, domain.StatusExpired, domain.StatusRevoked} {
		require.True(t, domain.StatusPending.CanTransition(to), "PENDING -> %s", to)
	}

	// Terminal states have no outgoing edges at all.
	for _, from := range []domain.Status{domain.StatusAccepted, domain.StatusExpired, domain.StatusRevoked} {
		require.True(t, from.IsTerminal())
		for _, to := range domain.Statuses {
			require.False(t, from.CanTransition(to), "%s -> %s", from, to)
		}
	}

	require.False(t, domain.StatusPending.IsTerminal())
	require.True(t, domain.StatusPending.CanResend())
	require.False(t, domain.StatusRevoked.CanRevoke())
}

func TestEffectiveStatus(t *testing.T) {
	inv := pending()
	require.Equal(t, domain.StatusPending, inv.EffectiveStatus(now))
	require.Equal(t, domain.StatusExpired, inv.EffectiveStatus(inv.ExpiresAt))

	inv.Status = domain.StatusAccepted
	require.Equal(t, domain.StatusAccepted, inv.EffectiveStatus(inv.ExpiresAt.Add(time.Hour)))
}

func TestInvitationAccept(t *testing.T) {
	t.Run("pending becomes accepted", func(t *testing.T) {
		inv := pending()
		require.NoError(t, inv.Accept(now))
		require.Equal(t, domain.StatusAccepted, inv.Status)
		require.NotNil(t, inv.AcceptedAt)
		require.False(t, inv.AcceptedAt.Before(inv.CreatedAt))
	})

	t.Run("stale pending becomes expired", func(t *testing.T) {
		inv := pending()
		err := inv.Accept(inv.ExpiresAt.Add(time.Second))
		require.ErrorIs(t, err, domain.ErrExpired)
		require.Equal(t, domain.StatusExpired, inv.Status)
		require.Nil(t, inv.AcceptedAt)
	})

	t.Run("terminal rejected", func(t *testing.T) {
		inv := pending()
		inv.Status = domain.StatusRevoked
		require.ErrorIs(t, inv.Accept(now), domain.ErrInvalidTransition)
		require.Equal(t, domain.StatusRevoked, inv.Status)
	})
}

func TestInvitationRevoke(t *testing.T) {
	inv := pending()
	require.NoError(t, inv.Revoke("admin-1", now))
	require.Equal(t, domain.StatusRevoked, inv.Status)
	require.Equal(t, "admin-1", inv.RevokedBy)
	require.Equal(t, now, *inv.RevokedAt)

	require.ErrorIs(t, inv.Revoke("admin-1", now), domain.ErrInvalidTransition)
	require.ErrorIs(t, inv.Expire(), domain.ErrInvalidTransition)
}

func TestInvitationClone(t *testing.T) {
	inv := pending()
	inv.ClientIDs = []string{"c1"}
	inv.MarkRevoked(now)

	c := inv.Clone()
	c.ClientIDs[0] = "changed"
	*c.RevokedAt = now.Add(time.Hour)

	require.Equal(t, "c1", inv.ClientIDs[0])
	require.Equal(t, now, *inv.RevokedAt)
	require.Empty(t, c.RevokedBy)
}

func TestFilter(t *testing.T) {
	t.Run("active count and query", func(t *testing.T) {
		after := now.Add(-48 * time.Hour)
		f := domain.Filter{Status: domain.StatusPending, Email: "john", CreatedAfter: &after}
		require.Equal(t, 3, f.ActiveCount())

		q := f.Query()
		require.Equal(t, "PENDING", q.Get("status"))
		require.Equal(t, "john", q.Get("email"))
		require.Equal(t, "2025-03-10T10:00:00Z", q.Get("created_after"))
		require.False(t, q.Has("invited_by"))
		require.False(t, q.Has("created_before"))
	})

	t.Run("with patches one field", func(t *testing.T) {
		f, err := domain.Filter{}.With(domain.FilterStatus, "revoked")
		require.NoError(t, err)
		require.Equal(t, domain.StatusRevoked, f.Status)

		f, err = f.With(domain.FilterStatus, "")
		require.NoError(t, err)
		require.True(t, f.IsZero())
	})

	t.Run("with rejects bad input", func(t *testing.T) {
		_, err := domain.Filter{}.With("colour", "red")
		require.ErrorIs(t, err, domain.ErrInvalidFilter)

		_, err = domain.Filter{}.With(domain.FilterCreatedBefore, "yesterday")
		require.ErrorIs(t, err, domain.ErrInvalidFilter)
	})

	t.Run("parse round trips query", func(t *testing.T) {
		before := now
		f := domain.Filter{InvitedBy: "u1", CreatedBefore: &before}
		parsed, err := domain.ParseFilter(f.Query())
		require.NoError(t, err)
		require.True(t, f.Equal(parsed))

		_, err = domain.ParseFilter(url.Values{"status": {"nope"}})
		require.ErrorIs(t, err, domain.ErrInvalidFilter)
	})
}

func TestPagination(t *testing.T) {
	p := domain.Pagination{Page: 1, PageSize: 10, Total: 25, Pages: 3}
	require.True(t, p.HasNext())
	require.False(t, p.HasPrevious())
	require.True(t, p.InRange(3))
	require.False(t, p.InRange(0))
	require.False(t, p.InRange(4))

	require.Equal(t, 0, domain.PageCount(0, 50))
	require.Equal(t, 3, domain.PageCount(101, 50))
	require.Equal(t, 50, domain.ClampPageSize(0, 50, 100))
	require.Equal(t, 100, domain.ClampPageSize(500, 50, 100))
	require.Equal(t, 20, domain.Offset(3, 10))
}
