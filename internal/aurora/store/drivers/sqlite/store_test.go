package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
	"github.com/aussiebroadwan/aurora/internal/aurora/store"
	"github.com/aussiebroadwan/aurora/internal/aurora/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func setupStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations(), "re-applying is a no-op")

	require.NoError(t, s.Tenants().UpsertTenant(context.Background(), domain.Tenant{
		ID: "tenant-1", Name: "Acme", CreatedAt: base, UpdatedAt: base,
	}))
	return s
}

func pending(id, email string, createdAt time.Time) domain.Invitation {
	return domain.Invitation{
		ID:        id,
		Email:     email,
		TenantID:  "tenant-1",
		ClientIDs: []string{"c1", "c2"},
		Status:    domain.StatusPending,
		InvitedBy: "admin",
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(7 * 24 * time.Hour),
	}
}

func TestInvitationRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	inv := pending("inv-1", "a@example.com", base)
	inv.Message = "welcome"
	require.NoError(t, s.Invitations().CreateInvitation(ctx, inv, "hash-1"))

	got, err := s.Invitations().GetInvitation(ctx, "tenant-1", "inv-1")
	require.NoError(t, err)
	require.Equal(t, inv.Email, got.Email)
	require.Equal(t, []string{"c1", "c2"}, got.ClientIDs)
	require.Nil(t, got.RoleGroupIDs)
	require.Equal(t, "welcome", got.Message)
	require.True(t, got.CreatedAt.Equal(base))
	require.Nil(t, got.AcceptedAt)

	byHash, err := s.Invitations().GetInvitationByTokenHash(ctx, "hash-1")
	require.NoError(t, err)
	require.Equal(t, "inv-1", byHash.ID)

	_, err = s.Invitations().GetInvitation(ctx, "tenant-2", "inv-1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestIDListsKeepAwkwardValues(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	ids := []string{"client one", "tab\tseparated", `quote"d`, "a,b"}
	inv := pending("inv-1", "a@example.com", base)
	inv.ClientIDs = ids
	inv.RoleGroupIDs = []string{" padded "}
	require.NoError(t, s.Invitations().CreateInvitation(ctx, inv, "h1"))

	got, err := s.Invitations().GetInvitation(ctx, "tenant-1", "inv-1")
	require.NoError(t, err)
	require.Equal(t, ids, got.ClientIDs)
	require.Equal(t, []string{" padded "}, got.RoleGroupIDs)

	require.NoError(t, s.Memberships().CreateMembership(ctx, domain.Membership{
		ID: "m1", TenantID: "tenant-1", UserID: "user-1", InvitationID: "inv-1",
		ClientIDs: got.ClientIDs, RoleGroupIDs: got.RoleGroupIDs, CreatedAt: base,
	}))
	m, err := s.Memberships().GetMembership(ctx, "tenant-1", "user-1")
	require.NoError(t, err)
	require.Equal(t, ids, m.ClientIDs)
	require.Equal(t, []string{" padded "}, m.RoleGroupIDs)
}

func TestUniquePendingPerEmail(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	require.NoError(t, s.Invitations().CreateInvitation(ctx, pending("inv-1", "a@example.com", base), "h1"))
	err := s.Invitations().CreateInvitation(ctx, pending("inv-2", "a@example.com", base), "h2")
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	// Once the first is no longer pending a new one is allowed.
	inv, err := s.Invitations().GetInvitation(ctx, "tenant-1", "inv-1")
	require.NoError(t, err)
	require.NoError(t, inv.Revoke("admin", base.Add(time.Minute)))
	require.NoError(t, s.Invitations().UpdateInvitationState(ctx, inv))
	require.NoError(t, s.Invitations().CreateInvitation(ctx, pending("inv-2", "a@example.com", base), "h2"))

	revoked, err := s.Invitations().GetInvitation(ctx, "tenant-1", "inv-1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusRevoked, revoked.Status)
	require.Equal(t, "admin", revoked.RevokedBy)
	require.NotNil(t, revoked.RevokedAt)
}

func TestListInvitations(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	for i, email := range []string{"alice@acme.io", "bob@acme.io", "carol@other.io", "Dave_x@acme.io"} {
		inv := pending(string(rune('a'+i)), email, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, s.Invitations().CreateInvitation(ctx, inv, "h"+inv.ID))
	}

	items, total, err := s.Invitations().ListInvitations(ctx, store.ListParams{TenantID: "tenant-1", Limit: 2})
	require.NoError(t, err)
	require.Equal(t, 4, total)
	require.Equal(t, "d", items[0].ID, "newest first")
	require.Equal(t, "c", items[1].ID)

	items, total, err = s.Invitations().ListInvitations(ctx, store.ListParams{TenantID: "tenant-1", Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Equal(t, 4, total)
	require.Equal(t, "b", items[0].ID)

	_, total, err = s.Invitations().ListInvitations(ctx, store.ListParams{
		TenantID: "tenant-1", Filter: domain.Filter{Email: "ACME"}, Limit: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 3, total, "email filter is a case-insensitive substring")

	items, _, err = s.Invitations().ListInvitations(ctx, store.ListParams{
		TenantID: "tenant-1", Filter: domain.Filter{Email: "e_"}, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, items, 1, "underscore is matched literally")

	after := base.Add(90 * time.Minute)
	_, total, err = s.Invitations().ListInvitations(ctx, store.ListParams{
		TenantID: "tenant-1", Filter: domain.Filter{CreatedAfter: &after}, Limit: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 2, total)
}

func TestExpirePendingAndCounts(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	old := pending("old", "old@example.com", base.Add(-10*24*time.Hour))
	fresh := pending("fresh", "fresh@example.com", base)
	require.NoError(t, s.Invitations().CreateInvitation(ctx, old, "h-old"))
	require.NoError(t, s.Invitations().CreateInvitation(ctx, fresh, "h-fresh"))

	require.NoError(t, s.Tenants().UpsertTenant(ctx, domain.Tenant{
		ID: "tenant-2", Name: "Globex", CreatedAt: base, UpdatedAt: base,
	}))
	other := pending("other", "old@example.com", base.Add(-9*24*time.Hour))
	other.TenantID = "tenant-2"
	require.NoError(t, s.Invitations().CreateInvitation(ctx, other, "h-other"))

	expired, err := s.Invitations().ExpirePending(ctx, base)
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"tenant-1": 1, "tenant-2": 1}, expired)

	expired, err = s.Invitations().ExpirePending(ctx, base)
	require.NoError(t, err)
	require.Empty(t, expired)

	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	week := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	stats, err := s.Invitations().CountInvitations(ctx, "tenant-1", day, week)
	require.NoError(t, err)
	require.Equal(t, domain.Stats{Total: 2, Pending: 1, Expired: 1, SentToday: 1, SentThisWeek: 1}, stats)
}

func TestRotateToken(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	require.NoError(t, s.Invitations().CreateInvitation(ctx, pending("inv-1", "a@example.com", base), "h1"))

	require.NoError(t, s.Invitations().RotateToken(ctx, "inv-1", "h2", base.Add(48*time.Hour)))
	_, err := s.Invitations().GetInvitationByTokenHash(ctx, "h1")
	require.ErrorIs(t, err, store.ErrNotFound)

	got, err := s.Invitations().GetInvitationByTokenHash(ctx, "h2")
	require.NoError(t, err)
	require.True(t, got.ExpiresAt.Equal(base.Add(48*time.Hour)))

	require.ErrorIs(t, s.Invitations().RotateToken(ctx, "missing", "h3", base), store.ErrNotFound)
}

func TestMembershipsInTx(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	require.NoError(t, s.Invitations().CreateInvitation(ctx, pending("inv-1", "a@example.com", base), "h1"))

	m := domain.Membership{
		ID: "m1", TenantID: "tenant-1", UserID: "user-1", InvitationID: "inv-1",
		RoleGroupIDs: []string{"rg1"}, CreatedAt: base,
	}
	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Memberships().CreateMembership(ctx, m)
	}))

	got, err := s.Memberships().GetMembership(ctx, "tenant-1", "user-1")
	require.NoError(t, err)
	require.Equal(t, []string{"rg1"}, got.RoleGroupIDs)

	m.ID = "m2"
	err = s.Memberships().CreateMembership(ctx, m)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	tenant, err := s.Tenants().GetTenant(ctx, "tenant-1")
	require.NoError(t, err)
	require.Equal(t, "Acme", tenant.Name)

	// An empty name never clobbers a known one.
	require.NoError(t, s.Tenants().UpsertTenant(ctx, domain.Tenant{ID: "tenant-1", CreatedAt: base, UpdatedAt: base}))
	tenant, err = s.Tenants().GetTenant(ctx, "tenant-1")
	require.NoError(t, err)
	require.Equal(t, "Acme", tenant.Name)
}
