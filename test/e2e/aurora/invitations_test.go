package aurora_test

import (
	"fmt"
	"testing"

	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
	"github.com/aussiebroadwan/aurora/internal/aurora/facade"
	"github.com/stretchr/testify/require"
)

// TestFacadeLifecycle drives the facade against the containerised service:
// create, list, filter, page, resend, revoke.
func TestFacadeLifecycle(t *testing.T) {
	baseURL, cleanup := setupAuroraContainer(t)
	defer cleanup()

	ctx := t.Context()
	token := mintToken(t, "admin-1", "tenant-1", "Acme", adminPermissions...)
	f := newFacade(baseURL, token, facade.Options{AutoLoad: true, AutoLoadStats: true, PageSize: 2})

	require.NoError(t, f.Activate(ctx))
	snap := f.Snapshot()
	require.Empty(t, snap.Items)
	require.Equal(t, 0, snap.Stats.Total)

	var ids []string
	for i := range 3 {
		inv := f.Create(ctx, domain.NewInvitation{Email: fmt.Sprintf("user%d@example.com", i)})
		require.NotNil(t, inv, f.Err())
		ids = append(ids, inv.ID)
	}

	// Optimistic prepend, then a refresh from the server agrees on order
	snap = f.Snapshot()
	require.Equal(t, "user2@example.com", snap.Items[0].Email)
	require.Equal(t, 3, snap.Stats.Pending)

	require.NoError(t, f.LoadInvitations(ctx, true))
	snap = f.Snapshot()
	require.Len(t, snap.Items, 2)
	require.Equal(t, 2, snap.Pagination.Pages)
	require.Equal(t, "user2@example.com", snap.Items[0].Email)

	require.NoError(t, f.NextPage(ctx))
	snap = f.Snapshot()
	require.Equal(t, 2, snap.Pagination.Page)
	require.Len(t, snap.Items, 1)
	require.Equal(t, "user0@example.com", snap.Items[0].Email)

	// Already on the last page
	require.NoError(t, f.NextPage(ctx))
	require.Equal(t, 2, f.Snapshot().Pagination.Page)

	require.NoError(t, f.UpdateFilter(ctx, domain.FilterEmail, "user1"))
	snap = f.Snapshot()
	require.Len(t, snap.Items, 1)
	require.Equal(t, 1, snap.Pagination.Page)

	require.True(t, f.Resend(ctx, ids[1]), f.Err())

	require.True(t, f.Revoke(ctx, ids[1]), f.Err())
	snap = f.Snapshot()
	require.Equal(t, domain.StatusRevoked, snap.Items[0].Status)
	require.False(t, facade.CanRevoke(snap.Items[0].Status))

	require.False(t, f.Revoke(ctx, ids[1]))
	require.Equal(t, "Cannot revoke revoked invitation", f.Err())

	require.NoError(t, f.ClearFilters(ctx))
	require.NoError(t, f.LoadStats(ctx))
	stats := f.Snapshot().Stats
	require.Equal(t, 3, stats.Total)
	require.Equal(t, 2, stats.Pending)
	require.Equal(t, 1, stats.Revoked)
	require.Equal(t, 3, stats.SentToday)
}

// TestDuplicateAndMissing checks the error slot carries server messages.
func TestDuplicateAndMissing(t *testing.T) {
	baseURL, cleanup := setupAuroraContainer(t)
	defer cleanup()

	ctx := t.Context()
	token := mintToken(t, "admin-1", "tenant-1", "Acme", adminPermissions...)
	f := newFacade(baseURL, token, facade.Options{})

	require.NotNil(t, f.Create(ctx, domain.NewInvitation{Email: "dup@example.com"}))
	require.Nil(t, f.Create(ctx, domain.NewInvitation{Email: "dup@example.com"}))
	require.Equal(t, "Pending invitation already exists for dup@example.com", f.Err())

	require.Nil(t, f.LoadInvitation(ctx, "does-not-exist"))
	require.Equal(t, "Invitation not found", f.Err())

	require.Nil(t, f.Accept(ctx, "this-token-was-never-issued-by-the-service-x"))
	require.Equal(t, "Invalid invitation token", f.Err())
}

// TestTenantIsolation verifies one tenant cannot see another's invitations.
func TestTenantIsolation(t *testing.T) {
	baseURL, cleanup := setupAuroraContainer(t)
	defer cleanup()

	ctx := t.Context()
	acme := newFacade(baseURL, mintToken(t, "admin-1", "tenant-1", "Acme", adminPermissions...), facade.Options{})
	globex := newFacade(baseURL, mintToken(t, "admin-2", "tenant-2", "Globex", adminPermissions...), facade.Options{})

	inv := acme.Create(ctx, domain.NewInvitation{Email: "shared@example.com"})
	require.NotNil(t, inv)

	require.Nil(t, globex.LoadInvitation(ctx, inv.ID))
	require.NoError(t, globex.LoadInvitations(ctx, true))
	require.Empty(t, globex.Snapshot().Items)

	// Same email may be invited by another tenant
	require.NotNil(t, globex.Create(ctx, domain.NewInvitation{Email: "shared@example.com"}), globex.Err())
}

// TestPermissions verifies the view-only caller cannot mutate.
func TestPermissions(t *testing.T) {
	baseURL, cleanup := setupAuroraContainer(t)
	defer cleanup()

	ctx := t.Context()
	viewer := newFacade(baseURL, mintToken(t, "viewer", "tenant-1", "Acme", "aurora.invitations.view"), facade.Options{})

	require.NoError(t, viewer.LoadInvitations(ctx, true))
	require.Nil(t, viewer.Create(ctx, domain.NewInvitation{Email: "x@example.com"}))
	require.Contains(t, viewer.Err(), "aurora.invitations.create")
}
