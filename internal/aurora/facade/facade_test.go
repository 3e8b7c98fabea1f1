package facade_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
	"github.com/aussiebroadwan/aurora/internal/aurora/facade"
	"github.com/aussiebroadwan/aurora/internal/aurora/state"
	"github.com/aussiebroadwan/aurora/pkg/invitesdk"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockClient struct{ mock.Mock }

func (m *mockClient) ListInvitations(ctx context.Context, q invitesdk.ListQuery) (*invitesdk.InvitationList, error) {
	args := m.Called(ctx, q)
	list, _ := args.Get(0).(*invitesdk.InvitationList)
	return list, args.Error(1)
}

func (m *mockClient) GetInvitation(ctx context.Context, id string) (*invitesdk.Invitation, error) {
	args := m.Called(ctx, id)
	inv, _ := args.Get(0).(*invitesdk.Invitation)
	return inv, args.Error(1)
}

func (m *mockClient) GetStats(ctx context.Context) (*invitesdk.InvitationStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*invitesdk.InvitationStats)
	return stats, args.Error(1)
}

func (m *mockClient) CreateInvitation(ctx context.Context, req invitesdk.CreateInvitationRequest) (*invitesdk.Invitation, error) {
	args := m.Called(ctx, req)
	inv, _ := args.Get(0).(*invitesdk.Invitation)
	return inv, args.Error(1)
}

func (m *mockClient) ResendInvitation(ctx context.Context, id string) (*invitesdk.ActionResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*invitesdk.ActionResponse)
	return resp, args.Error(1)
}

func (m *mockClient) RevokeInvitation(ctx context.Context, id string) (*invitesdk.ActionResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*invitesdk.ActionResponse)
	return resp, args.Error(1)
}

func (m *mockClient) AcceptInvitation(ctx context.Context, token string) (*invitesdk.AcceptResponse, error) {
	args := m.Called(ctx, token)
	resp, _ := args.Get(0).(*invitesdk.AcceptResponse)
	return resp, args.Error(1)
}

var (
	ctx      = context.Background()
	fixedNow = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	errNet   = errors.New("connection reset by peer")
)

func newFacade(t *testing.T, opts facade.Options) (*facade.Facade, *mockClient) {
	t.Helper()
	m := &mockClient{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	s := state.New(m, state.WithClock(func() time.Time { return fixedNow }))
	return facade.New(s, opts), m
}

func TestActivateOrder(t *testing.T) {
	initial := domain.Filter{Status: domain.StatusPending, Email: "acme"}
	f, m := newFacade(t, facade.Options{
		AutoLoad:      true,
		AutoLoadStats: true,
		InitialFilter: &initial,
		PageSize:      20,
	})

	var order []string
	m.On("ListInvitations", mock.Anything, invitesdk.ListQuery{
		Status:   "PENDING",
		Email:    "acme",
		Page:     1,
		PageSize: 20,
	}).Run(func(mock.Arguments) { order = append(order, "list") }).
		Return(&invitesdk.InvitationList{Page: 1, PageSize: 20}, nil).Once()
	m.On("GetStats", mock.Anything).Run(func(mock.Arguments) { order = append(order, "stats") }).
		Return(&invitesdk.InvitationStats{Total: 3}, nil).Once()

	require.NoError(t, f.Activate(ctx))
	require.NoError(t, f.Activate(ctx), "second activation is a no-op")

	require.Equal(t, []string{"list", "stats"}, order)
	snap := f.Snapshot()
	require.Equal(t, initial, snap.Filter)
	require.Equal(t, 3, snap.Stats.Total)
}

func TestActivateWithoutAutoLoad(t *testing.T) {
	f, _ := newFacade(t, facade.Options{})

	v := f.Store().Version()
	require.NoError(t, f.Activate(ctx))
	require.Equal(t, v, f.Store().Version(), "default page size already matches")
	require.Equal(t, domain.DefaultPageSize, f.Store().PageSize())
}

func TestActivateReturnsLoadError(t *testing.T) {
	f, m := newFacade(t, facade.Options{AutoLoad: true, AutoLoadStats: true})
	m.On("ListInvitations", mock.Anything, mock.Anything).Return(nil, errNet).Once()

	require.ErrorIs(t, f.Activate(ctx), errNet)
	require.ErrorIs(t, f.Activate(ctx), errNet)
	m.AssertNotCalled(t, "GetStats", mock.Anything)
}

func TestSentinelWrappers(t *testing.T) {
	f, m := newFacade(t, facade.Options{})

	m.On("CreateInvitation", mock.Anything, mock.Anything).Return(nil, errNet).Once()
	m.On("ResendInvitation", mock.Anything, "a").Return(nil, errNet).Once()
	m.On("RevokeInvitation", mock.Anything, "a").Return(nil, errNet).Once()
	m.On("AcceptInvitation", mock.Anything, "tok123").Return(nil, invitesdk.ErrInvitationExpired).Once()
	m.On("GetInvitation", mock.Anything, "a").Return(nil, invitesdk.ErrInvitationNotFound).Once()

	require.Nil(t, f.Create(ctx, domain.NewInvitation{Email: "a@x.com"}))
	require.False(t, f.Resend(ctx, "a"))
	require.False(t, f.Revoke(ctx, "a"))
	require.Nil(t, f.Accept(ctx, "tok123"))
	require.Nil(t, f.LoadInvitation(ctx, "a"))

	require.Equal(t, "Invitation not found", f.Err())
}

func TestSentinelWrappersSuccess(t *testing.T) {
	f, m := newFacade(t, facade.Options{})

	created := invitesdk.Invitation{ID: "new", Email: "a@x.com", Status: "PENDING", ExpiresAt: fixedNow.Add(time.Hour)}
	m.On("CreateInvitation", mock.Anything, mock.Anything).Return(&created, nil).Once()
	m.On("GetStats", mock.Anything).Return(&invitesdk.InvitationStats{}, nil).Twice()
	m.On("ResendInvitation", mock.Anything, "new").Return(&invitesdk.ActionResponse{Success: true}, nil).Once()
	m.On("RevokeInvitation", mock.Anything, "new").Return(&invitesdk.ActionResponse{Success: true}, nil).Once()
	m.On("AcceptInvitation", mock.Anything, "tok").Return(&invitesdk.AcceptResponse{Success: true, TenantID: "t1"}, nil).Once()

	inv := f.Create(ctx, domain.NewInvitation{Email: "a@x.com"})
	require.NotNil(t, inv)
	require.True(t, f.Resend(ctx, "new"))
	require.True(t, f.Revoke(ctx, "new"))
	require.Equal(t, domain.StatusRevoked, f.Snapshot().Items[0].Status)

	res := f.Accept(ctx, "tok")
	require.NotNil(t, res)
	require.Equal(t, "t1", res.TenantID)
}

func TestPassThroughPropagates(t *testing.T) {
	f, m := newFacade(t, facade.Options{})
	m.On("ListInvitations", mock.Anything, mock.Anything).Return(nil, errNet)
	m.On("GetStats", mock.Anything).Return(nil, errNet)

	require.ErrorIs(t, f.LoadInvitations(ctx, true), errNet)
	require.ErrorIs(t, f.LoadStats(ctx), errNet)
	require.ErrorIs(t, f.Refresh(ctx), errNet)
	require.ErrorIs(t, f.SetFilter(ctx, domain.Filter{Email: "x"}), errNet)
	require.ErrorIs(t, f.UpdateFilter(ctx, domain.FilterEmail, "y"), errNet)
	require.ErrorIs(t, f.ClearFilters(ctx), errNet)
	require.ErrorIs(t, f.SetPageSize(ctx, 5), errNet)
	require.ErrorIs(t, f.UpdateFilter(ctx, "nope", "y"), domain.ErrInvalidFilter)

	// No successful load yet, so there are no pages to move to.
	require.NoError(t, f.NextPage(ctx))
	require.NoError(t, f.PreviousPage(ctx))
	require.NoError(t, f.GoToPage(ctx, 2))
}

func TestHelpers(t *testing.T) {
	cases := []struct {
		status     domain.Status
		actionable bool
		color      facade.Color
	}{
		{domain.StatusPending, true, facade.ColorWarning},
		{domain.StatusAccepted, false, facade.ColorSuccess},
		{domain.StatusExpired, false, facade.ColorMuted},
		{domain.StatusRevoked, false, facade.ColorError},
		{domain.Status("ARCHIVED"), false, facade.ColorDefault},
		{domain.Status(""), false, facade.ColorDefault},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			require.Equal(t, tc.actionable, facade.CanResend(tc.status))
			require.Equal(t, tc.actionable, facade.CanRevoke(tc.status))
			require.Equal(t, tc.color, facade.StatusColor(tc.status))
		})
	}
}

func TestEffectiveStatus(t *testing.T) {
	f, _ := newFacade(t, facade.Options{})

	stale := &domain.Invitation{Status: domain.StatusPending, ExpiresAt: fixedNow.Add(-time.Minute)}
	live := &domain.Invitation{Status: domain.StatusPending, ExpiresAt: fixedNow.Add(time.Minute)}

	require.Equal(t, domain.StatusExpired, f.EffectiveStatus(stale))
	require.Equal(t, domain.StatusPending, f.EffectiveStatus(live))
	require.Equal(t, domain.StatusPending, stale.Status, "the entity itself is not modified")
}
