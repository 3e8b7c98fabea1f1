package invitesdk_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/aurora/pkg/invitesdk"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, h http.HandlerFunc) *invitesdk.Session {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return invitesdk.NewSDKClient(srv.URL + "/").NewSession("test-token")
}

func TestListInvitations(t *testing.T) {
	t.Parallel()

	after := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	session := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/invitations", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.NotEmpty(t, r.Header.Get(invitesdk.RequestIDHeader))

		q := r.URL.Query()
		require.Equal(t, "PENDING", q.Get("status"))
		require.Equal(t, "2025-01-02T03:04:05Z", q.Get("created_after"))
		require.Equal(t, "2", q.Get("page"))
		require.Equal(t, "25", q.Get("page_size"))
		require.False(t, q.Has("email"), "empty fields must be omitted")

		_ = json.NewEncoder(w).Encode(invitesdk.InvitationList{
			Items:    []invitesdk.Invitation{{ID: "a", Status: "PENDING"}},
			Total:    26,
			Page:     2,
			PageSize: 25,
			Pages:    2,
		})
	})

	list, err := session.ListInvitations(t.Context(), invitesdk.ListQuery{
		Status:       "PENDING",
		CreatedAfter: &after,
		Page:         2,
		PageSize:     25,
	})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	require.Equal(t, 2, list.Pages)
}

func TestCreateInvitation(t *testing.T) {
	t.Parallel()

	t.Run("sends body and expects 201", func(t *testing.T) {
		session := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var req invitesdk.CreateInvitationRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "new@example.com", req.Email)

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(invitesdk.Invitation{ID: "inv-1", Email: req.Email, Status: "PENDING"})
		})

		inv, err := session.CreateInvitation(t.Context(), invitesdk.CreateInvitationRequest{Email: "new@example.com"})
		require.NoError(t, err)
		require.Equal(t, "inv-1", inv.ID)
	})

	t.Run("invalid request never reaches the server", func(t *testing.T) {
		var calls atomic.Int32
		session := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		})

		_, err := session.CreateInvitation(t.Context(), invitesdk.CreateInvitationRequest{Email: "not-an-email"})
		var apiErr *invitesdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, invitesdk.ErrorCodeValidation, apiErr.Code)
		require.Contains(t, apiErr.Fields, "email")
		require.Zero(t, calls.Load())
	})
}

func TestErrorParsing(t *testing.T) {
	t.Parallel()

	t.Run("service error body", func(t *testing.T) {
		session := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			invitesdk.NewAPIError(http.StatusBadRequest, invitesdk.ErrorCodeInvalidState,
				"Cannot revoke ACCEPTED invitation").WriteError(w)
		})

		_, err := session.RevokeInvitation(t.Context(), "inv-1")
		var apiErr *invitesdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		require.Equal(t, invitesdk.ErrorCodeInvalidState, apiErr.Code)
		require.Equal(t, "Cannot revoke ACCEPTED invitation", invitesdk.Message(err))
	})

	t.Run("detail body", func(t *testing.T) {
		session := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Invitation not found"}`))
		})

		_, err := session.GetInvitation(t.Context(), "missing")
		require.True(t, invitesdk.IsNotFound(err))
		require.Equal(t, "Invitation not found", invitesdk.Message(err))
	})

	t.Run("opaque body", func(t *testing.T) {
		session := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := session.GetStats(t.Context())
		var apiErr *invitesdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, invitesdk.ErrorCodeServerError, apiErr.Code)
		require.Equal(t, "HTTP 502: Bad Gateway", apiErr.Description)
	})
}

func TestSessionToken(t *testing.T) {
	t.Parallel()

	var seen atomic.Value
	session := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		seen.Store(r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(invitesdk.ActionResponse{Success: true, Message: "Invitation email resent"})
	})

	session.SetToken("rotated")
	out, err := session.ResendInvitation(t.Context(), "inv-1")
	require.NoError(t, err)
	require.True(t, out.Success)
	require.Equal(t, "Bearer rotated", seen.Load())

	session.SetToken("")
	_, err = session.ResendInvitation(t.Context(), "inv-1")
	require.True(t, errors.Is(err, invitesdk.ErrNoToken))
}

func TestAcceptInvitationValidatesToken(t *testing.T) {
	t.Parallel()

	session := invitesdk.NewSDKClient("http://127.0.0.1:0").NewSession("t")
	_, err := session.AcceptInvitation(t.Context(), "short")

	var apiErr *invitesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "too short (min 32)", apiErr.Fields["token"])
}
