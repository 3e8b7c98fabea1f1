package invitesdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListInvitations returns one page of invitations matching q.
// Requires: aurora.invitations.view
func (s *Session) ListInvitations(ctx context.Context, q ListQuery) (*InvitationList, error) {
	path := "/v1/invitations"
	if enc := q.Values().Encode(); enc != "" {
		path += "?" + enc
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var list InvitationList
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}

	return &list, nil
}

// GetInvitation fetches a single invitation by ID.
// Requires: aurora.invitations.view
func (s *Session) GetInvitation(ctx context.Context, id string) (*Invitation, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, invitationPath(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var inv Invitation
	if err := decodeJSON(resp, &inv, http.StatusOK); err != nil {
		return nil, err
	}

	return &inv, nil
}

// GetStats returns the invitation counts for the caller's tenant.
// Requires: aurora.invitations.view
func (s *Session) GetStats(ctx context.Context) (*InvitationStats, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/invitations/stats", nil, nil)
	if err != nil {
		return nil, err
	}

	var stats InvitationStats
	if err := decodeJSON(resp, &stats, http.StatusOK); err != nil {
		return nil, err
	}

	return &stats, nil
}

// CreateInvitation creates a pending invitation and emails the invitee.
// Requires: aurora.invitations.create
func (s *Session) CreateInvitation(ctx context.Context, req CreateInvitationRequest) (*Invitation, error) {
	if s.client.ValidateRequests {
		if fields := req.Validate(); fields != nil {
			return nil, ValidationError(fields)
		}
	}

	resp, err := s.postJSON(ctx, "/v1/invitations", req)
	if err != nil {
		return nil, err
	}

	var inv Invitation
	if err := decodeJSON(resp, &inv, http.StatusCreated); err != nil {
		return nil, err
	}

	return &inv, nil
}

// ResendInvitation rotates the token of a pending invitation and re-sends
// the email. Success is false when the email could not be delivered.
// Requires: aurora.invitations.create
func (s *Session) ResendInvitation(ctx context.Context, id string) (*ActionResponse, error) {
	resp, err := s.postJSON(ctx, invitationPath(id)+"/resend", nil)
	if err != nil {
		return nil, err
	}

	var out ActionResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// RevokeInvitation revokes a pending invitation.
// Requires: aurora.invitations.revoke
func (s *Session) RevokeInvitation(ctx context.Context, id string) (*ActionResponse, error) {
	resp, err := s.postJSON(ctx, invitationPath(id)+"/revoke", nil)
	if err != nil {
		return nil, err
	}

	var out ActionResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// AcceptInvitation redeems an invitation token for the session's user.
// Requires: an authenticated user
func (s *Session) AcceptInvitation(ctx context.Context, token string) (*AcceptResponse, error) {
	req := AcceptInvitationRequest{Token: token}
	if s.client.ValidateRequests {
		if fields := req.Validate(); fields != nil {
			return nil, ValidationError(fields)
		}
	}

	resp, err := s.postJSON(ctx, "/v1/invitations/accept", req)
	if err != nil {
		return nil, err
	}

	var out AcceptResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

func invitationPath(id string) string {
	return "/v1/invitations/" + url.PathEscape(id)
}
