package state

import (
	"context"

	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
	"github.com/aussiebroadwan/aurora/pkg/invitesdk"
)

// Client is the remote invitation service as the Store sees it.
// *invitesdk.Session satisfies it.
type Client interface {
	ListInvitations(ctx context.Context, q invitesdk.ListQuery) (*invitesdk.InvitationList, error)
	GetInvitation(ctx context.Context, id string) (*invitesdk.Invitation, error)
	GetStats(ctx context.Context) (*invitesdk.InvitationStats, error)
	CreateInvitation(ctx context.Context, req invitesdk.CreateInvitationRequest) (*invitesdk.Invitation, error)
	ResendInvitation(ctx context.Context, id string) (*invitesdk.ActionResponse, error)
	RevokeInvitation(ctx context.Context, id string) (*invitesdk.ActionResponse, error)
	AcceptInvitation(ctx context.Context, token string) (*invitesdk.AcceptResponse, error)
}

var _ Client = (*invitesdk.Session)(nil)

func invitationFromWire(in *invitesdk.Invitation) *domain.Invitation {
	return &domain.Invitation{
		ID:           in.ID,
		Email:        in.Email,
		Name:         in.Name,
		TenantID:     in.TenantID,
		ClientIDs:    in.ClientIDs,
		RoleGroupIDs: in.RoleGroupIDs,
		Status:       domain.Status(in.Status),
		InvitedBy:    in.InvitedBy,
		Message:      in.Message,
		CreatedAt:    in.CreatedAt,
		ExpiresAt:    in.ExpiresAt,
		AcceptedAt:   in.AcceptedAt,
		RevokedAt:    in.RevokedAt,
		RevokedBy:    in.RevokedBy,
	}
}

func statsFromWire(in *invitesdk.InvitationStats) *domain.Stats {
	return &domain.Stats{
		Total:        in.Total,
		Pending:      in.Pending,
		Accepted:     in.Accepted,
		Expired:      in.Expired,
		Revoked:      in.Revoked,
		SentToday:    in.SentToday,
		SentThisWeek: in.SentThisWeek,
	}
}

func listQuery(f domain.Filter, page, pageSize int) invitesdk.ListQuery {
	return invitesdk.ListQuery{
		Status:        f.Status.String(),
		Email:         f.Email,
		InvitedBy:     f.InvitedBy,
		CreatedAfter:  f.CreatedAfter,
		CreatedBefore: f.CreatedBefore,
		Page:          page,
		PageSize:      pageSize,
	}
}

func createRequest(in domain.NewInvitation) invitesdk.CreateInvitationRequest {
	return invitesdk.CreateInvitationRequest{
		Email:        in.Email,
		Name:         in.Name,
		ClientIDs:    in.ClientIDs,
		RoleGroupIDs: in.RoleGroupIDs,
		Message:      in.Message,
	}
}
