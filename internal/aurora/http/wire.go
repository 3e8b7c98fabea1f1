package http

import (
	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
	"github.com/aussiebroadwan/aurora/pkg/invitesdk"
)

func invitationToWire(inv domain.Invitation) invitesdk.Invitation {
	return invitesdk.Invitation{
		ID:           inv.ID,
		Email:        inv.Email,
		Name:         inv.Name,
		TenantID:     inv.TenantID,
		ClientIDs:    inv.ClientIDs,
		RoleGroupIDs: inv.RoleGroupIDs,
		Message:      inv.Message,
		Status:       inv.Status.String(),
		InvitedBy:    inv.InvitedBy,
		CreatedAt:    inv.CreatedAt,
		ExpiresAt:    inv.ExpiresAt,
		AcceptedAt:   inv.AcceptedAt,
		RevokedAt:    inv.RevokedAt,
		RevokedBy:    inv.RevokedBy,
	}
}

func statsToWire(s domain.Stats) invitesdk.InvitationStats {
	return invitesdk.InvitationStats{
		Total:        s.Total,
		Pending:      s.Pending,
		Accepted:     s.Accepted,
		Expired:      s.Expired,
		Revoked:      s.Revoked,
		SentToday:    s.SentToday,
		SentThisWeek: s.SentThisWeek,
	}
}
