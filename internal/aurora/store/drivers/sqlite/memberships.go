package sqlite

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
)

type membershipsRepo struct {
	q *queries
}

func (r *membershipsRepo) CreateMembership(ctx context.Context, m domain.Membership) error {
	err := r.q.CreateMembership(ctx, membershipRow{
		ID:           m.ID,
		TenantID:     m.TenantID,
		UserID:       m.UserID,
		InvitationID: m.InvitationID,
		ClientIDs:    joinIDs(m.ClientIDs),
		RoleGroupIDs: joinIDs(m.RoleGroupIDs),
		CreatedAt:    formatTime(m.CreatedAt),
	})
	return mapConstraint(err)
}

func (r *membershipsRepo) GetMembership(ctx context.Context, tenantID, userID string) (domain.Membership, error) {
	row, err := r.q.GetMembership(ctx, tenantID, userID)
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}

	createdAt, err := parseTime(row.CreatedAt)
	if err != nil {
		return domain.Membership{}, err
	}
	clientIDs, err := splitIDs(row.ClientIDs)
	if err != nil {
		return domain.Membership{}, fmt.Errorf("membership %s client_ids: %w", row.ID, err)
	}
	roleGroupIDs, err := splitIDs(row.RoleGroupIDs)
	if err != nil {
		return domain.Membership{}, fmt.Errorf("membership %s role_group_ids: %w", row.ID, err)
	}

	return domain.Membership{
		ID:           row.ID,
		TenantID:     row.TenantID,
		UserID:       row.UserID,
		InvitationID: row.InvitationID,
		ClientIDs:    clientIDs,
		RoleGroupIDs: roleGroupIDs,
		CreatedAt:    createdAt,
	}, nil
}
