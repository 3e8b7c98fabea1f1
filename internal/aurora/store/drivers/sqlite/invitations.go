package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
	"github.com/aussiebroadwan/aurora/internal/aurora/store"
)

type invitationsRepo struct {
	q *queries
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation, tokenHash string) error {
	err := r.q.CreateInvitation(ctx, createInvitationParams{
		ID:           inv.ID,
		Email:        inv.Email,
		Name:         mapStringNull(inv.Name),
		TenantID:     inv.TenantID,
		ClientIDs:    joinIDs(inv.ClientIDs),
		RoleGroupIDs: joinIDs(inv.RoleGroupIDs),
		Status:       inv.Status.String(),
		InvitedBy:    inv.InvitedBy,
		TokenHash:    tokenHash,
		Message:      mapStringNull(inv.Message),
		CreatedAt:    formatTime(inv.CreatedAt),
		ExpiresAt:    formatTime(inv.ExpiresAt),
	})
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitation(ctx context.Context, tenantID, id string) (domain.Invitation, error) {
	row, err := r.q.GetInvitation(ctx, tenantID, id)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return mapInvitation(row)
}

func (r *invitationsRepo) GetInvitationByTokenHash(ctx context.Context, tokenHash string) (domain.Invitation, error) {
	row, err := r.q.GetInvitationByTokenHash(ctx, tokenHash)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return mapInvitation(row)
}

func (r *invitationsRepo) GetPendingByEmail(ctx context.Context, tenantID, email string) (domain.Invitation, error) {
	row, err := r.q.GetPendingByEmail(ctx, tenantID, email)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return mapInvitation(row)
}

func (r *invitationsRepo) ListInvitations(ctx context.Context, p store.ListParams) ([]domain.Invitation, int, error) {
	f := listFilter{
		TenantID:  p.TenantID,
		Status:    p.Filter.Status.String(),
		EmailLike: p.Filter.Email,
		InvitedBy: p.Filter.InvitedBy,
	}
	if p.Filter.CreatedAfter != nil {
		f.CreatedAfter = formatTime(*p.Filter.CreatedAfter)
	}
	if p.Filter.CreatedBefore != nil {
		f.CreatedBefore = formatTime(*p.Filter.CreatedBefore)
	}

	total, err := r.q.CountInvitationsWhere(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.q.ListInvitations(ctx, f, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.Invitation, 0, len(rows))
	for _, row := range rows {
		inv, err := mapInvitation(row)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, inv)
	}
	return out, total, nil
}

func (r *invitationsRepo) UpdateInvitationState(ctx context.Context, inv domain.Invitation) error {
	n, err := r.q.UpdateInvitationState(ctx, updateInvitationStateParams{
		ID:         inv.ID,
		Status:     inv.Status.String(),
		AcceptedAt: mapOptionalTime(inv.AcceptedAt),
		RevokedAt:  mapOptionalTime(inv.RevokedAt),
		RevokedBy:  mapStringNull(inv.RevokedBy),
	})
	if err != nil {
		return mapConstraint(err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *invitationsRepo) RotateToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error {
	n, err := r.q.RotateToken(ctx, id, tokenHash, formatTime(expiresAt))
	if err != nil {
		return mapConstraint(err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *invitationsRepo) ExpirePending(ctx context.Context, now time.Time) (map[string]int64, error) {
	return r.q.ExpirePending(ctx, formatTime(now))
}

func (r *invitationsRepo) CountInvitations(
	ctx context.Context,
	tenantID string,
	dayStart, weekStart time.Time,
) (domain.Stats, error) {
	c, err := r.q.CountInvitations(ctx, tenantID, formatTime(dayStart), formatTime(weekStart))
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.Stats{
		Total:        c.Total,
		Pending:      c.Pending,
		Accepted:     c.Accepted,
		Expired:      c.Expired,
		Revoked:      c.Revoked,
		SentToday:    c.SentToday,
		SentThisWeek: c.SentThisWeek,
	}, nil
}

func mapInvitation(row invitationRow) (domain.Invitation, error) {
	createdAt, err := parseTime(row.CreatedAt)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("invitation %s created_at: %w", row.ID, err)
	}
	expiresAt, err := parseTime(row.ExpiresAt)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("invitation %s expires_at: %w", row.ID, err)
	}
	acceptedAt, err := mapNullTimePtr(row.AcceptedAt)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("invitation %s accepted_at: %w", row.ID, err)
	}
	revokedAt, err := mapNullTimePtr(row.RevokedAt)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("invitation %s revoked_at: %w", row.ID, err)
	}
	clientIDs, err := splitIDs(row.ClientIDs)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("invitation %s client_ids: %w", row.ID, err)
	}
	roleGroupIDs, err := splitIDs(row.RoleGroupIDs)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("invitation %s role_group_ids: %w", row.ID, err)
	}

	return domain.Invitation{
		ID:           row.ID,
		Email:        row.Email,
		Name:         mapNullString(row.Name),
		TenantID:     row.TenantID,
		ClientIDs:    clientIDs,
		RoleGroupIDs: roleGroupIDs,
		Status:       domain.Status(row.Status),
		InvitedBy:    row.InvitedBy,
		Message:      mapNullString(row.Message),
		CreatedAt:    createdAt,
		ExpiresAt:    expiresAt,
		AcceptedAt:   acceptedAt,
		RevokedAt:    revokedAt,
		RevokedBy:    mapNullString(row.RevokedBy),
	}, nil
}
