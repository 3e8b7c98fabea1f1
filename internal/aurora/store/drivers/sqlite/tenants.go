package sqlite

import (
	"context"

	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
)

type tenantsRepo struct {
	q *queries
}

func (r *tenantsRepo) UpsertTenant(ctx context.Context, t domain.Tenant) error {
	return r.q.UpsertTenant(ctx, tenantRow{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: formatTime(t.CreatedAt),
		UpdatedAt: formatTime(t.UpdatedAt),
	})
}

func (r *tenantsRepo) GetTenant(ctx context.Context, id string) (domain.Tenant, error) {
	row, err := r.q.GetTenant(ctx, id)
	if err != nil {
		return domain.Tenant{}, mapNotFound(err)
	}

	createdAt, err := parseTime(row.CreatedAt)
	if err != nil {
		return domain.Tenant{}, err
	}
	updatedAt, err := parseTime(row.UpdatedAt)
	if err != nil {
		return domain.Tenant{}, err
	}

	return domain.Tenant{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
