package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this.
// Sub-repositories hang off it so a Tx-scoped Store exposes exactly the same
// surface and transactions cannot be nested by accident.
type Store interface {
	Invitations() Invitations
	Tenants() Tenants
	Memberships() Memberships

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// ListParams selects one page of a tenant's invitations.
type ListParams struct {
	TenantID string
	Filter   domain.Filter
	Limit    int
	Offset   int
}

type Invitations interface {
	// CreateInvitation inserts inv with the fingerprint of its token. A
	// second PENDING row for the same tenant and email returns
	// ErrAlreadyExists.
	CreateInvitation(ctx context.Context, inv domain.Invitation, tokenHash string) error

	// GetInvitation returns an invitation scoped to its tenant.
	GetInvitation(ctx context.Context, tenantID, id string) (domain.Invitation, error)

	// GetInvitationByTokenHash looks up an invitation from any tenant.
	GetInvitationByTokenHash(ctx context.Context, tokenHash string) (domain.Invitation, error)

	// GetPendingByEmail returns the PENDING invitation for email, if any.
	GetPendingByEmail(ctx context.Context, tenantID, email string) (domain.Invitation, error)

	// ListInvitations returns one page ordered newest first plus the total
	// number of matching rows.
	ListInvitations(ctx context.Context, p ListParams) ([]domain.Invitation, int, error)

	// UpdateInvitationState persists status, accepted_at, revoked_at and
	// revoked_by.
	UpdateInvitationState(ctx context.Context, inv domain.Invitation) error

	// RotateToken replaces the token fingerprint and expiry.
	RotateToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error

	// ExpirePending marks every PENDING row with expires_at <= now as
	// EXPIRED and returns how many changed per tenant.
	ExpirePending(ctx context.Context, now time.Time) (map[string]int64, error)

	// CountInvitations returns the per-status counts of a tenant plus the
	// number created since dayStart and weekStart.
	CountInvitations(ctx context.Context, tenantID string, dayStart, weekStart time.Time) (domain.Stats, error)
}

type Tenants interface {
	// UpsertTenant inserts a tenant or refreshes its name.
	UpsertTenant(ctx context.Context, t domain.Tenant) error

	GetTenant(ctx context.Context, id string) (domain.Tenant, error)
}

type Memberships interface {
	// CreateMembership inserts m. An existing membership for the same user
	// and tenant returns ErrAlreadyExists.
	CreateMembership(ctx context.Context, m domain.Membership) error

	GetMembership(ctx context.Context, tenantID, userID string) (domain.Membership, error)
}
