package domain

import "time"

// Tenant is the organisation an accepted invitation attaches a member to.
// Names are learned from the inviter's token claims.
type Tenant struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Membership records that a user joined a tenant through an invitation,
// along with the clients and role groups granted on acceptance.
type Membership struct {
	ID           string
	TenantID     string
	UserID       string
	InvitationID string
	ClientIDs    []string
	RoleGroupIDs []string
	CreatedAt    time.Time
}
