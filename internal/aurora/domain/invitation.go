package domain

import (
	"fmt"
	"slices"
	"time"
)

type Invitation struct {
	ID           string
	Email        string
	Name         string // optional display name
	TenantID     string
	ClientIDs    []string // clients assigned on acceptance
	RoleGroupIDs []string // role groups assigned on acceptance
	Status       Status
	InvitedBy    string
	Message      string // optional note included in the email
	CreatedAt    time.Time
	ExpiresAt    time.Time
	AcceptedAt   *time.Time
	RevokedAt    *time.Time
	RevokedBy    string // empty until the server records it
}

// NewInvitation carries the caller-supplied fields of a new invitation.
type NewInvitation struct {
	Email        string
	Name         string
	ClientIDs    []string
	RoleGroupIDs []string
	Message      string
}

// AcceptResult is the outcome of redeeming an invitation token.
type AcceptResult struct {
	Success    bool
	Message    string
	TenantID   string
	TenantName string
}

// IsExpired reports whether the invitation is past its expiry at now.
func (i *Invitation) IsExpired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// EffectiveStatus is the status readers should display. A PENDING invitation
// past its expiry reads as EXPIRED even before the sweep persists it.
func (i *Invitation) EffectiveStatus(now time.Time) Status {
	if i.Status == StatusPending && i.IsExpired(now) {
		return StatusExpired
	}
	return i.Status
}

// Accept moves a pending invitation to ACCEPTED. A pending invitation that
// is already past expiry is moved to EXPIRED instead and ErrExpired is
// returned, so callers must persist the entity in both cases.
func (i *Invitation) Accept(now time.Time) error {
	if i.Status != StatusPending {
		return fmt.Errorf("%w: invitation is %s", ErrInvalidTransition, i.Status)
	}
	if i.IsExpired(now) {
		i.Status = StatusExpired
		return ErrExpired
	}

	i.Status = StatusAccepted
	i.AcceptedAt = &now
	return nil
}

// Revoke moves a pending invitation to REVOKED on behalf of by.
func (i *Invitation) Revoke(by string, now time.Time) error {
	if !i.Status.CanTransition(StatusRevoked) {
		return fmt.Errorf("%w: cannot revoke %s invitation", ErrInvalidTransition, i.Status)
	}
	i.Status = StatusRevoked
	i.RevokedAt = &now
	i.RevokedBy = by
	return nil
}

// Expire moves a pending invitation to EXPIRED.
func (i *Invitation) Expire() error {
	if !i.Status.CanTransition(StatusExpired) {
		return fmt.Errorf("%w: cannot expire %s invitation", ErrInvalidTransition, i.Status)
	}
	i.Status = StatusExpired
	return nil
}

// MarkRevoked mirrors a server-confirmed revoke locally. The revoker is left
// unset until the entity is reloaded.
func (i *Invitation) MarkRevoked(now time.Time) {
	i.Status = StatusRevoked
	i.RevokedAt = &now
}

// Clone returns a deep copy of i.
func (i *Invitation) Clone() *Invitation {
	if i == nil {
		return nil
	}
	c := *i
	c.ClientIDs = slices.Clone(i.ClientIDs)
	c.RoleGroupIDs = slices.Clone(i.RoleGroupIDs)
	if i.AcceptedAt != nil {
		t := *i.AcceptedAt
		c.AcceptedAt = &t
	}
	if i.RevokedAt != nil {
		t := *i.RevokedAt
		c.RevokedAt = &t
	}
	return &c
}
