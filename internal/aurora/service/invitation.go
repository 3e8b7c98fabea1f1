package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/aurora/internal/aurora/cache"
	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
	"github.com/aussiebroadwan/aurora/internal/aurora/store"
	"github.com/aussiebroadwan/aurora/pkg/cryptox"
	"github.com/aussiebroadwan/aurora/pkg/idx"
	"github.com/aussiebroadwan/aurora/pkg/slogx"
)

const DefaultInvitationExpiry = 7 * 24 * time.Hour

// Actor is the authenticated caller, taken from the access token.
type Actor struct {
	UserID     string
	TenantID   string
	TenantName string
}

// ListResult is one page of invitations plus the paging envelope.
type ListResult struct {
	Items      []domain.Invitation
	Pagination domain.Pagination
}

// AcceptResult is the outcome of a successful acceptance.
type AcceptResult struct {
	Invitation domain.Invitation
	Tenant     domain.Tenant
}

type InvitationService struct {
	Store    store.Store
	Cache    cache.StatsCache
	Notifier Notifier
	IDs      *idx.Generator

	Expiry          time.Duration
	TokenSize       int
	DefaultPageSize int
	MaxPageSize     int

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *InvitationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *InvitationService) expiry() time.Duration {
	if s.Expiry > 0 {
		return s.Expiry
	}
	return DefaultInvitationExpiry
}

func (s *InvitationService) tokenSize() int {
	if s.TokenSize > 0 {
		return s.TokenSize
	}
	return cryptox.InvitationTokenSize
}

func (s *InvitationService) newID(at time.Time) string {
	if s.IDs == nil {
		return idx.NewAt(at).String()
	}
	return s.IDs.NewAt(at).String()
}

// Create stores a new PENDING invitation for the actor's tenant and hands
// the raw token to the notifier. The token itself is only kept as a
// fingerprint.
func (s *InvitationService) Create(ctx context.Context, actor Actor, in domain.NewInvitation) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return domain.Invitation{}, withDetail(ErrInvalidRequest, "email is required")
	}

	// 1. Mint the token
	token, err := cryptox.GenerateToken(s.tokenSize())
	if err != nil {
		log.Error("failed to generate invitation token", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	now := s.now()
	inv := domain.Invitation{
		ID:           s.newID(now),
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		TenantID:     actor.TenantID,
		ClientIDs:    in.ClientIDs,
		RoleGroupIDs: in.RoleGroupIDs,
		Status:       domain.StatusPending,
		InvitedBy:    actor.UserID,
		Message:      in.Message,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.expiry()),
	}

	// 2. Record the tenant and insert, refusing a second pending invite
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Tenants().UpsertTenant(ctx, domain.Tenant{
			ID:        actor.TenantID,
			Name:      actor.TenantName,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return err
		}

		if _, err := tx.Invitations().GetPendingByEmail(ctx, actor.TenantID, email); err == nil {
			return withDetail(ErrPendingInvitationExists, "Pending invitation already exists for %s", email)
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err := tx.Invitations().CreateInvitation(ctx, inv, cryptox.FingerprintToken(token)); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return withDetail(ErrPendingInvitationExists, "Pending invitation already exists for %s", email)
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPendingInvitationExists) {
			log.Warn("duplicate pending invitation", slog.String("email", email))
		} else {
			log.Error("failed to create invitation", slog.Any("error", err))
		}
		return domain.Invitation{}, err
	}

	s.invalidateStats(ctx, actor.TenantID)

	// 3. Deliver, best-effort: the invitation exists either way
	if err := s.Notifier.SendInvitation(ctx, inv, token, actor.TenantName); err != nil {
		log.Warn("failed to send invitation", slog.String("invitation_id", inv.ID), slog.Any("error", err))
	}

	log.Info("invitation created",
		slog.String("invitation_id", inv.ID),
		slog.String("email", inv.Email),
		slog.Time("expires_at", inv.ExpiresAt),
	)
	return inv, nil
}

// Get returns one invitation of the tenant.
func (s *InvitationService) Get(ctx context.Context, tenantID, id string) (domain.Invitation, error) {
	inv, err := s.Store.Invitations().GetInvitation(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, withDetail(ErrInvitationNotFound, "Invitation not found")
		}
		slogx.FromContext(ctx).Error("failed to fetch invitation", slog.Any("error", err))
		return domain.Invitation{}, err
	}
	return inv, nil
}

// List returns one page of the tenant's invitations, newest first. The
// page size is clamped to MaxPageSize.
func (s *InvitationService) List(
	ctx context.Context,
	tenantID string,
	filter domain.Filter,
	page, pageSize int,
) (ListResult, error) {
	maxSize := s.MaxPageSize
	if maxSize <= 0 {
		maxSize = domain.MaxPageSize
	}
	defSize := s.DefaultPageSize
	if defSize <= 0 {
		defSize = domain.DefaultPageSize
	}

	pageSize = domain.ClampPageSize(pageSize, defSize, maxSize)
	if page < 1 {
		page = 1
	}

	items, total, err := s.Store.Invitations().ListInvitations(ctx, store.ListParams{
		TenantID: tenantID,
		Filter:   filter,
		Limit:    pageSize,
		Offset:   domain.Offset(page, pageSize),
	})
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list invitations", slog.Any("error", err))
		return ListResult{}, err
	}

	return ListResult{
		Items: items,
		Pagination: domain.Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
			Pages:    domain.PageCount(total, pageSize),
		},
	}, nil
}

// Stats returns the tenant's invitation counts, from cache when possible.
func (s *InvitationService) Stats(ctx context.Context, tenantID string) (domain.Stats, error) {
	log := slogx.FromContext(ctx)

	if stats, ok, err := s.Cache.GetStats(ctx, tenantID); err != nil {
		log.Warn("stats cache read failed", slog.Any("error", err))
	} else if ok {
		return stats, nil
	}

	now := s.now()
	stats, err := s.Store.Invitations().CountInvitations(ctx, tenantID, StartOfDay(now), StartOfWeek(now))
	if err != nil {
		log.Error("failed to count invitations", slog.Any("error", err))
		return domain.Stats{}, err
	}

	if err := s.Cache.SetStats(ctx, tenantID, stats); err != nil {
		log.Warn("stats cache write failed", slog.Any("error", err))
	}
	return stats, nil
}

// Resend rotates the token of a PENDING invitation, restarts its expiry
// and notifies again. sent reports whether the notification went out.
func (s *InvitationService) Resend(ctx context.Context, actor Actor, id string) (inv domain.Invitation, sent bool, err error) {
	log := slogx.FromContext(ctx)

	token, err := cryptox.GenerateToken(s.tokenSize())
	if err != nil {
		log.Error("failed to generate invitation token", slog.Any("error", err))
		return domain.Invitation{}, false, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		inv, err = tx.Invitations().GetInvitation(ctx, actor.TenantID, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return withDetail(ErrInvitationNotFound, "Invitation not found")
			}
			return err
		}

		if !inv.Status.CanResend() {
			return withDetail(ErrInvalidState, "Cannot resend %s invitation", strings.ToLower(inv.Status.String()))
		}

		inv.ExpiresAt = s.now().Add(s.expiry())
		return tx.Invitations().RotateToken(ctx, inv.ID, cryptox.FingerprintToken(token), inv.ExpiresAt)
	})
	if err != nil {
		log.Warn("failed to resend invitation", slog.String("invitation_id", id), slog.Any("error", err))
		return domain.Invitation{}, false, err
	}

	tenantName := actor.TenantName
	if tenantName == "" {
		tenantName = s.tenantName(ctx, actor.TenantID)
	}

	if err := s.Notifier.SendInvitation(ctx, inv, token, tenantName); err != nil {
		log.Warn("failed to send invitation", slog.String("invitation_id", inv.ID), slog.Any("error", err))
		return inv, false, nil
	}

	log.Info("invitation resent", slog.String("invitation_id", inv.ID))
	return inv, true, nil
}

// Revoke moves a PENDING invitation to REVOKED on behalf of the actor.
func (s *InvitationService) Revoke(ctx context.Context, actor Actor, id string) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	var inv domain.Invitation
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		inv, err = tx.Invitations().GetInvitation(ctx, actor.TenantID, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return withDetail(ErrInvitationNotFound, "Invitation not found")
			}
			return err
		}

		if err := inv.Revoke(actor.UserID, s.now()); err != nil {
			return withDetail(ErrInvalidState, "Cannot revoke %s invitation", strings.ToLower(inv.Status.String()))
		}
		return tx.Invitations().UpdateInvitationState(ctx, inv)
	})
	if err != nil {
		log.Warn("failed to revoke invitation", slog.String("invitation_id", id), slog.Any("error", err))
		return domain.Invitation{}, err
	}

	s.invalidateStats(ctx, actor.TenantID)

	log.Info("invitation revoked", slog.String("invitation_id", inv.ID))
	return inv, nil
}

// Accept redeems a raw token for userID. An invitation found past its
// expiry is persisted as EXPIRED before the error is returned.
func (s *InvitationService) Accept(ctx context.Context, userID, token string) (AcceptResult, error) {
	log := slogx.FromContext(ctx)

	var (
		res     AcceptResult
		expired bool
	)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		inv, err := tx.Invitations().GetInvitationByTokenHash(ctx, cryptox.FingerprintToken(token))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return withDetail(ErrInvalidToken, "Invalid invitation token")
			}
			return err
		}

		// 1. Transition, persisting EXPIRED when that is the outcome
		now := s.now()
		if err := inv.Accept(now); err != nil {
			if errors.Is(err, domain.ErrExpired) {
				expired = true
				res.Invitation = inv
				return tx.Invitations().UpdateInvitationState(ctx, inv)
			}
			return withDetail(ErrInvalidState, "Invitation is %s", strings.ToLower(inv.Status.String()))
		}
		if err := tx.Invitations().UpdateInvitationState(ctx, inv); err != nil {
			return err
		}

		// 2. Join the tenant
		err = tx.Memberships().CreateMembership(ctx, domain.Membership{
			ID:           s.newID(now),
			TenantID:     inv.TenantID,
			UserID:       userID,
			InvitationID: inv.ID,
			ClientIDs:    inv.ClientIDs,
			RoleGroupIDs: inv.RoleGroupIDs,
			CreatedAt:    now,
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Info("user already a member of tenant",
				slog.String("user_id", userID),
				slog.String("tenant_id", inv.TenantID),
			)
		} else if err != nil {
			return err
		}

		// 3. Resolve the tenant name for the response
		tenant, err := tx.Tenants().GetTenant(ctx, inv.TenantID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if errors.Is(err, store.ErrNotFound) {
			tenant = domain.Tenant{ID: inv.TenantID}
		}

		res = AcceptResult{Invitation: inv, Tenant: tenant}
		return nil
	})
	if err != nil {
		log.Warn("failed to accept invitation", slog.Any("error", err))
		return AcceptResult{}, err
	}

	s.invalidateStats(ctx, res.Invitation.TenantID)

	if expired {
		log.Info("invitation expired on accept", slog.String("invitation_id", res.Invitation.ID))
		return AcceptResult{}, withDetail(ErrInvitationExpired, "Invitation has expired")
	}

	log.Info("invitation accepted",
		slog.String("invitation_id", res.Invitation.ID),
		slog.String("user_id", userID),
	)
	return res, nil
}

func (s *InvitationService) tenantName(ctx context.Context, tenantID string) string {
	t, err := s.Store.Tenants().GetTenant(ctx, tenantID)
	if err != nil {
		return ""
	}
	return t.Name
}

func (s *InvitationService) invalidateStats(ctx context.Context, tenantID string) {
	if err := s.Cache.InvalidateStats(ctx, tenantID); err != nil {
		slogx.FromContext(ctx).Warn("stats cache invalidation failed",
			slog.String("tenant_id", tenantID),
			slog.Any("error", err),
		)
	}
}

// StartOfDay is UTC midnight of t's day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StartOfWeek is UTC midnight of the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	back := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -back)
}
