package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
	"github.com/aussiebroadwan/aurora/pkg/invitesdk"
)

// fail records err in the shared slot and returns it wrapped with op.
func (s *Store) fail(op string, err error) error {
	msg := invitesdk.Message(err)
	s.update(func(st *Snapshot) { st.Err = msg })
	return fmt.Errorf("%s: %w", op, err)
}

// LoadList fetches the current page for the current filter and replaces
// the list and pagination wholesale. resetPage queries page 1 instead of
// the current page. A response older than one already applied is dropped.
func (s *Store) LoadList(ctx context.Context, resetPage bool) error {
	s.mu.Lock()
	page := s.snap.Pagination.Page
	s.mu.Unlock()
	if resetPage {
		page = 1
	}
	return s.loadPage(ctx, page)
}

func (s *Store) loadPage(ctx context.Context, page int) error {
	end := s.begin(KindList)
	defer end()

	s.mu.Lock()
	s.listSeq++
	seq := s.listSeq
	q := listQuery(s.snap.Filter, page, s.snap.Pagination.PageSize)
	s.mu.Unlock()

	list, err := s.client.ListInvitations(ctx, q)
	if err != nil {
		return s.fail("load invitations", err)
	}

	items := make([]*domain.Invitation, len(list.Items))
	for i := range list.Items {
		items[i] = invitationFromWire(&list.Items[i])
	}

	applied := false
	s.update(func(st *Snapshot) {
		if seq <= s.listApplied {
			return
		}
		s.listApplied = seq
		applied = true

		st.Items = items
		st.Pagination = domain.Pagination{
			Page:     list.Page,
			PageSize: list.PageSize,
			Total:    list.Total,
			Pages:    list.Pages,
		}
		if st.Pagination.Page < 1 {
			st.Pagination.Page = 1
		}
		if st.Pagination.PageSize < 1 {
			st.Pagination.PageSize = q.PageSize
		}
	})
	if !applied {
		s.log.Debug("discarded stale list response", slog.Uint64("seq", seq))
	}

	return nil
}

// LoadOne fetches a single invitation and makes it the selection.
func (s *Store) LoadOne(ctx context.Context, id string) (*domain.Invitation, error) {
	end := s.begin(KindList)
	defer end()

	inv, err := s.client.GetInvitation(ctx, id)
	if err != nil {
		return nil, s.fail("load invitation", err)
	}

	selected := invitationFromWire(inv)
	s.update(func(st *Snapshot) { st.Selected = selected })
	return selected.Clone(), nil
}

// LoadStats replaces the stats snapshot.
func (s *Store) LoadStats(ctx context.Context) error {
	end := s.begin(KindStats)
	defer end()

	stats, err := s.client.GetStats(ctx)
	if err != nil {
		return s.fail("load stats", err)
	}

	snap := statsFromWire(stats)
	s.update(func(st *Snapshot) { st.Stats = snap })
	return nil
}

// Create creates a pending invitation and prepends it to the list without
// a reload, so it shows even when the active filter would exclude it. Stats
// are then refreshed best-effort: a failure there leaves the message in the
// error slot but the create stands.
func (s *Store) Create(ctx context.Context, in domain.NewInvitation) (*domain.Invitation, error) {
	created, err := s.create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.refreshStatsBestEffort(ctx, "create")
	return created.Clone(), nil
}

func (s *Store) create(ctx context.Context, in domain.NewInvitation) (*domain.Invitation, error) {
	end := s.begin(KindCreate)
	defer end()

	inv, err := s.client.CreateInvitation(ctx, createRequest(in))
	if err != nil {
		return nil, s.fail("create invitation", err)
	}

	created := invitationFromWire(inv)
	s.update(func(st *Snapshot) {
		st.Items = append([]*domain.Invitation{created.Clone()}, st.Items...)
		st.Pagination.Total++
	})
	return created, nil
}

// Resend asks the service to send the invitation again and returns the
// reported success. Nothing local changes.
func (s *Store) Resend(ctx context.Context, id string) (bool, error) {
	end := s.begin(KindResend)
	defer end()

	resp, err := s.client.ResendInvitation(ctx, id)
	if err != nil {
		return false, s.fail("resend invitation", err)
	}
	return resp.Success, nil
}

// Revoke revokes an invitation. On success the entity is looked up by ID in
// whatever list is current at that moment and marked REVOKED. If it is no
// longer listed nothing is patched.
func (s *Store) Revoke(ctx context.Context, id string) (bool, error) {
	ok, err := s.revoke(ctx, id)
	if err != nil || !ok {
		return ok, err
	}

	s.refreshStatsBestEffort(ctx, "revoke")
	return true, nil
}

func (s *Store) revoke(ctx context.Context, id string) (bool, error) {
	end := s.begin(KindRevoke)
	defer end()

	resp, err := s.client.RevokeInvitation(ctx, id)
	if err != nil {
		return false, s.fail("revoke invitation", err)
	}
	if !resp.Success {
		return false, nil
	}

	now := s.now()
	s.update(func(st *Snapshot) {
		for _, inv := range st.Items {
			if inv.ID == id {
				inv.MarkRevoked(now)
				break
			}
		}
		if st.Selected != nil && st.Selected.ID == id {
			st.Selected.MarkRevoked(now)
		}
	})
	return true, nil
}

// Accept redeems an invitation token. The list and selection are left
// alone since the accepting user usually cannot see them.
func (s *Store) Accept(ctx context.Context, token string) (*domain.AcceptResult, error) {
	end := s.begin(KindAccept)
	defer end()

	resp, err := s.client.AcceptInvitation(ctx, token)
	if err != nil {
		return nil, s.fail("accept invitation", err)
	}

	return &domain.AcceptResult{
		Success:    resp.Success,
		Message:    resp.Message,
		TenantID:   resp.TenantID,
		TenantName: resp.TenantName,
	}, nil
}

// Refresh reloads the current page and the stats concurrently, keeping
// filter and page.
func (s *Store) Refresh(ctx context.Context) error {
	var wg sync.WaitGroup
	var listErr, statsErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		listErr = s.LoadList(ctx, false)
	}()
	go func() {
		defer wg.Done()
		statsErr = s.LoadStats(ctx)
	}()
	wg.Wait()

	return errors.Join(listErr, statsErr)
}

func (s *Store) refreshStatsBestEffort(ctx context.Context, after string) {
	if err := s.LoadStats(ctx); err != nil {
		s.log.Warn("stats refresh failed",
			slog.String("after", after),
			slog.String("error", err.Error()),
		)
	}
}
