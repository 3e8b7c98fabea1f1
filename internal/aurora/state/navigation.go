package state

import (
	"context"

	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
)

// NextPage loads the following page. It is a no-op on the last page.
func (s *Store) NextPage(ctx context.Context) error {
	s.mu.Lock()
	p := s.snap.Pagination
	s.mu.Unlock()

	if !p.InRange(p.Page + 1) {
		return nil
	}
	return s.loadPage(ctx, p.Page+1)
}

// PreviousPage loads the preceding page. It is a no-op on page 1.
func (s *Store) PreviousPage(ctx context.Context) error {
	s.mu.Lock()
	p := s.snap.Pagination
	s.mu.Unlock()

	if !p.InRange(p.Page - 1) {
		return nil
	}
	return s.loadPage(ctx, p.Page-1)
}

// GoToPage loads page n. Pages outside [1, Pages] of the last successful
// load are ignored.
func (s *Store) GoToPage(ctx context.Context, n int) error {
	s.mu.Lock()
	p := s.snap.Pagination
	s.mu.Unlock()

	if !p.InRange(n) {
		return nil
	}
	return s.loadPage(ctx, n)
}

// SetFilter replaces the filter and reloads from page 1.
func (s *Store) SetFilter(ctx context.Context, f domain.Filter) error {
	s.ReplaceFilter(f)
	return s.LoadList(ctx, true)
}

// UpdateFilter sets one filter field and reloads from page 1. Setting a
// field to the value it already has does nothing. Unknown keys and
// malformed values return domain.ErrInvalidFilter with state untouched.
func (s *Store) UpdateFilter(ctx context.Context, key domain.FilterKey, value string) error {
	s.mu.Lock()
	cur := s.snap.Filter.Clone()
	s.mu.Unlock()

	next, err := cur.With(key, value)
	if err != nil {
		return err
	}
	if next.Equal(cur) {
		return nil
	}

	s.ReplaceFilter(next)
	return s.LoadList(ctx, true)
}

// ClearFilters empties the filter and reloads from page 1.
func (s *Store) ClearFilters(ctx context.Context) error {
	return s.SetFilter(ctx, domain.Filter{})
}

// SetPageSize changes the page size and reloads from page 1. Non-positive
// sizes are ignored.
func (s *Store) SetPageSize(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}
	s.ReplacePageSize(n)
	return s.LoadList(ctx, true)
}
