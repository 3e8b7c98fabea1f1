// Package facade is the consumer-facing layer over state.Store. Mutations
// and single-invitation reads come back as sentinels (nil or false) with the
// detail left in the Store's error slot; list, stats, paging and filter
// calls return their errors unchanged.
package facade

import (
	"context"
	"sync"

	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
	"github.com/aussiebroadwan/aurora/internal/aurora/state"
)

// Options controls one-time activation.
type Options struct {
	// AutoLoad loads the first page on Activate.
	AutoLoad bool

	// AutoLoadStats loads the stats on Activate.
	AutoLoadStats bool

	// InitialFilter, when set, replaces the Store filter on Activate.
	InitialFilter *domain.Filter

	// PageSize is applied on Activate when it differs from the Store's.
	// Defaults to domain.DefaultPageSize.
	PageSize int
}

// Facade is the consumer-facing entry point over one state.Store.
type Facade struct {
	store *state.Store
	opts  Options

	once        sync.Once
	activateErr error
}

// New wraps store. Nothing is loaded until Activate.
func New(store *state.Store, opts Options) *Facade {
	if opts.PageSize <= 0 {
		opts.PageSize = domain.DefaultPageSize
	}
	return &Facade{store: store, opts: opts}
}

// Store exposes the underlying Store for snapshot and subscription access.
func (f *Facade) Store() *state.Store { return f.store }

// Activate applies the initial filter and page size, then optionally loads
// the list and the stats, in that order. It runs once; later calls return
// the first call's result.
func (f *Facade) Activate(ctx context.Context) error {
	f.once.Do(func() {
		f.activateErr = f.activate(ctx)
	})
	return f.activateErr
}

func (f *Facade) activate(ctx context.Context) error {
	if f.opts.InitialFilter != nil {
		f.store.ReplaceFilter(*f.opts.InitialFilter)
	}
	if f.opts.PageSize != f.store.PageSize() {
		f.store.ReplacePageSize(f.opts.PageSize)
	}
	if f.opts.AutoLoad {
		if err := f.store.LoadList(ctx, true); err != nil {
			return err
		}
	}
	if f.opts.AutoLoadStats {
		if err := f.store.LoadStats(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Create returns the new invitation, or nil on failure.
func (f *Facade) Create(ctx context.Context, in domain.NewInvitation) *domain.Invitation {
	inv, err := f.store.Create(ctx, in)
	if err != nil {
		return nil
	}
	return inv
}

// Resend reports whether the invitation was sent again.
func (f *Facade) Resend(ctx context.Context, id string) bool {
	ok, err := f.store.Resend(ctx, id)
	return err == nil && ok
}

// Revoke reports whether the invitation was revoked.
func (f *Facade) Revoke(ctx context.Context, id string) bool {
	ok, err := f.store.Revoke(ctx, id)
	return err == nil && ok
}

// Accept returns the acceptance result, or nil on failure.
func (f *Facade) Accept(ctx context.Context, token string) *domain.AcceptResult {
	res, err := f.store.Accept(ctx, token)
	if err != nil {
		return nil
	}
	return res
}

// LoadInvitation selects and returns one invitation, or nil on failure.
func (f *Facade) LoadInvitation(ctx context.Context, id string) *domain.Invitation {
	inv, err := f.store.LoadOne(ctx, id)
	if err != nil {
		return nil
	}
	return inv
}

func (f *Facade) LoadInvitations(ctx context.Context, resetPage bool) error {
	return f.store.LoadList(ctx, resetPage)
}

func (f *Facade) LoadStats(ctx context.Context) error { return f.store.LoadStats(ctx) }
func (f *Facade) Refresh(ctx context.Context) error   { return f.store.Refresh(ctx) }

func (f *Facade) NextPage(ctx context.Context) error     { return f.store.NextPage(ctx) }
func (f *Facade) PreviousPage(ctx context.Context) error { return f.store.PreviousPage(ctx) }
func (f *Facade) GoToPage(ctx context.Context, n int) error {
	return f.store.GoToPage(ctx, n)
}

func (f *Facade) SetFilter(ctx context.Context, filter domain.Filter) error {
	return f.store.SetFilter(ctx, filter)
}

func (f *Facade) UpdateFilter(ctx context.Context, key domain.FilterKey, value string) error {
	return f.store.UpdateFilter(ctx, key, value)
}

func (f *Facade) ClearFilters(ctx context.Context) error { return f.store.ClearFilters(ctx) }

func (f *Facade) SetPageSize(ctx context.Context, n int) error {
	return f.store.SetPageSize(ctx, n)
}

// Snapshot returns the current Store state.
func (f *Facade) Snapshot() state.Snapshot { return f.store.Snapshot() }

// Subscribe forwards to the Store.
func (f *Facade) Subscribe(fn func(state.Snapshot)) (cancel func()) {
	return f.store.Subscribe(fn)
}

// Err returns the last failure message of any operation.
func (f *Facade) Err() string { return f.store.Err() }

// EffectiveStatus is the status inv should be shown with right now, by the
// Store clock.
func (f *Facade) EffectiveStatus(inv *domain.Invitation) domain.Status {
	return inv.EffectiveStatus(f.store.Now())
}
