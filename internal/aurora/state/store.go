// Package state holds the client-side invitation state and funnels every
// change to it through named actions against a remote Client.
package state

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
	"github.com/aussiebroadwan/aurora/pkg/slogx"
)

// Store is the single owner of invitation client state. It is safe for
// concurrent use. Network calls run outside the lock and subscribers are
// called outside the lock, in registration order. Snapshots are delivered
// one at a time and in Version order, whichever goroutine made the change.
type Store struct {
	client   Client
	log      *slog.Logger
	now      func() time.Time
	pageSize int

	mu   sync.Mutex
	snap Snapshot

	// listSeq numbers issued list requests, listApplied is the newest one
	// whose response made it into snap.
	listSeq     uint64
	listApplied uint64

	// pending holds snapshots not yet delivered to subscribers. Only the
	// goroutine that set delivering drains it.
	pending    []Snapshot
	delivering bool

	subMu  sync.Mutex
	subs   []*subscription
	nextID int
}

type subscription struct {
	id int
	fn func(Snapshot)
}

type Option func(*Store)

// WithLogger sets the logger used for discarded responses and best-effort
// failures. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithPageSize sets the initial page size. Non-positive values keep the
// default.
func WithPageSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// New builds an empty Store backed by client.
func New(client Client, opts ...Option) *Store {
	s := &Store{
		client:   client,
		log:      slogx.Discard(),
		now:      time.Now,
		pageSize: domain.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.snap = s.initial()
	return s
}

func (s *Store) initial() Snapshot {
	return Snapshot{
		Pagination: domain.Pagination{Page: 1, PageSize: s.pageSize},
		Busy:       make(map[Kind]int, len(Kinds)),
	}
}

// Now returns the Store clock's current time.
func (s *Store) Now() time.Time { return s.now() }

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.clone()
}

// Version returns the change counter. It increases by one on every change.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Version
}

// Subscribe registers fn to receive a fresh snapshot after every change.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, &subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// update applies fn under the lock, bumps the version and queues the new
// snapshot for subscribers. If no other goroutine is delivering, the caller
// drains the queue once the lock is released. A change made from inside a
// subscriber is queued behind the snapshot being delivered.
func (s *Store) update(fn func(*Snapshot)) {
	s.mu.Lock()
	fn(&s.snap)
	s.snap.Version++
	s.pending = append(s.pending, s.snap.clone())
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true
	s.mu.Unlock()

	s.drain()
}

func (s *Store) drain() {
	done := false
	defer func() {
		if !done {
			// A subscriber panicked. Hand delivery back so later changes
			// are not stuck behind it.
			s.mu.Lock()
			s.delivering = false
			s.pending = nil
			s.mu.Unlock()
		}
	}()

	for {
		s.mu.Lock()
		batch := s.pending
		s.pending = nil
		if len(batch) == 0 {
			s.delivering = false
			s.mu.Unlock()
			done = true
			return
		}
		s.mu.Unlock()

		for _, snap := range batch {
			s.notify(snap)
		}
	}
}

func (s *Store) notify(snap Snapshot) {
	s.subMu.Lock()
	subs := make([]*subscription, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(snap)
	}
}

// begin marks kind busy and clears the error slot. The returned func
// releases the busy mark and must run on every exit path.
func (s *Store) begin(kind Kind) (end func()) {
	s.update(func(st *Snapshot) {
		st.Busy[kind]++
		st.Err = ""
	})
	return func() {
		s.update(func(st *Snapshot) {
			if st.Busy[kind] > 0 {
				st.Busy[kind]--
			}
		})
	}
}

// Reset restores every field to its default, including busy counters and
// the error slot. In-flight list responses issued before Reset are dropped.
func (s *Store) Reset() {
	s.update(func(st *Snapshot) {
		version := st.Version
		*st = s.initial()
		st.Version = version
		s.listApplied = s.listSeq
	})
}

// ReplaceFilter overwrites the filter without loading.
func (s *Store) ReplaceFilter(f domain.Filter) {
	s.update(func(st *Snapshot) { st.Filter = f.Clone() })
}

// ReplacePageSize overwrites the page size without loading. Non-positive
// sizes are ignored.
func (s *Store) ReplacePageSize(n int) {
	if n <= 0 {
		return
	}
	s.update(func(st *Snapshot) { st.Pagination.PageSize = n })
}

// PageSize returns the current page size.
func (s *Store) PageSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Pagination.PageSize
}

func (s *Store) ActiveFiltersCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Filter.ActiveCount()
}

func (s *Store) HasNextPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Pagination.HasNext()
}

func (s *Store) HasPreviousPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Pagination.HasPrevious()
}

// IsBusy reports whether any call of kind is outstanding.
func (s *Store) IsBusy(kind Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.IsBusy(kind)
}

// IsLoading reports whether any call of any kind is outstanding.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.snap.Busy {
		if n > 0 {
			return true
		}
	}
	return false
}

// Err returns the shared error message, or "".
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Err
}
