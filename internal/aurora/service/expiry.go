package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/aurora/internal/aurora/cache"
	"github.com/aussiebroadwan/aurora/internal/aurora/store"
)

// ExpirySweeper periodically persists EXPIRED on pending invitations whose
// expiry has passed. Readers already see them as expired through
// EffectiveStatus; the sweep keeps stored status and stats in line.
type ExpirySweeper struct {
	Store    store.Store
	Cache    cache.StatsCache
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	started bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewExpirySweeper creates a sweeper. A non-positive interval defaults to
// one hour.
func NewExpirySweeper(s store.Store, logger *slog.Logger, interval time.Duration) *ExpirySweeper {
	if interval <= 0 {
		interval = time.Hour
	}

	return &ExpirySweeper{
		Store:    s,
		Cache:    cache.Nop{},
		Logger:   logger,
		Interval: interval,
		Now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs one sweep immediately and then one per interval until Stop.
func (s *ExpirySweeper) Start() {
	s.started = true
	go s.run()
	s.Logger.Info("expiry sweeper started", "interval", s.Interval)
}

// Stop blocks until any in-progress sweep has finished. It is a no-op on a
// sweeper that was never started.
func (s *ExpirySweeper) Stop() {
	if !s.started {
		return
	}
	s.started = false
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("expiry sweeper stopped")
}

func (s *ExpirySweeper) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep expires overdue pending invitations once and returns how many
// changed. Cached stats of every affected tenant are dropped.
func (s *ExpirySweeper) Sweep(ctx context.Context) int64 {
	expired, err := s.Store.Invitations().ExpirePending(ctx, s.Now().UTC())
	if err != nil {
		s.Logger.Error("failed to expire pending invitations", "error", err)
		return 0
	}

	var n int64
	for tenantID, count := range expired {
		n += count
		if s.Cache == nil {
			continue
		}
		if err := s.Cache.InvalidateStats(ctx, tenantID); err != nil {
			s.Logger.Warn("failed to invalidate stats cache",
				"tenant_id", tenantID, "error", err)
		}
	}

	if n > 0 {
		s.Logger.Info("expired pending invitations", "count", n)
	} else {
		s.Logger.Debug("no pending invitations to expire")
	}
	return n
}
