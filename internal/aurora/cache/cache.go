// Package cache provides the per-tenant stats snapshot cache.
package cache

import (
	"context"
	"time"

	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
)

// DefaultStatsTTL bounds how stale a cached snapshot can be when an
// invalidation is missed.
const DefaultStatsTTL = 30 * time.Second

// StatsCache caches invitation stats per tenant.
type StatsCache interface {
	// GetStats returns the cached stats and whether there was a hit.
	GetStats(ctx context.Context, tenantID string) (domain.Stats, bool, error)
	SetStats(ctx context.Context, tenantID string, stats domain.Stats) error
	InvalidateStats(ctx context.Context, tenantID string) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Name is reported by the readiness probe.
	Name() string
}

// Nop is the StatsCache used when no cache is configured. It never hits.
type Nop struct{}

func (Nop) GetStats(context.Context, string) (domain.Stats, bool, error) {
	return domain.Stats{}, false, nil
}
func (Nop) SetStats(context.Context, string, domain.Stats) error { return nil }
func (Nop) InvalidateStats(context.Context, string) error        { return nil }
func (Nop) Ping(context.Context) error                           { return nil }
func (Nop) Name() string                                         { return "disabled" }
