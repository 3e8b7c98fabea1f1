package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
	"github.com/redis/go-redis/v9"
)

// Redis is a StatsCache backed by a Redis server.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// cachedStats is the JSON form stored under a tenant's key.
type cachedStats struct {
	Total        int `json:"total"`
	Pending      int `json:"pending"`
	Accepted     int `json:"accepted"`
	Expired      int `json:"expired"`
	Revoked      int `json:"revoked"`
	SentToday    int `json:"sent_today"`
	SentThisWeek int `json:"sent_this_week"`
}

// NewRedis connects to the server at url (redis://[user:pass@]host:port/db)
// and verifies it answers a PING.
func NewRedis(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultStatsTTL
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Redis{client: client, ttl: ttl}, nil
}

func (r *Redis) Close() error { return r.client.Close() }

func (r *Redis) Name() string { return "redis" }

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) GetStats(ctx context.Context, tenantID string) (domain.Stats, bool, error) {
	data, err := r.client.Get(ctx, statsKey(tenantID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Stats{}, false, nil
		}
		return domain.Stats{}, false, err
	}

	var c cachedStats
	if err := json.Unmarshal(data, &c); err != nil {
		return domain.Stats{}, false, fmt.Errorf("failed to unmarshal stats: %w", err)
	}

	return domain.Stats{
		Total:        c.Total,
		Pending:      c.Pending,
		Accepted:     c.Accepted,
		Expired:      c.Expired,
		Revoked:      c.Revoked,
		SentToday:    c.SentToday,
		SentThisWeek: c.SentThisWeek,
	}, true, nil
}

func (r *Redis) SetStats(ctx context.Context, tenantID string, s domain.Stats) error {
	data, err := json.Marshal(cachedStats{
		Total:        s.Total,
		Pending:      s.Pending,
		Accepted:     s.Accepted,
		Expired:      s.Expired,
		Revoked:      s.Revoked,
		SentToday:    s.SentToday,
		SentThisWeek: s.SentThisWeek,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	return r.client.Set(ctx, statsKey(tenantID), data, r.ttl).Err()
}

func (r *Redis) InvalidateStats(ctx context.Context, tenantID string) error {
	return r.client.Del(ctx, statsKey(tenantID)).Err()
}

func statsKey(tenantID string) string {
	return fmt.Sprintf("aurora:stats:%s", tenantID)
}
