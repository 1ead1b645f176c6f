package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	LeadWindow   = 60 * time.Second
	LeadMaxHits  = 3
	maxLimitKeys = 10000
)

// Limiter counts hits per key inside a fixed window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter keeps counters in process memory. Counts are lost on restart,
// and each instance of a multi-instance deployment limits independently.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*window
	limit   int
	window  time.Duration
	maxKeys int
	now     func() time.Time
}

func NewMemoryLimiter(limit int, win time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]*window),
		limit:   limit,
		window:  win,
		maxKeys: maxLimitKeys,
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.entries[key]
	if !ok || !now.Before(w.resetAt) {
		if !ok && len(l.entries) >= l.maxKeys {
			l.evict(now)
		}
		l.entries[key] = &window{count: 1, resetAt: now.Add(l.window)}
		return true, nil
	}
	if w.count >= l.limit {
		return false, nil
	}
	w.count++
	return true, nil
}

// evict drops expired windows, then the window closest to expiry if the table
// is still full.
func (l *MemoryLimiter) evict(now time.Time) {
	for k, w := range l.entries {
		if !now.Before(w.resetAt) {
			delete(l.entries, k)
		}
	}
	if len(l.entries) < l.maxKeys {
		return
	}
	var (
		oldestKey string
		oldestAt  time.Time
	)
	for k, w := range l.entries {
		if oldestKey == "" || w.resetAt.Before(oldestAt) {
			oldestKey, oldestAt = k, w.resetAt
		}
	}
	delete(l.entries, oldestKey)
}

func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// RedisLimiter shares counters between instances.
type RedisLimiter struct {
	client redis.Cmdable
	prefix string
	limit  int
	window time.Duration
}

func NewRedisLimiter(client redis.Cmdable, prefix string, limit int, win time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix, limit: limit, window: win}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.prefix + key
	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("ratelimit: %w", err)
	}
	// Only the first hit of a window sets the expiry, so the window is fixed.
	if n == 1 {
		if err := l.client.PExpire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("ratelimit: %w", err)
		}
		return true, nil
	}
	// A key left without a TTL by a failed PEXPIRE would block forever.
	if ttl, err := l.client.PTTL(ctx, k).Result(); err == nil && ttl == -1 {
		_ = l.client.PExpire(ctx, k, l.window).Err()
	}
	return n <= int64(l.limit), nil
}
