package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestMemoryLimiterWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(3, time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if ok, _ := l.Allow(ctx, "a"); !ok {
			t.Fatalf("hit %d should pass", i+1)
		}
	}
	if ok, _ := l.Allow(ctx, "a"); ok {
		t.Fatalf("4th hit should be limited")
	}
	if ok, _ := l.Allow(ctx, "b"); !ok {
		t.Fatalf("other keys are independent")
	}

	now = now.Add(59 * time.Second)
	if ok, _ := l.Allow(ctx, "a"); ok {
		t.Fatalf("window has not expired yet")
	}

	now = now.Add(time.Second)
	if ok, _ := l.Allow(ctx, "a"); !ok {
		t.Fatalf("expired window should be replaced")
	}
	if got := l.entries["a"].count; got != 1 {
		t.Fatalf("expected fresh count 1, got %d", got)
	}
}

func TestMemoryLimiterBounded(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(3, time.Minute)
	l.maxKeys = 2
	l.now = func() time.Time { return now }
	ctx := context.Background()

	_, _ = l.Allow(ctx, "first")
	now = now.Add(time.Second)
	_, _ = l.Allow(ctx, "second")
	now = now.Add(time.Second)
	_, _ = l.Allow(ctx, "third")

	if l.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", l.Len())
	}
	if _, ok := l.entries["first"]; ok {
		t.Fatalf("oldest entry should have been evicted")
	}

	now = now.Add(2 * time.Minute)
	_, _ = l.Allow(ctx, "fourth")
	if l.Len() != 1 {
		t.Fatalf("expired entries should be swept, got %d", l.Len())
	}
}

func TestRedisLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	l := NewRedisLimiter(client, "leads:", 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "fp")
		if err != nil || !ok {
			t.Fatalf("hit %d: ok=%v err=%v", i+1, ok, err)
		}
	}
	if ok, _ := l.Allow(ctx, "fp"); ok {
		t.Fatalf("4th hit should be limited")
	}
	if ttl := mr.TTL("leads:fp"); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}

	mr.FastForward(61 * time.Second)
	if ok, err := l.Allow(ctx, "fp"); err != nil || !ok {
		t.Fatalf("expected a new window, ok=%v err=%v", ok, err)
	}
}

func TestRedisLimiterUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	l := NewRedisLimiter(client, "leads:", 3, time.Minute)
	if _, err := l.Allow(context.Background(), "fp"); err == nil {
		t.Fatalf("expected an error when redis is down")
	}
}
