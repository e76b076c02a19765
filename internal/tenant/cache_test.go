package tenant

import (
	"context"
	"testing"
	"time"

	"taleschool_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	return NewRedisCache(client, time.Minute, logger.New("test")), srv
}

func TestRedisCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	school := School{ID: uuid.New(), Name: "ABC School", Slug: "abc", Active: true}
	cache.Set(ctx, "abc", school)

	got, ok := cache.Get(ctx, "abc")
	if !ok {
		t.Fatal("expected cache hit after set")
	}
	if got.ID != school.ID || got.Slug != school.Slug || !got.Active {
		t.Fatalf("cached school mismatch: %+v", got)
	}
}

func TestRedisCacheMissOnUnknownSlug(t *testing.T) {
	cache, _ := newTestCache(t)

	if _, ok := cache.Get(context.Background(), "ghost"); ok {
		t.Fatal("expected miss for unknown slug")
	}
}

func TestRedisCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "abc", School{ID: uuid.New(), Slug: "abc", Active: true})
	cache.Invalidate(ctx, "abc")

	if _, ok := cache.Get(ctx, "abc"); ok {
		t.Fatal("expected miss after invalidate")
	}
}

func TestRedisCacheExpires(t *testing.T) {
	cache, srv := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "abc", School{ID: uuid.New(), Slug: "abc", Active: true})
	srv.FastForward(2 * time.Minute)

	if _, ok := cache.Get(ctx, "abc"); ok {
		t.Fatal("expected miss after TTL expiry")
	}
}

func TestRedisCacheDownDegradesToMiss(t *testing.T) {
	cache, srv := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "abc", School{ID: uuid.New(), Slug: "abc", Active: true})
	srv.Close()

	if _, ok := cache.Get(ctx, "abc"); ok {
		t.Fatal("expected miss when redis is down")
	}
}
