package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisKV(t *testing.T) (*RedisKV, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	kv := &RedisKV{Redis: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { _ = kv.Close() })
	return kv, mr
}

func TestRedisKVRoundTrip(t *testing.T) {
	kv, mr := newTestRedisKV(t)
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("Get(missing) = ok:%v err:%v, want miss without error", ok, err)
	}

	if err := kv.Set(ctx, "puntope_cache_Portada_default", `{"timestamp":1}`); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	v, ok, err := kv.Get(ctx, "puntope_cache_Portada_default")
	if err != nil || !ok || v != `{"timestamp":1}` {
		t.Fatalf("Get = %q, %v, %v", v, ok, err)
	}

	// 写入不带 TTL，过期由 FeedCache 判断
	if ttl := mr.TTL("puntope_cache_Portada_default"); ttl != 0 {
		t.Fatalf("redis key should not expire, ttl=%v", ttl)
	}

	if err := kv.Delete(ctx, "puntope_cache_Portada_default"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if mr.Exists("puntope_cache_Portada_default") {
		t.Fatalf("key should be deleted")
	}
}

func TestRedisKVReportsConnectionError(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	kv := &RedisKV{Redis: redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})}
	defer kv.Close()
	mr.Close()

	if err := kv.Set(context.Background(), "k", "v"); err == nil {
		t.Fatalf("expected error when redis is down")
	}
	if _, ok, err := kv.Get(context.Background(), "k"); ok || err == nil {
		t.Fatalf("expected read error when redis is down, got ok=%v err=%v", ok, err)
	}
}

func TestMemoryKVEvictsLeastRecentlyUsed(t *testing.T) {
	kv, err := NewMemoryKV(2)
	if err != nil {
		t.Fatalf("NewMemoryKV error: %v", err)
	}
	ctx := context.Background()

	_ = kv.Set(ctx, "a", "1")
	_ = kv.Set(ctx, "b", "2")
	_, _, _ = kv.Get(ctx, "a")
	_ = kv.Set(ctx, "c", "3")

	if _, ok, _ := kv.Get(ctx, "b"); ok {
		t.Fatalf("b should have been evicted")
	}
	if _, ok, _ := kv.Get(ctx, "a"); !ok {
		t.Fatalf("a should survive eviction")
	}
	if kv.Len() != 2 {
		t.Fatalf("Len = %d, want 2", kv.Len())
	}
}

func TestNewKVUnknownBackend(t *testing.T) {
	if _, err := NewKV(Options{Backend: "sqlite"}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	kv, err := NewKV(Options{Backend: "memory"})
	if err != nil {
		t.Fatalf("NewKV(memory) error: %v", err)
	}
	if _, ok := kv.(*MemoryKV); !ok {
		t.Fatalf("NewKV(memory) = %T, want *MemoryKV", kv)
	}
}
