package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// KV 持久化键值存储。Feed 缓存与评论共用同一个 KV，通过 key 前缀区分命名空间。
// 不保证事务隔离：后写覆盖先写。
type KV interface {
	// Get 返回 key 对应的值；key 不存在时 ok 为 false 且 err 为 nil
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Options 选择并配置 KV 后端
type Options struct {
	Backend     string // redis / postgres / memory
	RedisAddr   string
	PostgresDSN string
	MemorySize  int
}

// NewKV 按配置创建 KV 后端
func NewKV(opts Options) (KV, error) {
	switch opts.Backend {
	case "", "redis":
		return NewRedisKV(opts.RedisAddr), nil
	case "postgres":
		return NewPostgresKV(opts.PostgresDSN)
	case "memory":
		return NewMemoryKV(opts.MemorySize)
	default:
		return nil, fmt.Errorf("unknown cache backend: %q (valid: redis, postgres, memory)", opts.Backend)
	}
}

// RedisKV 基于 Redis 的 KV。写入不带过期时间：过期判断由 FeedCache 完成，
// 过期的条目在生成端失败时仍要作为兜底读出。
type RedisKV struct {
	Redis *redis.Client
}

func NewRedisKV(addr string) *RedisKV {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("warn: redis ping failed: %v", err)
	}

	return &RedisKV{Redis: rdb}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.Redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.Redis.Set(ctx, key, value, 0).Err()
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	return r.Redis.Del(ctx, key).Err()
}

func (r *RedisKV) Close() error {
	return r.Redis.Close()
}
