package storage

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/LJTian/PuntoPe/internal/model"
)

// FeedTTL 缓存有效期，固定 2 分钟
const FeedTTL = 2 * time.Minute

const defaultQueryKey = "default"

// FeedCache 按 (分类, 搜索词) 缓存 Feed。
// 过期条目在普通读取时会被删除，但生成端失败时可以忽略过期时间读出作为兜底。
type FeedCache struct {
	kv     KV
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

// NewFeedCache prefix 形如 "puntope_cache"；now 为 nil 时使用 time.Now
func NewFeedCache(kv KV, prefix string, now func() time.Time) *FeedCache {
	if now == nil {
		now = time.Now
	}
	return &FeedCache{kv: kv, prefix: prefix, ttl: FeedTTL, now: now}
}

// Key 生成缓存 key：<prefix>_<category>_<query|default>。搜索词去掉首尾并合并连续空白，大小写保留
func (c *FeedCache) Key(category model.Category, query string) string {
	q := NormalizeQuery(query)
	if q == "" {
		q = defaultQueryKey
	}
	return c.prefix + "_" + string(category) + "_" + q
}

func NormalizeQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

// Get 读取缓存。key 不存在、读取失败、内容无法解析（同时删除坏条目）或已过期（同时删除）时返回 false；
// ignoreExpiry 为 true 时不做过期判断
func (c *FeedCache) Get(ctx context.Context, key string, ignoreExpiry bool) (model.Feed, bool) {
	feed, fresh, ok := c.Lookup(ctx, key)
	if !ok {
		return model.Feed{}, false
	}
	if !ignoreExpiry && !fresh {
		c.remove(ctx, key)
		return model.Feed{}, false
	}
	return feed, true
}

// Lookup 读取一次缓存并报告是否仍在有效期内。过期条目原样保留，生成端失败时还要作为兜底读出；
// 内容无法解析的条目会被删除
func (c *FeedCache) Lookup(ctx context.Context, key string) (feed model.Feed, fresh bool, ok bool) {
	raw, found, err := c.kv.Get(ctx, key)
	if err != nil {
		log.Printf("warn: cache read %s: %v", key, err)
		return model.Feed{}, false, false
	}
	if !found {
		return model.Feed{}, false, false
	}

	var entry model.CacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		log.Printf("error: parsing cache %s: %v", key, err)
		c.remove(ctx, key)
		return model.Feed{}, false, false
	}

	age := c.now().Sub(time.UnixMilli(entry.Timestamp))
	return entry.Data, age <= c.ttl, true
}

// Put 写入缓存并覆盖旧值。返回写入错误，由调用方决定是否忽略
func (c *FeedCache) Put(ctx context.Context, key string, feed model.Feed) error {
	bs, err := json.Marshal(model.CacheEntry{
		Timestamp: c.now().UnixMilli(),
		Data:      feed,
	})
	if err != nil {
		return err
	}
	return c.kv.Set(ctx, key, string(bs))
}

func (c *FeedCache) remove(ctx context.Context, key string) {
	if err := c.kv.Delete(ctx, key); err != nil {
		log.Printf("warn: cache delete %s: %v", key, err)
	}
}
