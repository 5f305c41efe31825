package newsfeed

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/LJTian/PuntoPe/internal/collector"
	"github.com/LJTian/PuntoPe/internal/model"
	"github.com/LJTian/PuntoPe/internal/processor"
	"github.com/LJTian/PuntoPe/internal/storage"
	"github.com/samber/lo"
)

// ErrRefreshInProgress 同一分类已有刷新在进行
var ErrRefreshInProgress = errors.New("category refresh already in progress")

// Service 获取新闻的主流程：缓存 -> 生成端 -> 解析补全 -> 写缓存，失败时依次退回旧缓存与占位数据。
// 相同 key 的并发请求不做合并，可能各自调用一次生成端。
type Service struct {
	cache     *storage.FeedCache
	generator collector.Generator // nil 表示没有配置 API Key
	mock      *collector.MockSynthesizer
	now       func() time.Time

	mu         sync.Mutex
	refreshing []model.Category
}

func NewService(cache *storage.FeedCache, generator collector.Generator, mock *collector.MockSynthesizer, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	if mock == nil {
		mock = collector.NewMockSynthesizer(now)
	}
	return &Service{
		cache:     cache,
		generator: generator,
		mock:      mock,
		now:       now,
	}
}

// FetchFeed 返回分类（或搜索词）对应的 Feed，永远不会失败：实时数据、过期缓存或占位数据三者之一
func (s *Service) FetchFeed(ctx context.Context, c model.Category, query string, forceRefresh bool) model.Feed {
	key := s.cache.Key(c, query)

	// 过期条目不在这里删除：本次生成失败时它就是兜底数据
	if !forceRefresh {
		if feed, fresh, ok := s.cache.Lookup(ctx, key); ok && fresh {
			log.Printf("cache hit: %s", key)
			return feed
		}
	}

	if s.generator == nil {
		log.Printf("warn: api key missing, using mock data for %s", c)
		return s.mock.Synthesize(c)
	}

	log.Printf("fetch fresh data for %s via %s...", key, s.generator.Name())
	feed, err := s.generate(ctx, c, query)
	if err != nil {
		if collector.IsQuotaExceeded(err) {
			log.Printf("warn: quota limit reached for %s, switching to offline mode: %v", key, err)
		} else {
			log.Printf("error: fetch news %s: %v", key, err)
		}

		if stale, ok := s.cache.Get(ctx, key, true); ok {
			log.Printf("fallback: returning stale cache for %s", key)
			return stale
		}
		log.Printf("fallback: no cache for %s, generating mock data", key)
		return s.mock.Synthesize(c)
	}

	// 缓存只是尽力而为，写失败不影响本次返回
	if err := s.cache.Put(ctx, key, feed); err != nil {
		log.Printf("warn: save cache %s: %v", key, err)
	}
	return feed
}

func (s *Service) generate(ctx context.Context, c model.Category, query string) (model.Feed, error) {
	raw, err := s.generator.Generate(ctx, collector.Request{
		Prompt:    feedPrompt(c, query, s.now()),
		WebSearch: true,
	})
	if err != nil {
		return model.Feed{}, err
	}
	return processor.ParseFeed(raw, c, s.now())
}

// RefreshCategory 强制刷新单个分类并合并进 prev。同一分类同时只允许一个刷新，重复请求直接返回 ErrRefreshInProgress
func (s *Service) RefreshCategory(ctx context.Context, c model.Category, prev *model.Feed) (model.Feed, error) {
	if !s.beginRefresh(c) {
		return model.Feed{}, ErrRefreshInProgress
	}
	defer s.endRefresh(c)

	log.Printf("refreshing category: %s", c)
	fresh := s.FetchFeed(ctx, c, "", true)
	return model.MergeCategory(prev, c, fresh), nil
}

// Refreshing 正在刷新的分类
func (s *Service) Refreshing() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Category(nil), s.refreshing...)
}

func (s *Service) beginRefresh(c model.Category) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lo.Contains(s.refreshing, c) {
		return false
	}
	s.refreshing = append(s.refreshing, c)
	return true
}

func (s *Service) endRefresh(c model.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshing = lo.Without(s.refreshing, c)
}
