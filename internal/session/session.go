package session

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/LJTian/PuntoPe/internal/model"
)

// ConnectErrorMessage 首次（非自动）加载无法拿到数据时展示给用户的提示
const ConnectErrorMessage = "No pudimos conectar con el servicio de noticias."

// FeedSource 会话依赖的取数接口，由 newsfeed.Service 实现
type FeedSource interface {
	FetchFeed(ctx context.Context, c model.Category, query string, forceRefresh bool) model.Feed
	RefreshCategory(ctx context.Context, c model.Category, prev *model.Feed) (model.Feed, error)
	Refreshing() []model.Category
}

// State 会话的只读快照
type State struct {
	Category        model.Category   `json:"category"`
	Query           string           `json:"query"`
	SearchMode      bool             `json:"searchMode"`
	SelectedArticle *model.Article   `json:"selectedArticle"`
	Feed            *model.Feed      `json:"feed"`
	TrendingTags    []string         `json:"trendingTags"`
	Loading         bool             `json:"loading"`
	LoadingMessage  string           `json:"loadingMessage,omitempty"`
	Error           string           `json:"error,omitempty"`
	Refreshing      []model.Category `json:"refreshing"`
}

// Session 顶层会话状态。所有字段受 mu 保护，调用取数服务时不持锁
type Session struct {
	source FeedSource

	mu             sync.Mutex
	category       model.Category
	query          string
	searchMode     bool
	selected       *model.Article
	feed           *model.Feed
	trendingTags   []string
	loading        bool
	loadingMessage string
	err            string
	// seq 每次非自动 Load 递增，较早发起的请求结果会被丢弃
	seq uint64
}

func New(source FeedSource) *Session {
	return &Session{
		source:       source,
		category:     model.Portada,
		trendingTags: append([]string(nil), model.DefaultTrendingTags...),
	}
}

// Load 拉取 (category, query) 对应的 Feed。
// 非自动加载会先清空当前列表与选中文章；自动刷新强制绕过缓存，结果为空时保留旧数据，失败时不提示用户。
func (s *Session) Load(ctx context.Context, c model.Category, query string, auto bool) error {
	s.mu.Lock()
	if !auto {
		s.loading = true
		s.loadingMessage = loadingMessage(query)
		s.feed = nil
		s.selected = nil
		s.seq++
	}
	s.err = ""
	seq := s.seq
	s.mu.Unlock()

	feed, err := s.fetch(ctx, c, query, auto)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return nil
	}
	if !auto {
		s.loading = false
		s.loadingMessage = ""
	}

	if err != nil {
		log.Printf("error: load news %s %q: %v", c, query, err)
		if !auto {
			s.err = ConnectErrorMessage
		}
		return err
	}
	if auto && len(feed.Articles) == 0 {
		return nil
	}

	s.feed = &feed
	if len(feed.Hashtags) > 0 {
		s.trendingTags = append([]string(nil), feed.Hashtags...)
	}
	return nil
}

// fetch 调用取数服务；ctx 先于结果结束时视为无法连接
func (s *Session) fetch(ctx context.Context, c model.Category, query string, auto bool) (model.Feed, error) {
	if err := ctx.Err(); err != nil {
		return model.Feed{}, err
	}

	done := make(chan model.Feed, 1)
	go func() {
		done <- s.source.FetchFeed(ctx, c, query, auto)
	}()

	select {
	case feed := <-done:
		return feed, nil
	case <-ctx.Done():
		return model.Feed{}, ctx.Err()
	}
}

func loadingMessage(query string) string {
	if query != "" {
		return fmt.Sprintf("Investigando: \"%s\"...", query)
	}
	return "Sincronizando noticias en tiempo real..."
}

// SelectCategory 退出搜索模式并切换分类；分类未变且不在搜索模式、已有数据时不重新加载
func (s *Session) SelectCategory(ctx context.Context, c model.Category) error {
	s.mu.Lock()
	reload := c != s.category || s.searchMode || s.feed == nil
	s.searchMode = false
	s.query = ""
	s.selected = nil
	s.category = c
	s.mu.Unlock()

	if !reload {
		return nil
	}
	return s.Load(ctx, c, "", false)
}

// Search 进入搜索模式，以首页上下文检索 query；当前分类保持不变
func (s *Session) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	s.mu.Lock()
	s.searchMode = true
	s.query = query
	s.selected = nil
	s.mu.Unlock()

	return s.Load(ctx, model.Portada, query, false)
}

// SearchTag 点击热门标签，去掉 # 后搜索
func (s *Session) SearchTag(ctx context.Context, tag string) error {
	clean := strings.Replace(tag, "#", "", 1)
	return s.Search(ctx, "Noticias recientes sobre "+clean)
}

func (s *Session) SelectArticle(a model.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = &a
}

func (s *Session) BackToGrid() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// RefreshCategory 强制刷新一个分类并合并进当前列表。合并基于完成时的列表，而不是发起时的
func (s *Session) RefreshCategory(ctx context.Context, c model.Category) error {
	fresh, err := s.source.RefreshCategory(ctx, c, nil)
	if err != nil {
		log.Printf("warn: refresh category %s: %v", c, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	merged := model.MergeCategory(s.feed, c, fresh)
	s.feed = &merged
	return nil
}

// Tick 自动刷新一次；正在阅读文章或处于搜索模式时跳过，返回是否真正执行
func (s *Session) Tick(ctx context.Context) bool {
	s.mu.Lock()
	skip := s.selected != nil || s.searchMode
	c := s.category
	s.mu.Unlock()

	if skip {
		return false
	}
	log.Printf("auto-refreshing news for %s...", c)
	_ = s.Load(ctx, c, "", true)
	return true
}

// Snapshot 返回当前状态的拷贝
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Category:       s.category,
		Query:          s.query,
		SearchMode:     s.searchMode,
		TrendingTags:   append([]string(nil), s.trendingTags...),
		Loading:        s.loading,
		LoadingMessage: s.loadingMessage,
		Error:          s.err,
		Refreshing:     s.source.Refreshing(),
	}
	if s.selected != nil {
		a := *s.selected
		st.SelectedArticle = &a
	}
	if s.feed != nil {
		f := model.Feed{
			Articles: append([]model.Article(nil), s.feed.Articles...),
			Hashtags: append([]string(nil), s.feed.Hashtags...),
		}
		st.Feed = &f
	}
	return st
}
