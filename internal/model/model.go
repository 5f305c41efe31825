package model

import "strings"

// Category 新闻分类。分类是自由文本：生成端返回的分类可能只与请求的分类大致匹配
type Category string

const (
	Portada    Category = "Portada" // 首页聚合分类
	Politica   Category = "Política"
	Economia   Category = "Economía"
	Seguridad  Category = "Seguridad Nacional"
	Sociales   Category = "Sociales"
	Elecciones Category = "Elecciones 2026"
)

// SubCategories 首页聚合的五个真实分类，顺序即首页分区顺序
var SubCategories = []Category{Politica, Economia, Seguridad, Sociales, Elecciones}

// AllCategories 导航栏展示的全部分类
var AllCategories = append([]Category{Portada}, SubCategories...)

// DefaultTrendingTags 会话启动时展示的热门标签
var DefaultTrendingTags = []string{"#PoliticaPeru", "#Congreso", "#Actualidad", "#UltimoMinuto", "#Peru"}

func (c Category) String() string {
	return string(c)
}

// IsAggregate 是否为首页聚合分类
func (c Category) IsAggregate() bool {
	return c == Portada
}

// ParseCategory 去掉首尾空白；空串视为首页，未知分类原样保留
func ParseCategory(s string) Category {
	s = strings.TrimSpace(s)
	if s == "" {
		return Portada
	}
	return Category(s)
}

// Article 单条新闻
type Article struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Summary       string `json:"summary"`
	Source        string `json:"source"`
	URL           string `json:"url"`
	ImageURL      string `json:"imageUrl"`
	Category      string `json:"category"`
	PublishedTime string `json:"publishedTime"`
}

// Feed 一个分类（或搜索词）对应的新闻列表与热门标签，顺序有意义：首页第一条作为头条
type Feed struct {
	Articles []Article `json:"articles"`
	Hashtags []string  `json:"hashtags"`
}

// CacheEntry 缓存中保存的结构，Timestamp 为毫秒时间戳
type CacheEntry struct {
	Timestamp int64 `json:"timestamp"`
	Data      Feed  `json:"data"`
}

// Comment 单篇文章下的用户评论
type Comment struct {
	ID        string `json:"id"`
	UserName  string `json:"userName"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}
