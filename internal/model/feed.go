package model

import (
	"strings"

	"github.com/samber/lo"
)

// MatchesCategory 宽松匹配：完全相同，或文章分类包含目标分类
func MatchesCategory(articleCategory string, c Category) bool {
	return articleCategory == string(c) || strings.Contains(articleCategory, string(c))
}

// MergeCategory 将单个分类的刷新结果合并进已有的 Feed：
// 新文章统一标记为该分类并放在最前，旧 Feed 中属于该分类的文章全部丢弃，其它分类原样保留。
// prev 为 nil 时直接返回 fresh。
func MergeCategory(prev *Feed, c Category, fresh Feed) Feed {
	if prev == nil {
		return fresh
	}

	relabeled := lo.Map(fresh.Articles, func(a Article, _ int) Article {
		a.Category = string(c)
		return a
	})
	others := lo.Filter(prev.Articles, func(a Article, _ int) bool {
		return !MatchesCategory(a.Category, c)
	})

	articles := make([]Article, 0, len(relabeled)+len(others))
	articles = append(articles, relabeled...)
	articles = append(articles, others...)

	return Feed{
		Articles: articles,
		Hashtags: prev.Hashtags,
	}
}

// Featured 首页头条：优先选第一条政治/选举新闻，否则取第一条
func (f Feed) Featured() (Article, bool) {
	if len(f.Articles) == 0 {
		return Article{}, false
	}
	if a, ok := lo.Find(f.Articles, func(a Article) bool {
		return strings.Contains(a.Category, "Política") || strings.Contains(a.Category, "Elecciones")
	}); ok {
		return a, true
	}
	return f.Articles[0], true
}

// Section 按分类名宽松筛选（忽略大小写的包含或完全相同），用于首页分区
func (f Feed) Section(label string) []Article {
	lower := strings.ToLower(label)
	return lo.Filter(f.Articles, func(a Article, _ int) bool {
		return strings.Contains(strings.ToLower(a.Category), lower) || a.Category == label
	})
}
