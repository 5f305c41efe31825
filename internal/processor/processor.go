package processor

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/LJTian/PuntoPe/internal/model"
)

// 生成端缺字段时的占位文案
const (
	DefaultTitle     = "Sin titular"
	DefaultSummary   = "Sin resumen disponible"
	DefaultSource    = "Fuente desconocida"
	DefaultURL       = "#"
	PublishedJustNow = "Hace instantes"
)

// DefaultHashtags 响应中没有 hashtags 字段时使用
var DefaultHashtags = []string{"#Peru", "#Noticias", "#Actualidad"}

// ParseError 生成端返回的文本中找不到合法结构
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse feed: %s: %v", e.Reason, e.Err)
	}
	return "parse feed: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseFeed 从生成端返回的原始文本中提取 JSON，并映射为 Feed。
// 原始文本可能带有对话式的前后缀或 markdown 代码块；requested 用于补齐缺失的分类。
func ParseFeed(raw string, requested model.Category, now time.Time) (model.Feed, error) {
	if strings.TrimSpace(raw) == "" {
		return model.Feed{}, &ParseError{Reason: "no data received"}
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return model.Feed{}, &ParseError{Reason: "invalid json", Err: err}
	}
	// 顶层是 null 时 payload 仍为 nil
	if payload == nil {
		return model.Feed{}, &ParseError{Reason: "invalid json structure: not an object"}
	}

	items, ok := payload["news_items"].([]any)
	if !ok {
		return model.Feed{}, &ParseError{Reason: "invalid json structure: missing news_items array"}
	}

	stamp := now.UnixMilli()
	articles := make([]model.Article, 0, len(items))
	for i, it := range items {
		fields, _ := it.(map[string]any)

		headline, _ := stringField(fields, "headline")
		rawCategory, _ := stringField(fields, "relevant_category")

		articles = append(articles, model.Article{
			ID:            fmt.Sprintf("news-%d-%d", i, stamp),
			Title:         fieldOr(fields, "headline", DefaultTitle),
			Summary:       fieldOr(fields, "summary", DefaultSummary),
			Source:        fieldOr(fields, "source_name", DefaultSource),
			URL:           fieldOr(fields, "source_url", DefaultURL),
			ImageURL:      ImageFor(headline, rawCategory),
			Category:      fieldOr(fields, "relevant_category", string(requested)),
			PublishedTime: PublishedJustNow,
		})
	}

	return model.Feed{
		Articles: articles,
		Hashtags: parseHashtags(payload["hashtags"]),
	}, nil
}

// extractJSON 截取第一个 '{' 到最后一个 '}'；找不到时退化为去掉代码块标记
func extractJSON(raw string) string {
	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first != -1 && last > first {
		return raw[first : last+1]
	}
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// stringField 只有非空字符串才算字段存在
func stringField(fields map[string]any, key string) (string, bool) {
	v, ok := fields[key].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func fieldOr(fields map[string]any, key, def string) string {
	if v, ok := stringField(fields, key); ok {
		return v
	}
	return def
}

func parseHashtags(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return append([]string(nil), DefaultHashtags...)
	}
	tags := make([]string, 0, len(list))
	for _, t := range list {
		if s, ok := t.(string); ok {
			tags = append(tags, s)
		}
	}
	return tags
}
