package collector

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

const (
	previewTimeout      = 5 * time.Second
	previewMaxBodyBytes = 256 * 1024
	previewMaxRunes     = 600
)

// Preview 来源页面的简要信息（Open Graph / meta）
type Preview struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// SourcePreviewer 抓取新闻来源页面的摘要信息，作为生成全文时的参考材料
type SourcePreviewer interface {
	Preview(ctx context.Context, pageURL string) (Preview, error)
}

var ErrUnsupportedURL = errors.New("preview: only absolute http(s) urls are supported")

// CollyPreviewer 用 colly 读取页面 head 中的 og:title / og:description / og:image
type CollyPreviewer struct {
	Timeout time.Duration
}

func NewCollyPreviewer() *CollyPreviewer {
	return &CollyPreviewer{Timeout: previewTimeout}
}

func (p *CollyPreviewer) Preview(ctx context.Context, pageURL string) (Preview, error) {
	u, err := url.Parse(pageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Preview{}, ErrUnsupportedURL
	}
	if err := ctx.Err(); err != nil {
		return Preview{}, err
	}

	c := colly.NewCollector(
		colly.UserAgent("PuntoPeBot/1.0"),
		colly.MaxBodySize(previewMaxBodyBytes),
	)
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = previewTimeout
	}
	c.SetRequestTimeout(timeout)

	var out Preview
	c.OnHTML("head", func(e *colly.HTMLElement) {
		out.Title = firstNonEmpty(
			e.ChildAttr(`meta[property="og:title"]`, "content"),
			e.ChildText("title"),
		)
		out.Description = firstNonEmpty(
			e.ChildAttr(`meta[property="og:description"]`, "content"),
			e.ChildAttr(`meta[name="description"]`, "content"),
		)
		out.Image = strings.TrimSpace(e.ChildAttr(`meta[property="og:image"]`, "content"))
	})

	var statusErr error
	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode >= 300 {
			statusErr = &StatusError{Provider: "preview", StatusCode: r.StatusCode}
		}
	})

	if err := c.Visit(pageURL); err != nil {
		if statusErr != nil {
			return Preview{}, statusErr
		}
		log.Printf("preview %s failed: %v", pageURL, err)
		return Preview{}, err
	}

	out.Description = truncateRunes(out.Description, previewMaxRunes)
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// truncateRunes 按 rune 截断，超长时追加省略号
func truncateRunes(s string, limit int) string {
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit]) + "…"
}
