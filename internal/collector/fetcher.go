package collector

import (
	"context"
	"fmt"
	"time"
)

// Request 一次生成请求
type Request struct {
	Prompt string
	// WebSearch 让生成端先检索网页再作答
	WebSearch bool
}

// Generator 抽象外部生成端，返回原始文本（可能夹带说明文字，需要调用方自行提取）
type Generator interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

// Options 生成端配置
type Options struct {
	Provider string // gemini / openai
	APIKey   string
	Model    string
	BaseURL  string
	// Timeout 为 0 时不设超时，请求跑到传输层返回为止
	Timeout time.Duration
}

// NewGenerator 按配置创建生成端；没有配置 API Key 时返回 ErrMissingCredential
func NewGenerator(ctx context.Context, opts Options) (Generator, error) {
	if opts.APIKey == "" {
		return nil, ErrMissingCredential
	}

	var (
		g   Generator
		err error
	)
	switch opts.Provider {
	case "", "gemini":
		g, err = NewGeminiGenerator(ctx, opts.APIKey, opts.Model)
	case "openai":
		g = NewOpenAIGenerator(opts.APIKey, opts.Model, opts.BaseURL)
	default:
		return nil, fmt.Errorf("unknown generator provider: %q (valid: gemini, openai)", opts.Provider)
	}
	if err != nil {
		return nil, err
	}

	if opts.Timeout > 0 {
		g = &timeoutGenerator{next: g, timeout: opts.Timeout}
	}
	return g, nil
}

type timeoutGenerator struct {
	next    Generator
	timeout time.Duration
}

func (t *timeoutGenerator) Name() string {
	return t.next.Name()
}

func (t *timeoutGenerator) Generate(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Generate(ctx, req)
}
