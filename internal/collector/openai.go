package collector

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIGenerator 调用 OpenAI 兼容的 chat/completions 接口。
// chat/completions 不支持检索增强，WebSearch 会被忽略（只记录一次日志）
type OpenAIGenerator struct {
	client *openai.Client
	model  string

	warnOnce sync.Once
}

func NewOpenAIGenerator(apiKey, model, baseURL string) *OpenAIGenerator {
	if model == "" {
		model = defaultOpenAIModel
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (o *OpenAIGenerator) Name() string {
	return "openai:" + o.model
}

func (o *OpenAIGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if req.WebSearch {
		o.warnOnce.Do(func() {
			log.Printf("warn: %s does not support web search, generating without it", o.Name())
		})
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
