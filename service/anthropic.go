package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"factcheck/analysis"
	"factcheck/config"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicDefaultModel = "claude-sonnet-4-5"

// AnthropicMessager 便于测试替换的消息接口
type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// AnthropicProvider 使用 Messages API 与 web_search 工具
type AnthropicProvider struct {
	messages  AnthropicMessager
	model     string
	maxTokens int64
	search    bool
}

// NewAnthropicProvider 创建 Anthropic 适配器，关闭 SDK 内置重试
func NewAnthropicProvider(cfg config.ProviderConfig) *AnthropicProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.Timeout()),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	c := anthropic.NewClient(opts...)
	return newAnthropicProvider(&c.Messages, cfg)
}

func newAnthropicProvider(messages AnthropicMessager, cfg config.ProviderConfig) *AnthropicProvider {
	model := strings.TrimSpace(cfg.Model)
	if model == "" || strings.HasPrefix(model, "gemini") {
		model = anthropicDefaultModel
	}
	maxTokens := int64(cfg.MaxOutputTokens)
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	return &AnthropicProvider{
		messages:  messages,
		model:     model,
		maxTokens: maxTokens,
		search:    cfg.EnableSearch,
	}
}

func (p *AnthropicProvider) Name() string { return "anthropic" }

func (p *AnthropicProvider) Analyze(ctx context.Context, claim string) (*Reply, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   p.maxTokens,
		System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(claim))},
		Temperature: anthropic.Float(0.2),
	}
	if p.search {
		params.Tools = []anthropic.ToolUnionParam{
			{OfWebSearchTool20250305: &anthropic.WebSearchTool20250305Param{MaxUses: anthropic.Int(5)}},
		}
	}

	resp, err := p.messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: anthropic 返回错误: %d", classifyStatus(apiErr.StatusCode), apiErr.StatusCode)
		}
		return nil, fmt.Errorf("%w: 请求 anthropic 失败: %v", analysis.ErrProviderUnavailable, err)
	}

	out := &Reply{}
	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type != "text" {
			continue
		}
		sb.WriteString(block.Text)
		for _, cit := range block.Citations {
			if cit.URL != "" {
				out.Attributions = append(out.Attributions, analysis.Attribution{URI: cit.URL, Title: cit.Title})
			}
		}
	}
	out.Text = sb.String()
	if strings.TrimSpace(out.Text) == "" {
		return nil, fmt.Errorf("%w: anthropic 返回空文本", analysis.ErrEmptyProviderResponse)
	}
	return out, nil
}
