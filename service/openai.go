package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"factcheck/analysis"
	"factcheck/config"

	"github.com/sashabaranov/go-openai"
)

// openaiSearchModel 启用搜索且未指定模型时使用的联网模型
const openaiSearchModel = "gpt-4o-mini-search-preview"

var (
	markdownLinkPattern = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\s)]+)\)`)
	bareURLPattern      = regexp.MustCompile(`https?://[^\s)\]"'<>]+`)
)

// OpenAIProvider 兼容 OpenAI Chat Completions 的接口。
// 搜索能力取决于所选模型（如带联网搜索的模型），引用从回复文本中的链接提取。
type OpenAIProvider struct {
	client    *openai.Client
	model     string
	maxTokens int
	search    bool
}

// NewOpenAIProvider 创建 OpenAI 兼容适配器
func NewOpenAIProvider(cfg config.ProviderConfig) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout()}

	model := strings.TrimSpace(cfg.Model)
	if model == "" || strings.HasPrefix(model, "gemini") {
		model = openai.GPT4oMini
		if cfg.EnableSearch {
			model = openaiSearchModel
		}
	}
	return &OpenAIProvider{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     model,
		maxTokens: cfg.MaxOutputTokens,
		search:    cfg.EnableSearch,
	}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Analyze(ctx context.Context, claim string) (*Reply, error) {
	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: claim},
		},
		MaxTokens: p.maxTokens,
	}
	// 联网搜索模型不接受 temperature 参数
	if !p.search {
		req.Temperature = 0.2
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: openai 返回错误: %d, %s", classifyStatus(apiErr.HTTPStatusCode), apiErr.HTTPStatusCode, apiErr.Message)
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return nil, fmt.Errorf("%w: openai 返回错误: %d", classifyStatus(reqErr.HTTPStatusCode), reqErr.HTTPStatusCode)
		}
		return nil, fmt.Errorf("%w: 请求 openai 失败: %v", analysis.ErrProviderUnavailable, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, fmt.Errorf("%w: openai 返回空文本", analysis.ErrEmptyProviderResponse)
	}

	text := resp.Choices[0].Message.Content
	return &Reply{Text: text, Attributions: extractLinks(text)}, nil
}

// extractLinks 提取回复中的链接，带标题的 Markdown 链接在前，裸链接在后
func extractLinks(text string) []analysis.Attribution {
	var out []analysis.Attribution
	titled := make(map[string]bool)
	for _, m := range markdownLinkPattern.FindAllStringSubmatch(text, -1) {
		out = append(out, analysis.Attribution{URI: m[2], Title: m[1]})
		titled[m[2]] = true
	}
	for _, u := range bareURLPattern.FindAllString(text, -1) {
		u = strings.TrimRight(u, ".,;:!?")
		if !titled[u] {
			out = append(out, analysis.Attribution{URI: u})
		}
	}
	return out
}
