package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"factcheck/analysis"
	"factcheck/config"
)

// systemPrompt 事实核查角色设定与输出约定
const systemPrompt = `You are FactCheck AI, a professional, unbiased fact-checking assistant.
Your goal is to analyze a user-provided news claim, find relevant information on the web using the search tool, and provide a structured analysis.
- Search for multiple reputable, independent sources to evaluate the claim.
- Base your verdict and explanation ONLY on the information found in the search results.
- Provide a clear verdict: "Real", "Fake", "Disputed", or "Uncertain" (if confidence is very low or sources conflict heavily).
- Provide a confidence score between 0 and 100.
- Write a neutral, human-readable explanation of the findings. Cite sources with numbers like [1], [2].
- Format your final response ONLY as a single valid JSON object inside a json code block, with the keys "verdict", "score" and "explanation". Example:
` + "```json" + `
{
  "verdict": "Disputed",
  "score": 65,
  "explanation": "Sources provide conflicting information regarding the claim [1]. Some support parts of it [2], while others contradict it [3]."
}
` + "```" + `
- Do not include any text before or after the JSON block.`

// Reply 模型原始回复：文本 + 引用信息
type Reply struct {
	Text         string
	Attributions []analysis.Attribution
}

// Provider 外部模型适配器，每次调用只发起一次请求，不做重试
type Provider interface {
	Name() string
	Analyze(ctx context.Context, claim string) (*Reply, error)
}

// NewProvider 根据配置创建模型适配器，未配置密钥时返回的适配器调用即报配置错误
func NewProvider(cfg config.ProviderConfig) (Provider, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Name))
	if name == "" {
		name = "gemini"
	}
	switch name {
	case "gemini", "anthropic", "openai":
	default:
		return nil, fmt.Errorf("provider.name 取值无效: %q", cfg.Name)
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		log.Printf("警告: 未配置 %s API 密钥，核查请求将返回配置错误", name)
		return unconfiguredProvider{name: name}, nil
	}

	switch name {
	case "anthropic":
		return NewAnthropicProvider(cfg), nil
	case "openai":
		return NewOpenAIProvider(cfg), nil
	default:
		return NewGeminiProvider(cfg), nil
	}
}

type unconfiguredProvider struct {
	name string
}

func (p unconfiguredProvider) Name() string { return p.name }

func (p unconfiguredProvider) Analyze(context.Context, string) (*Reply, error) {
	return nil, fmt.Errorf("%w: %s API key is not set", analysis.ErrProviderConfiguration, p.name)
}

// classifyStatus 将上游 HTTP 状态码映射为错误类别
func classifyStatus(status int) error {
	if status == 401 || status == 403 {
		return analysis.ErrProviderConfiguration
	}
	return analysis.ErrProviderUnavailable
}

// truncate 按字符截断，避免切断多字节字符
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
