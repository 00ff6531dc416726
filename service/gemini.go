package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"factcheck/analysis"
	"factcheck/config"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta"
	geminiDefaultModel = "gemini-2.5-flash"
)

// GeminiProvider 调用 Gemini generateContent 接口，启用 google_search 工具
type GeminiProvider struct {
	apiKey     string
	model      string
	baseURL    string
	maxTokens  int
	search     bool
	httpClient *http.Client
}

// NewGeminiProvider 创建 Gemini 适配器
func NewGeminiProvider(cfg config.ProviderConfig) *GeminiProvider {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = geminiDefaultModel
	}
	return &GeminiProvider{
		apiKey:     cfg.APIKey,
		model:      strings.TrimPrefix(model, "models/"),
		baseURL:    baseURL,
		maxTokens:  cfg.MaxOutputTokens,
		search:     cfg.EnableSearch,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
	}
}

func (p *GeminiProvider) Name() string { return "gemini" }

type geminiPart struct {
	Text    string `json:"text"`
	Thought bool   `json:"thought,omitempty"`
}

type geminiWeb struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		GroundingMetadata *struct {
			GroundingAttributions []struct {
				Web *geminiWeb `json:"web"`
			} `json:"groundingAttributions"`
			GroundingChunks []struct {
				Web *geminiWeb `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
}

func (p *GeminiProvider) buildRequestBody(claim string) map[string]interface{} {
	body := map[string]interface{}{
		"systemInstruction": map[string]interface{}{
			"parts": []map[string]string{{"text": systemPrompt}},
		},
		"contents": []map[string]interface{}{
			{
				"role":  "user",
				"parts": []map[string]string{{"text": claim}},
			},
		},
	}
	genCfg := map[string]interface{}{"temperature": 0.2}
	if p.maxTokens > 0 {
		genCfg["maxOutputTokens"] = p.maxTokens
	}
	body["generationConfig"] = genCfg
	if p.search {
		body["tools"] = []map[string]interface{}{
			{"google_search": map[string]interface{}{}},
		}
	}
	return body
}

func (p *GeminiProvider) Analyze(ctx context.Context, claim string) (*Reply, error) {
	jsonData, err := json.Marshal(p.buildRequestBody(claim))
	if err != nil {
		return nil, fmt.Errorf("构建请求失败: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: 请求 gemini 失败: %v", analysis.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: 读取 gemini 响应失败: %v", analysis.ErrProviderUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: gemini 返回错误: %d, %s", classifyStatus(resp.StatusCode), resp.StatusCode, truncate(string(data), 500))
	}

	var result geminiResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%w: 解析 gemini 响应失败: %v", analysis.ErrProviderUnavailable, err)
	}
	if len(result.Candidates) == 0 {
		return nil, fmt.Errorf("%w: gemini 未返回候选结果", analysis.ErrEmptyProviderResponse)
	}

	cand := result.Candidates[0]
	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: gemini 返回空文本", analysis.ErrEmptyProviderResponse)
	}

	out := &Reply{Text: text}
	if gm := cand.GroundingMetadata; gm != nil {
		for _, a := range gm.GroundingAttributions {
			if a.Web != nil {
				out.Attributions = append(out.Attributions, analysis.Attribution{URI: a.Web.URI, Title: a.Web.Title})
			}
		}
		for _, c := range gm.GroundingChunks {
			if c.Web != nil {
				out.Attributions = append(out.Attributions, analysis.Attribution{URI: c.Web.URI, Title: c.Web.Title})
			}
		}
	}
	return out, nil
}
