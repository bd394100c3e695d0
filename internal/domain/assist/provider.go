package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Provider turns a prompt into generated text.
type Provider interface {
	Name() string
	Model() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// ProviderConfig selects and configures one upstream API.
type ProviderConfig struct {
	Name    string // anthropic | openai | gemini
	APIKey  string
	Model   string
	BaseURL string // override for tests, empty means the public endpoint
}

// NewProvider builds the configured provider client.
func NewProvider(cfg ProviderConfig, timeout time.Duration) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}

	switch cfg.Name {
	case "anthropic":
		return &anthropicProvider{cfg: cfg, httpClient: httpClient}, nil
	case "openai":
		return &openaiProvider{cfg: cfg, httpClient: httpClient}, nil
	case "gemini":
		return &geminiProvider{cfg: cfg, httpClient: httpClient}, nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrNotConfigured, cfg.Name)
	}
}

func postJSON(ctx context.Context, client *http.Client, endpoint string, headers map[string]string,
	payload interface{}, out interface{}) error {

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("provider returned status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type anthropicProvider struct {
	cfg        ProviderConfig
	httpClient *http.Client
}

func (p *anthropicProvider) Name() string  { return "anthropic" }
func (p *anthropicProvider) Model() string { return p.cfg.Model }

func (p *anthropicProvider) Generate(ctx context.Context, prompt string) (string, error) {
	base := p.cfg.BaseURL
	if base == "" {
		base = "https://api.anthropic.com"
	}

	payload := map[string]interface{}{
		"model":      p.cfg.Model,
		"max_tokens": 4096,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	headers := map[string]string{
		"x-api-key":         p.cfg.APIKey,
		"anthropic-version": "2023-06-01",
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := postJSON(ctx, p.httpClient, base+"/v1/messages", headers, payload, &result); err != nil {
		return "", err
	}

	for _, block := range result.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("empty response from anthropic")
}

type openaiProvider struct {
	cfg        ProviderConfig
	httpClient *http.Client
}

func (p *openaiProvider) Name() string  { return "openai" }
func (p *openaiProvider) Model() string { return p.cfg.Model }

func (p *openaiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	base := p.cfg.BaseURL
	if base == "" {
		base = "https://api.openai.com"
	}

	payload := map[string]interface{}{
		"model": p.cfg.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	headers := map[string]string{
		"Authorization": "Bearer " + p.cfg.APIKey,
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := postJSON(ctx, p.httpClient, base+"/v1/chat/completions", headers, payload, &result); err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty response from openai")
	}
	return result.Choices[0].Message.Content, nil
}

type geminiProvider struct {
	cfg        ProviderConfig
	httpClient *http.Client
}

func (p *geminiProvider) Name() string  { return "gemini" }
func (p *geminiProvider) Model() string { return p.cfg.Model }

func (p *geminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	base := p.cfg.BaseURL
	if base == "" {
		base = "https://generativelanguage.googleapis.com"
	}
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		base, p.cfg.Model, url.QueryEscape(p.cfg.APIKey))

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := postJSON(ctx, p.httpClient, endpoint, nil, payload, &result); err != nil {
		return "", err
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
