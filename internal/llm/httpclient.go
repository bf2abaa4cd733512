package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// HTTPClient calls an OpenAI-compatible chat completions endpoint, the
// shape ModelScope (and most hosted LLM providers) expose, matching the
// JSON request/response style already used by rerank.ModelScopeMatcher.
type HTTPClient struct {
	BaseURL    string // e.g. "https://api-inference.modelscope.cn/v1"
	APIKey     string
	HTTPClient *http.Client
	Log        *logrus.Entry
}

func NewHTTPClient(baseURL, apiKey string, log *logrus.Entry) *HTTPClient {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &HTTPClient{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		Log:        log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *HTTPClient) Invoke(ctx context.Context, model, system string, messages []Message, maxTokens int, temperature float64) (string, error) {
	all := make([]chatMessage, 0, len(messages)+1)
	if system != "" {
		all = append(all, chatMessage{Role: "system", Content: system})
	}
	for _, m := range messages {
		all = append(all, chatMessage{Role: m.Role, Content: m.Content})
	}

	body, err := json.Marshal(chatRequest{Model: model, Messages: all, MaxTokens: maxTokens, Temperature: temperature})
	if err != nil {
		return "", fmt.Errorf("llm: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("llm: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("llm: reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.Log.WithFields(logrus.Fields{"status": resp.StatusCode, "model": model}).Warn("LLM invoke failed")
		return "", fmt.Errorf("llm: invoke returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("llm: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("llm: response had no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
