package rerank

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

const modelScopeEmbeddingsURL = "https://api-inference.modelscope.cn/v1/embeddings"

// ModelScopeMatcher calls ModelScope's OpenAI-compatible embeddings
// endpoint, used for Chinese-dominant corpora.
type ModelScopeMatcher struct {
	Model      string
	APIKey     string
	HTTPClient *http.Client
	Log        *logrus.Entry
}

func NewModelScopeMatcher(model, apiKey string, log *logrus.Entry) *ModelScopeMatcher {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &ModelScopeMatcher{
		Model:      model,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Log:        log,
	}
}

type modelScopeEmbeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type modelScopeEmbeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (m *ModelScopeMatcher) Encode(ctx context.Context, text string) ([]float32, error) {
	reqBody, err := json.Marshal(modelScopeEmbeddingRequest{Model: m.Model, Input: text})
	if err != nil {
		return nil, fmt.Errorf("rerank: marshal ModelScope request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, modelScopeEmbeddingsURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("rerank: build ModelScope request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rerank: ModelScope request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("rerank: reading ModelScope response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		m.Log.WithFields(logrus.Fields{"status": resp.StatusCode, "model": m.Model}).Warn("ModelScope embeddings call failed")
		return nil, fmt.Errorf("rerank: ModelScope embeddings returned status %d", resp.StatusCode)
	}

	var parsed modelScopeEmbeddingResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("rerank: decode ModelScope response: %w", err)
	}
	if len(parsed.Data) == 0 {
		return nil, fmt.Errorf("rerank: ModelScope response had no embedding data")
	}
	return parsed.Data[0].Embedding, nil
}

func (m *ModelScopeMatcher) Rerank(ctx context.Context, query, candidate string) (float64, error) {
	return EncodeRerank(ctx, m, query, candidate)
}

func (m *ModelScopeMatcher) RerankBatch(ctx context.Context, query string, candidates []string) ([]float64, error) {
	return EncodeRerankBatch(ctx, m, query, candidates)
}
