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

const hfInferenceURL = "https://api-inference.huggingface.co/pipeline/feature-extraction/"

// HFMatcher calls the Hugging Face Inference API's feature-extraction
// pipeline for a single embedding model, optionally through an HTTP(S)
// proxy (HF_PROXY), and derives Rerank/RerankBatch from cosine similarity
// over those embeddings.
type HFMatcher struct {
	Model      string
	APIKey     string
	HTTPClient *http.Client
	Log        *logrus.Entry
}

// NewHFMatcher builds an HFMatcher. proxyURL may be empty.
func NewHFMatcher(model, apiKey, proxyURL string, log *logrus.Entry) (*HFMatcher, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	if proxyURL != "" {
		transport, err := proxyTransport(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("rerank: configuring HF_PROXY: %w", err)
		}
		client.Transport = transport
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &HFMatcher{Model: model, APIKey: apiKey, HTTPClient: client, Log: log}, nil
}

func (m *HFMatcher) Encode(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(map[string]any{"inputs": text})
	if err != nil {
		return nil, fmt.Errorf("rerank: marshal HF request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hfInferenceURL+m.Model, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("rerank: build HF request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rerank: HF request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("rerank: reading HF response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		m.Log.WithFields(logrus.Fields{"status": resp.StatusCode, "model": m.Model}).Warn("HF inference call failed")
		return nil, fmt.Errorf("rerank: HF inference returned status %d", resp.StatusCode)
	}

	vec, err := decodeEmbedding(raw)
	if err != nil {
		return nil, fmt.Errorf("rerank: decode HF embedding: %w", err)
	}
	return vec, nil
}

func (m *HFMatcher) Rerank(ctx context.Context, query, candidate string) (float64, error) {
	return EncodeRerank(ctx, m, query, candidate)
}

func (m *HFMatcher) RerankBatch(ctx context.Context, query string, candidates []string) ([]float64, error) {
	return EncodeRerankBatch(ctx, m, query, candidates)
}

// decodeEmbedding accepts either a flat []float32 or a [][]float32
// (per-token) response and mean-pools the latter into a single vector, as
// the feature-extraction pipeline may return either shape depending on the
// model's pooling configuration.
func decodeEmbedding(raw []byte) ([]float32, error) {
	var flat []float32
	if err := json.Unmarshal(raw, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}

	var nested [][]float32
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 {
		return meanPool(nested), nil
	}

	var tripleNested [][][]float32
	if err := json.Unmarshal(raw, &tripleNested); err == nil && len(tripleNested) > 0 {
		return meanPool(tripleNested[0]), nil
	}

	return nil, fmt.Errorf("unrecognized embedding response shape")
}

func meanPool(rows [][]float32) []float32 {
	if len(rows) == 0 {
		return nil
	}
	dim := len(rows[0])
	out := make([]float32, dim)
	for _, row := range rows {
		for i := 0; i < dim && i < len(row); i++ {
			out[i] += row[i]
		}
	}
	n := float32(len(rows))
	for i := range out {
		out[i] /= n
	}
	return out
}
