package rerank

import (
	"context"
	"fmt"

	chromem "github.com/philippgille/chromem-go"
)

// EncodeFunc is an injectable local embedding function, so tests and
// offline deployments can run LocalMatcher against a small in-process
// sentence-transformer-equivalent without any network dependency.
type EncodeFunc func(ctx context.Context, text string) ([]float32, error)

// LocalMatcher wraps a locally-computed embedding function and uses
// chromem-go's in-memory vector collection to do the actual
// nearest-neighbor scoring, rebuilt as an ephemeral per-request scratch
// index rather than a persisted knowledge-base collection.
type LocalMatcher struct {
	Encoder EncodeFunc
	db      *chromem.DB
}

func NewLocalMatcher(encoder EncodeFunc) *LocalMatcher {
	return &LocalMatcher{Encoder: encoder, db: chromem.NewDB()}
}

func (m *LocalMatcher) Encode(ctx context.Context, text string) ([]float32, error) {
	if m.Encoder == nil {
		return nil, fmt.Errorf("rerank: local matcher has no encoder configured")
	}
	return m.Encoder(ctx, text)
}

func (m *LocalMatcher) Rerank(ctx context.Context, query, candidate string) (float64, error) {
	scores, err := m.RerankBatch(ctx, query, []string{candidate})
	if err != nil {
		return 0, err
	}
	return scores[0], nil
}

// RerankBatch builds an ephemeral chromem-go collection from candidates,
// embedding each with Encoder, then queries it with query to get every
// candidate's cosine similarity back in one pass, preserving the caller's
// original candidate order in the returned scores.
func (m *LocalMatcher) RerankBatch(ctx context.Context, query string, candidates []string) ([]float64, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	embed := func(ctx context.Context, text string) ([]float32, error) {
		return m.Encode(ctx, text)
	}

	collectionName := fmt.Sprintf("rerank-scratch-%d", len(candidates))
	_ = m.db.DeleteCollection(collectionName)
	collection, err := m.db.GetOrCreateCollection(collectionName, nil, chromem.EmbeddingFunc(embed))
	if err != nil {
		return nil, fmt.Errorf("rerank: create scratch collection: %w", err)
	}

	docs := make([]chromem.Document, len(candidates))
	for i, c := range candidates {
		docs[i] = chromem.Document{ID: fmt.Sprintf("%d", i), Content: c}
	}
	if err := collection.AddDocuments(ctx, docs, 1); err != nil {
		return nil, fmt.Errorf("rerank: add scratch documents: %w", err)
	}

	results, err := collection.Query(ctx, query, len(candidates), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("rerank: query scratch collection: %w", err)
	}

	scores := make([]float64, len(candidates))
	byID := make(map[string]float32, len(results))
	for _, r := range results {
		byID[r.ID] = r.Similarity
	}
	for i := range candidates {
		scores[i] = float64(byID[fmt.Sprintf("%d", i)])
	}
	return scores, nil
}
