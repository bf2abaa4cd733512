// Package rerank implements the embedding-based reranking capability used
// by the Searcher and the batch page/heading reranker: a small Matcher
// abstraction over three interchangeable embedding/rerank backends,
// selected by the aggregate CJK ratio of the input texts, with
// a single externally-hosted capability wrapped behind a narrow interface
// the rest of the code depends on rather than any one backend directly.
package rerank

import (
	"context"
	"math"
)

// Matcher is the capability a reranking backend exposes: turn text into a
// vector, and score one or many texts against a query. RerankBatch exists
// separately from Rerank so that backends issuing a single batched HTTP
// request can avoid N round trips.
type Matcher interface {
	Encode(ctx context.Context, text string) ([]float32, error)
	Rerank(ctx context.Context, query, candidate string) (float64, error)
	RerankBatch(ctx context.Context, query string, candidates []string) ([]float64, error)
}

// CosineSimilarity returns the cosine similarity of two equal-length
// embedding vectors, matching chromem-go's normalize-then-dot convention.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// EncodeRerank scores a query against a single candidate by encoding both
// and taking their cosine similarity. Backends whose remote API doesn't
// offer a native rerank endpoint (only embeddings) implement Rerank/
// RerankBatch on top of this.
func EncodeRerank(ctx context.Context, m Matcher, query, candidate string) (float64, error) {
	qv, err := m.Encode(ctx, query)
	if err != nil {
		return 0, err
	}
	cv, err := m.Encode(ctx, candidate)
	if err != nil {
		return 0, err
	}
	return CosineSimilarity(qv, cv), nil
}

// EncodeRerankBatch scores a query against many candidates by encoding the
// query once and every candidate once, reusing the query vector across
// comparisons instead of re-encoding it per candidate.
func EncodeRerankBatch(ctx context.Context, m Matcher, query string, candidates []string) ([]float64, error) {
	qv, err := m.Encode(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(candidates))
	for i, c := range candidates {
		cv, err := m.Encode(ctx, c)
		if err != nil {
			return nil, err
		}
		out[i] = CosineSimilarity(qv, cv)
	}
	return out, nil
}
