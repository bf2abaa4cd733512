package rerank

import (
	"context"
	"sort"

	"github.com/zorro-gridi/doc4llm-sub000/internal/corpus"
)

// DefaultMinScoreThreshold is the embedding-rerank pass threshold.
const DefaultMinScoreThreshold = 0.68

// PrecisionBonus is added to the reranker's active MinScoreThreshold to
// decide whether a heading is promoted to is_precision by the reranker
// (BatchReranker uses the same bar for a page title).
const PrecisionBonus = 0.20

// HeadingReranker scores a page's headings against a query with a Matcher
// and keeps only the headings clearing minScoreThreshold, optionally capped
// to the top_k highest-scoring survivors.
type HeadingReranker struct {
	Matcher           Matcher
	MinScoreThreshold float64
	TopK              int
}

func NewHeadingReranker(m Matcher) *HeadingReranker {
	return &HeadingReranker{Matcher: m, MinScoreThreshold: DefaultMinScoreThreshold}
}

// Rerank scores every heading in page against query, replacing Headings
// with only the survivors (sorted by RerankSim descending, capped at TopK
// when TopK > 0), and recomputes the page-level aggregates.
func (r *HeadingReranker) Rerank(ctx context.Context, query string, page *corpus.ScoredPage) error {
	if len(page.Headings) == 0 {
		return nil
	}
	texts := make([]string, len(page.Headings))
	for i, h := range page.Headings {
		texts[i] = h.Text
	}
	scores, err := r.Matcher.RerankBatch(ctx, query, texts)
	if err != nil {
		return err
	}

	threshold := r.MinScoreThreshold
	if threshold == 0 {
		threshold = DefaultMinScoreThreshold
	}

	kept := make([]corpus.Heading, 0, len(page.Headings))
	for i, h := range page.Headings {
		score := scores[i]
		if score < threshold {
			continue
		}
		s := score
		h.RerankSim = &s
		h.IsBasic = true
		h.IsPrecision = score >= threshold+PrecisionBonus
		h.Source = corpus.SourceReranker
		kept = append(kept, h)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		si, sj := 0.0, 0.0
		if kept[i].RerankSim != nil {
			si = *kept[i].RerankSim
		}
		if kept[j].RerankSim != nil {
			sj = *kept[j].RerankSim
		}
		return si > sj
	})
	if r.TopK > 0 && len(kept) > r.TopK {
		kept = kept[:r.TopK]
	}

	page.Headings = kept
	page.Source = corpus.SourceReranker
	page.Recompute()
	return nil
}
