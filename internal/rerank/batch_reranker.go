package rerank

import (
	"context"

	"github.com/zorro-gridi/doc4llm-sub000/internal/corpus"
)

// BatchReranker runs the embedding rerank pass over a whole result set in
// one logical batch: the page title is reranked against the query to
// decide whether the page is relevant as a whole, and its headings are
// reranked independently to decide which sections to surface.
//
// When the page title alone clears the precision threshold, the page is
// already established as directly relevant; its headings are cleared so
// the Reader extracts the whole page rather than a handful of individually
// surviving sections ("title match subsumes heading detail"), mirroring
// the page-title/heading split BM25 recall uses.
type BatchReranker struct {
	Matcher           Matcher
	MinScoreThreshold float64
}

func NewBatchReranker(m Matcher) *BatchReranker {
	return &BatchReranker{Matcher: m, MinScoreThreshold: DefaultMinScoreThreshold}
}

// RerankPages reranks every page's title and headings against query,
// dropping pages whose title and every heading fail the threshold.
func (b *BatchReranker) RerankPages(ctx context.Context, query string, pages []corpus.ScoredPage) ([]corpus.ScoredPage, error) {
	threshold := b.MinScoreThreshold
	if threshold == 0 {
		threshold = DefaultMinScoreThreshold
	}
	hr := &HeadingReranker{Matcher: b.Matcher, MinScoreThreshold: threshold}

	out := make([]corpus.ScoredPage, 0, len(pages))
	for _, page := range pages {
		titleScore, err := b.Matcher.Rerank(ctx, query, page.PageTitle)
		if err != nil {
			return nil, err
		}
		s := titleScore
		page.RerankSim = &s

		if titleScore >= threshold+PrecisionBonus {
			page.IsPrecision = true
			page.IsBasic = true
			page.Headings = nil
			page.Source = corpus.SourceReranker
			page.Recompute()
			page.RerankSim = &s
			out = append(out, page)
			continue
		}

		if err := hr.Rerank(ctx, query, &page); err != nil {
			return nil, err
		}
		page.RerankSim = &s
		if titleScore >= threshold || len(page.Headings) > 0 {
			if titleScore >= threshold {
				page.IsBasic = true
			}
			out = append(out, page)
		}
	}
	return out, nil
}
