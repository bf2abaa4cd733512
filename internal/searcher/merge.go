package searcher

import (
	"github.com/zorro-gridi/doc4llm-sub000/internal/bm25"
	"github.com/zorro-gridi/doc4llm-sub000/internal/contentsearch"
	"github.com/zorro-gridi/doc4llm-sub000/internal/corpus"
	"github.com/zorro-gridi/doc4llm-sub000/internal/textproc"
)

func tocHitsToPages(hits []contentsearch.TOCHit, combinedQuery string, cfg bm25.Config) []corpus.ScoredPage {
	byPage := make(map[string]*corpus.ScoredPage)
	var order []string
	for _, h := range hits {
		key := h.DocSet + "\x00" + h.PageTitle
		p, ok := byPage[key]
		if !ok {
			p = &corpus.ScoredPage{DocSet: h.DocSet, PageTitle: h.PageTitle, TOCPath: h.TOCPath, Source: corpus.SourceFallback1}
			byPage[key] = p
			order = append(order, key)
		}
		p.Headings = append(p.Headings, corpus.Heading{
			Text:   h.Heading,
			Level:  h.Level,
			Source: corpus.SourceFallback1,
		})
	}
	queryTokens := textproc.Tokenize(combinedQuery)
	out := make([]corpus.ScoredPage, 0, len(order))
	for _, key := range order {
		p := byPage[key]
		scorePageHeadings(p, queryTokens, cfg)
		p.Recompute()
		out = append(out, *p)
	}
	return out
}

func contentHitsToPages(hits []contentsearch.ContentHit, combinedQuery string, cfg bm25.Config) []corpus.ScoredPage {
	byPage := make(map[string]*corpus.ScoredPage)
	var order []string
	for _, h := range hits {
		key := h.DocSet + "\x00" + h.PageTitle
		p, ok := byPage[key]
		if !ok {
			p = &corpus.ScoredPage{DocSet: h.DocSet, PageTitle: h.PageTitle, TOCPath: h.TOCPath, Source: corpus.SourceFallback2}
			byPage[key] = p
			order = append(order, key)
		}
		p.Headings = append(p.Headings, corpus.Heading{
			Text:           h.Heading,
			Level:          h.Level,
			Source:         corpus.SourceFallback2,
			RelatedContext: h.RelatedContext,
		})
	}
	queryTokens := textproc.Tokenize(combinedQuery)
	out := make([]corpus.ScoredPage, 0, len(order))
	for _, key := range order {
		p := byPage[key]
		scorePageHeadings(p, queryTokens, cfg)
		p.Recompute()
		out = append(out, *p)
	}
	return out
}

// scorePageHeadings scores a fallback page's headings with BM25 against
// queryTokens, treating the page's own headings as the corpus the same way
// bm25.Recall scores a BM25 page's headings. Without this, fallback-sourced
// headings would carry no BM25Sim at all and would always lose a merge
// collision against a BM25-sourced page regardless of actual relevance.
func scorePageHeadings(p *corpus.ScoredPage, queryTokens []string, cfg bm25.Config) {
	if len(p.Headings) == 0 || len(queryTokens) == 0 {
		return
	}
	docs := make([][]string, len(p.Headings))
	for i, h := range p.Headings {
		docs[i] = textproc.Tokenize(h.Text)
	}
	scores := bm25.ScoreCorpus(docs, queryTokens, cfg.K1, cfg.B)
	for i := range p.Headings {
		s := scores[i]
		p.Headings[i].BM25Sim = &s
	}
}

// mergePages combines BM25 and both fallbacks' pages by (doc_set,
// page_title) key, unioning headings (deduped by heading text) under a
// single ScoredPage per key. The first-seen Source wins, so callers should
// pass sets in priority order (BM25, FALLBACK_1, FALLBACK_2) when the
// Source tag matters downstream. On a page-level score collision the
// higher bm25_sim wins; Recompute then re-derives the final page score as
// the max across the merged heading set, so this only matters before a
// page's first heading is added.
func mergePages(sets ...[]corpus.ScoredPage) []corpus.ScoredPage {
	byKey := make(map[string]*corpus.ScoredPage)
	var order []string

	for _, pages := range sets {
		for _, p := range pages {
			key := p.Key()
			existing, ok := byKey[key]
			if !ok {
				cp := p
				byKey[key] = &cp
				order = append(order, key)
				continue
			}
			existing.Headings = mergeHeadings(existing.Headings, p.Headings)
			if p.BM25Sim > existing.BM25Sim {
				existing.BM25Sim = p.BM25Sim
			}
			if existing.TOCPath == "" {
				existing.TOCPath = p.TOCPath
			}
		}
	}

	out := make([]corpus.ScoredPage, 0, len(order))
	for _, key := range order {
		p := byKey[key]
		p.Recompute()
		out = append(out, *p)
	}
	return out
}

func mergeHeadings(existing, incoming []corpus.Heading) []corpus.Heading {
	seen := make(map[string]struct{}, len(existing))
	for _, h := range existing {
		seen[h.Text] = struct{}{}
	}
	out := existing
	for _, h := range incoming {
		if _, dup := seen[h.Text]; dup {
			continue
		}
		seen[h.Text] = struct{}{}
		out = append(out, h)
	}
	return out
}

func dedupeByKey(pages []corpus.ScoredPage) []corpus.ScoredPage {
	seen := make(map[string]struct{}, len(pages))
	out := make([]corpus.ScoredPage, 0, len(pages))
	for _, p := range pages {
		key := p.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}
