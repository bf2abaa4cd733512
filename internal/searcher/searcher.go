// Package searcher implements recall: BM25 scoring over every doc-set's
// docTOC.md, FALLBACK_1/FALLBACK_2 grep recall, embedding rerank, and the
// hierarchical heading filter, assembled into one SearchResult per
// request.
package searcher

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/zorro-gridi/doc4llm-sub000/internal/bm25"
	"github.com/zorro-gridi/doc4llm-sub000/internal/contentsearch"
	"github.com/zorro-gridi/doc4llm-sub000/internal/corpus"
	"github.com/zorro-gridi/doc4llm-sub000/internal/rerank"
	"github.com/zorro-gridi/doc4llm-sub000/internal/textproc"
)

// Searcher orchestrates phase 1 recall across every targeted doc-set.
type Searcher struct {
	BaseDir         string
	Config          Config
	Reranker        *rerank.BatchReranker
	ContentSearcher *contentsearch.Searcher
	Log             *logrus.Entry
}

// New builds a Searcher. reranker may be nil, in which case the embedding
// rerank pass is skipped entirely and BM25/fallback results are returned
// as-is (useful for local corpora with no configured embedding backend).
func New(baseDir string, cfg Config, reranker *rerank.BatchReranker, log *logrus.Entry) *Searcher {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Searcher{
		BaseDir:         baseDir,
		Config:          cfg,
		Reranker:        reranker,
		ContentSearcher: contentsearch.NewSearcher(),
		Log:             log,
	}
}

// Search runs the full phase-1 pipeline for one query against the
// requested target doc-sets (nil/empty means every doc-set under BaseDir).
func (s *Searcher) Search(ctx context.Context, queries []string, targetDocSets []string) (SearchResult, error) {
	protected := textproc.ProtectedKeywords(s.Config.SkipedKeywords, s.Config.DomainNouns)
	rewritten := make([]string, len(queries))
	for i, q := range queries {
		rewritten[i] = textproc.FilterSkippedKeywords(q, s.Config.SkipedKeywords, protected)
	}

	docSets, err := s.resolveDocSets(targetDocSets)
	if err != nil {
		return SearchResult{}, err
	}
	if len(docSets) == 0 {
		return SearchResult{}, ErrNoDocSets
	}

	queryLang := textproc.DetectLanguageDefault(strings.Join(rewritten, " "))
	var allPages []corpus.ScoredPage
	var names []string
	for _, ds := range docSets {
		if err := s.checkLanguage(ds, queryLang); err != nil {
			return SearchResult{}, err
		}
		pages, err := s.searchDocSet(ctx, ds, rewritten)
		if err != nil {
			return SearchResult{}, fmt.Errorf("searcher: doc-set %s: %w", ds.Name, err)
		}
		allPages = append(allPages, pages...)
		names = append(names, ds.Name)
	}

	emitted := s.filterEmittable(allPages)
	sort.SliceStable(emitted, func(i, j int) bool { return emitted[i].BM25Sim > emitted[j].BM25Sim })

	return SearchResult{
		Pages:     emitted,
		QueryUsed: rewritten,
		DocSets:   names,
		Success:   len(emitted) >= s.minPageTitles(),
	}, nil
}

func (s *Searcher) minPageTitles() int {
	if s.Config.MinPageTitles > 0 {
		return s.Config.MinPageTitles
	}
	return DefaultMinPageTitles
}

func (s *Searcher) resolveDocSets(targetDocSets []string) ([]corpus.DocSet, error) {
	all, err := corpus.DiscoverDocSets(s.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("searcher: discover doc-sets: %w", err)
	}
	if len(targetDocSets) == 0 {
		return all, nil
	}
	want := make(map[string]struct{}, len(targetDocSets))
	for _, t := range targetDocSets {
		want[t] = struct{}{}
	}
	var out []corpus.DocSet
	for _, ds := range all {
		if _, ok := want[ds.Name]; ok {
			out = append(out, ds)
		}
	}
	return out, nil
}

// checkLanguage samples up to Config.LanguageSampleSize docTOC.md files
// from docSet and compares the corpus's detected language against the
// query's, returning ErrLanguageMismatch on disagreement.
func (s *Searcher) checkLanguage(docSet corpus.DocSet, queryLang textproc.Lang) error {
	tocPaths, err := corpus.DiscoverTOCPaths(docSet)
	if err != nil {
		return fmt.Errorf("searcher: discover TOC paths: %w", err)
	}
	sampleSize := s.Config.LanguageSampleSize
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	if len(tocPaths) > sampleSize {
		tocPaths = tocPaths[:sampleSize]
	}

	var sample strings.Builder
	for _, p := range tocPaths {
		headings, err := corpus.ParseTOC(p)
		if err != nil {
			continue
		}
		for _, h := range headings {
			sample.WriteString(h.Text)
			sample.WriteString(" ")
		}
	}
	if sample.Len() == 0 {
		return nil // nothing sampled, nothing to disagree about
	}

	corpusLang := textproc.DetectLanguageDefault(sample.String())
	if corpusLang != queryLang {
		s.Log.WithFields(logrus.Fields{
			"doc_set":      docSet.Name,
			"corpus_lang":  corpusLang,
			"query_lang":   queryLang,
		}).Warn("searcher: language mismatch")
		return ErrLanguageMismatch
	}
	return nil
}

func (s *Searcher) searchDocSet(ctx context.Context, ds corpus.DocSet, queries []string) ([]corpus.ScoredPage, error) {
	bm25Pages, err := bm25.Recall(ds, queries, s.Config.BM25)
	if err != nil {
		return nil, fmt.Errorf("bm25 recall: %w", err)
	}

	combinedQuery := strings.Join(queries, " ")
	switch s.Config.FallbackMode {
	case FallbackSerial:
		return s.searchSerial(ctx, ds, combinedQuery, bm25Pages)
	default:
		return s.searchParallel(ctx, ds, combinedQuery, bm25Pages)
	}
}

// searchParallel merges BM25 + both fallbacks by (doc_set, page_title)
// before running a single rerank pass over the merged set, so FALLBACK_1
// headings get reranked exactly like BM25 and FALLBACK_2 headings do (the
// ambiguity resolution documented on FallbackParallel).
func (s *Searcher) searchParallel(ctx context.Context, ds corpus.DocSet, combinedQuery string, bm25Pages []corpus.ScoredPage) ([]corpus.ScoredPage, error) {
	pattern := contentsearch.BuildKeywordPattern(s.Config.DomainNouns)

	fallback1Pages, err := s.fallback1Pages(ds, pattern, combinedQuery)
	if err != nil {
		return nil, err
	}
	fallback2Pages, err := s.fallback2Pages(ds, pattern, combinedQuery)
	if err != nil {
		return nil, err
	}

	merged := mergePages(bm25Pages, fallback1Pages, fallback2Pages)
	if s.Reranker != nil {
		merged, err = s.Reranker.RerankPages(ctx, combinedQuery, merged)
		if err != nil {
			return nil, fmt.Errorf("rerank: %w", err)
		}
	}
	applyHierarchicalFilter(merged)
	return merged, nil
}

// searchSerial reranks FALLBACK_1's results, then FALLBACK_2's, each
// independently before concatenating with BM25's (already-final) results.
func (s *Searcher) searchSerial(ctx context.Context, ds corpus.DocSet, combinedQuery string, bm25Pages []corpus.ScoredPage) ([]corpus.ScoredPage, error) {
	pattern := contentsearch.BuildKeywordPattern(s.Config.DomainNouns)

	fallback1Pages, err := s.fallback1Pages(ds, pattern, combinedQuery)
	if err != nil {
		return nil, err
	}
	fallback2Pages, err := s.fallback2Pages(ds, pattern, combinedQuery)
	if err != nil {
		return nil, err
	}

	if s.Reranker != nil {
		if fallback1Pages, err = s.Reranker.RerankPages(ctx, combinedQuery, fallback1Pages); err != nil {
			return nil, fmt.Errorf("rerank fallback_1: %w", err)
		}
		if fallback2Pages, err = s.Reranker.RerankPages(ctx, combinedQuery, fallback2Pages); err != nil {
			return nil, fmt.Errorf("rerank fallback_2: %w", err)
		}
	}

	all := append(append(bm25Pages, fallback1Pages...), fallback2Pages...)
	dedup := dedupeByKey(all)
	applyHierarchicalFilter(dedup)
	return dedup, nil
}

func (s *Searcher) fallback1Pages(ds corpus.DocSet, pattern *regexp.Regexp, combinedQuery string) ([]corpus.ScoredPage, error) {
	if pattern == nil {
		return nil, nil
	}
	hits, err := contentsearch.SearchTOC(ds, pattern)
	if err != nil {
		return nil, fmt.Errorf("fallback_1: %w", err)
	}
	return tocHitsToPages(hits, combinedQuery, s.Config.BM25), nil
}

func (s *Searcher) fallback2Pages(ds corpus.DocSet, pattern *regexp.Regexp, combinedQuery string) ([]corpus.ScoredPage, error) {
	if pattern == nil {
		return nil, nil
	}
	hits, err := s.ContentSearcher.Search(ds, pattern)
	if err != nil {
		return nil, fmt.Errorf("fallback_2: %w", err)
	}
	return contentHitsToPages(hits, combinedQuery, s.Config.BM25), nil
}

func applyHierarchicalFilter(pages []corpus.ScoredPage) {
	for i := range pages {
		HierarchicalFilter(&pages[i])
	}
}

// filterEmittable applies the final page-level gate: a page with at least
// one surviving heading is emitted if it came from FALLBACK_2 (whose single
// heading IS the match) or cleared the page-title threshold. A page that
// lost every heading during rerank/filtering still survives as a
// whole-page result (nil Headings) when its own page-title score clears
// the threshold — that carve-out is what lets a strong title match, whose
// headings were deliberately left empty in internal/rerank, reach the
// caller at all.
func (s *Searcher) filterEmittable(pages []corpus.ScoredPage) []corpus.ScoredPage {
	threshold := s.Config.BM25.ThresholdPageTitle
	if threshold == 0 {
		threshold = bm25.DefaultConfig().ThresholdPageTitle
	}
	out := make([]corpus.ScoredPage, 0, len(pages))
	for _, p := range pages {
		switch {
		case len(p.Headings) > 0:
			if p.Source == corpus.SourceFallback2 || p.BM25Sim >= threshold {
				out = append(out, p)
			}
		case p.BM25Sim >= threshold:
			out = append(out, p)
		}
	}
	return out
}
