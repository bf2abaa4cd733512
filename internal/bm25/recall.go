package bm25

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/zorro-gridi/doc4llm-sub000/internal/corpus"
	"github.com/zorro-gridi/doc4llm-sub000/internal/textproc"
)

// Recall scores every docTOC.md under docSet against queries: each page's
// headings are scored individually, and the whole TOC is scored as one
// document for the page-title score. It returns one ScoredPage per page
// whose heading-count or page-title score passes the configured
// thresholds, sorted by page-level score descending with TOC-file-order as
// tie-break.
//
// A missing docTOC.md is never seen here (DiscoverTOCPaths only returns
// files that exist); any other read error is fatal and propagates.
func Recall(docSet corpus.DocSet, queries []string, cfg Config) ([]corpus.ScoredPage, error) {
	tocPaths, err := corpus.DiscoverTOCPaths(docSet)
	if err != nil {
		return nil, err
	}

	combined := strings.Join(queries, " ")
	queryTokens := textproc.Tokenize(combined)

	pages := make([]corpus.ScoredPage, 0, len(tocPaths))
	for _, tocPath := range tocPaths {
		sp, ok, err := scoreTOCFile(docSet, tocPath, queryTokens, cfg)
		if err != nil {
			return nil, err
		}
		if ok {
			pages = append(pages, sp)
		}
	}

	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].BM25Sim > pages[j].BM25Sim
	})
	return pages, nil
}

func scoreTOCFile(docSet corpus.DocSet, tocPath string, queryTokens []string, cfg Config) (corpus.ScoredPage, bool, error) {
	headings, err := corpus.ParseTOC(tocPath)
	if err != nil {
		return corpus.ScoredPage{}, false, err
	}

	dir := filepath.Dir(tocPath)
	contentPath := filepath.Join(dir, corpus.ContentFileName)
	pageTitle, _ := corpus.ExtractPageTitle(contentPath)
	if pageTitle == "" {
		pageTitle = filepath.Base(dir)
	}

	// Page-title score: the whole TOC concatenated into a single document
	// and scored against a single-document corpus.
	var tocTexts []string
	for _, h := range headings {
		tocTexts = append(tocTexts, h.Text)
	}
	wholeDoc := textproc.Tokenize(strings.Join(tocTexts, " "))
	pageScores := ScoreCorpus([][]string{wholeDoc}, queryTokens, cfg.K1, cfg.B)
	pageTitleScore := 0.0
	if len(pageScores) > 0 {
		pageTitleScore = pageScores[0]
	}

	// Per-heading score: headings of this page only are the corpus.
	headingDocs := make([][]string, len(headings))
	for i, h := range headings {
		headingDocs[i] = textproc.Tokenize(h.Text)
	}
	headingScores := ScoreCorpus(headingDocs, queryTokens, cfg.K1, cfg.B)

	kept := make([]corpus.Heading, 0, len(headings))
	basicCount := 0
	for i, h := range headings {
		score := headingScores[i]
		isBasic := score >= cfg.ThresholdHeadings
		isPrecision := score >= cfg.ThresholdPrecision
		if isBasic {
			basicCount++
		}
		s := score
		kept = append(kept, corpus.Heading{
			Text:        h.Text,
			Level:       h.Level,
			BM25Sim:     &s,
			IsBasic:     isBasic,
			IsPrecision: isPrecision,
			Source:      corpus.SourceBM25,
		})
	}

	keepPage := pageTitleScore >= cfg.ThresholdPageTitle || basicCount >= cfg.MinHeadings
	if !keepPage {
		return corpus.ScoredPage{}, false, nil
	}

	sp := corpus.ScoredPage{
		DocSet:    docSet.Name,
		PageTitle: pageTitle,
		TOCPath:   tocPath,
		Headings:  kept,
		BM25Sim:   pageTitleScore,
		Source:    corpus.SourceBM25,
	}
	sp.Recompute()
	if len(kept) == 0 {
		sp.BM25Sim = pageTitleScore
	}
	return sp, true, nil
}
