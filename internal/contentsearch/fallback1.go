// Package contentsearch implements the two grep-derived fallback recall
// strategies: FALLBACK_1 (regex over docTOC.md) and FALLBACK_2 (regex over
// docContent.md with heading-level dedup and surrounding context).
package contentsearch

import (
	"path/filepath"
	"regexp"

	"github.com/zorro-gridi/doc4llm-sub000/internal/corpus"
)

// TOCHit is one (page, heading) match produced by FALLBACK_1.
type TOCHit struct {
	DocSet    string
	PageTitle string
	TOCPath   string
	Heading   string
	Level     int
}

// BuildKeywordPattern compiles a case-insensitive OR of the escaped
// keywords. Returns nil if keywords is empty.
func BuildKeywordPattern(keywords []string) *regexp.Regexp {
	if len(keywords) == 0 {
		return nil
	}
	pattern := ""
	for i, kw := range keywords {
		if kw == "" {
			continue
		}
		if i > 0 && pattern != "" {
			pattern += "|"
		}
		pattern += regexp.QuoteMeta(kw)
	}
	if pattern == "" {
		return nil
	}
	return regexp.MustCompile("(?i)" + pattern)
}

// SearchTOC runs FALLBACK_1 over one doc-set: every docTOC.md heading line
// matching pattern becomes a hit.
func SearchTOC(docSet corpus.DocSet, pattern *regexp.Regexp) ([]TOCHit, error) {
	if pattern == nil {
		return nil, nil
	}
	tocPaths, err := corpus.DiscoverTOCPaths(docSet)
	if err != nil {
		return nil, err
	}

	var hits []TOCHit
	for _, tocPath := range tocPaths {
		headings, err := corpus.ParseTOC(tocPath)
		if err != nil {
			continue // unreadable TOC: skip silently (bm25.Recall returns the error instead)
		}
		dir := filepath.Dir(tocPath)
		contentPath := filepath.Join(dir, corpus.ContentFileName)
		pageTitle, _ := corpus.ExtractPageTitle(contentPath)
		if pageTitle == "" {
			pageTitle = filepath.Base(dir)
		}

		for _, h := range headings {
			if pattern.MatchString(h.Text) {
				hits = append(hits, TOCHit{
					DocSet:    docSet.Name,
					PageTitle: pageTitle,
					TOCPath:   tocPath,
					Heading:   h.Text,
					Level:     h.Level,
				})
			}
		}
	}
	return hits, nil
}
