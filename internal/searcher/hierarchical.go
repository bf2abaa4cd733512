package searcher

import "github.com/zorro-gridi/doc4llm-sub000/internal/corpus"

// HierarchicalFilter keeps only the headings whose level equals the
// minimum level observed among page.Headings (the "parent-first coverage"
// policy): a page that surfaced both an H2 and several H3s under it keeps
// only the H2, on the theory that the parent section already covers its
// children.
//
// This is a flat, single pass over the slice ("keep only headings at the
// minimum observed level"), not a recursive parent/child walk.
//
// FALLBACK_2-tagged pages are skipped: their headings were already
// uniquely anchored to a specific match in the body text, so collapsing
// them back up to a parent heading would throw away the reason they
// matched at all.
func HierarchicalFilter(page *corpus.ScoredPage) {
	if page.Source == corpus.SourceFallback2 || len(page.Headings) == 0 {
		return
	}

	minLevel := page.Headings[0].Level
	for _, h := range page.Headings[1:] {
		if h.Level < minLevel {
			minLevel = h.Level
		}
	}

	kept := make([]corpus.Heading, 0, len(page.Headings))
	for _, h := range page.Headings {
		if h.Level == minLevel {
			kept = append(kept, h)
		}
	}
	page.Headings = kept
	page.Recompute()
}
