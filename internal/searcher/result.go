package searcher

import "github.com/zorro-gridi/doc4llm-sub000/internal/corpus"

// SearchResult is the Searcher's top-level output.
type SearchResult struct {
	Pages        []corpus.ScoredPage
	QueryUsed    []string
	DocSets      []string
	Success      bool
}
