package searcher

import (
	"github.com/zorro-gridi/doc4llm-sub000/internal/bm25"
)

// FallbackMode selects how the two grep fallbacks combine with the BM25
// recall pass.
type FallbackMode string

const (
	// FallbackParallel runs FALLBACK_1 and then FALLBACK_2 (one after the
	// other, not concurrently), merges their hits with BM25's by (doc_set, page_title) key, and
	// runs exactly one rerank pass over the merged set. Because the merge
	// happens before reranking, a heading that FALLBACK_1 alone would
	// have surfaced is reranked here too, so parallel fallback headings
	// are always reranked once rather than passed through un-reranked.
	FallbackParallel FallbackMode = "parallel"

	// FallbackSerial runs FALLBACK_1 to completion (reranking its
	// results), then FALLBACK_2 to completion (reranking its results),
	// and concatenates the two reranked result sets.
	FallbackSerial FallbackMode = "serial"
)

// DefaultMinPageTitles is the minimum number of emitted pages a
// SearchResult needs to report success.
const DefaultMinPageTitles = 2

// DefaultSampleSize is how many docTOC.md files are sampled per doc-set to
// detect the corpus's language.
const DefaultSampleSize = 5

// Config holds the Searcher's tunables.
type Config struct {
	BM25             bm25.Config
	FallbackMode     FallbackMode
	MinPageTitles    int
	LanguageSampleSize int
	SkipedKeywords   []string
	DomainNouns      []string
	PredicateVerbs   []string
}

// DefaultConfig returns the Searcher's default tunables.
func DefaultConfig() Config {
	return Config{
		BM25:               bm25.DefaultConfig(),
		FallbackMode:       FallbackParallel,
		MinPageTitles:      DefaultMinPageTitles,
		LanguageSampleSize: DefaultSampleSize,
	}
}
