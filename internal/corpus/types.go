// Package corpus discovers doc-sets and pages on disk and parses the
// docContent.md / docTOC.md files that make up the pre-crawled knowledge
// base consumed by the retrieval pipeline.
package corpus

// Source tags where a Heading or ScoredPage came from.
type Source string

const (
	SourceBM25        Source = "BM25"
	SourceFallback1    Source = "FALLBACK_1"
	SourceFallback2    Source = "FALLBACK_2"
	SourceReranker     Source = "RERANKER"
	SourceLLMReranker  Source = "LLM_RERANKER"
)

// Heading is a candidate section inside a Page.
type Heading struct {
	Text           string
	Level          int
	BM25Sim        *float64
	RerankSim      *float64
	IsBasic        bool
	IsPrecision    bool
	Source         Source
	RelatedContext string
}

// ScoredPage aggregates search results for a single Page.
type ScoredPage struct {
	DocSet         string
	PageTitle      string
	TOCPath        string
	Headings       []Heading
	HeadingCount   int
	PrecisionCount int
	BM25Sim        float64
	RerankSim      *float64
	IsBasic        bool
	IsPrecision    bool
	Source         Source
}

// Recompute refreshes HeadingCount, PrecisionCount and the page-level
// BM25Sim from the current Headings slice.
func (p *ScoredPage) Recompute() {
	p.HeadingCount = len(p.Headings)
	precision := 0
	maxBM25 := 0.0
	haveHeadingScore := false
	for _, h := range p.Headings {
		if h.IsPrecision {
			precision++
		}
		if h.BM25Sim != nil {
			haveHeadingScore = true
			if *h.BM25Sim > maxBM25 {
				maxBM25 = *h.BM25Sim
			}
		}
	}
	p.PrecisionCount = precision
	if haveHeadingScore {
		p.BM25Sim = maxBM25
	}
}

// Key returns the (doc_set, page_title) dedup key for a ScoredPage.
func (p *ScoredPage) Key() string {
	return p.DocSet + "\x00" + p.PageTitle
}

// Page is a single crawled page on disk.
type Page struct {
	DocSet      string
	Title       string
	Dir         string
	ContentPath string
	TOCPath     string
	HasTOC      bool
}

// DocSet is a named corpus directory ({name}@{version}).
type DocSet struct {
	Name string
	Dir  string
}
