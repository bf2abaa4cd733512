// Package optimizer implements stage 0a, QueryOptimizer: an LLM call that
// expands the raw query into search-friendly variants and extracts the
// doc-set scope, domain vocabulary, and language the rest of the pipeline
// needs.
package optimizer

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/zorro-gridi/doc4llm-sub000/internal/llm"
)

// SearchRecommendation flags whether the optimizer thinks an online
// (web) search should supplement the local corpus.
type SearchRecommendation struct {
	OnlineSuggested bool   `json:"online_suggested"`
	Reason          string `json:"reason"`
}

// Result is everything downstream stages need out of the optimized query.
type Result struct {
	OptimizedQueries     []string              `json:"optimized_queries"`
	DocSets              []string              `json:"doc_sets"`
	DomainNouns          []string              `json:"domain_nouns"`
	PredicateVerbs       []string              `json:"predicate_verbs"`
	Language             string                `json:"language"`
	SearchRecommendation SearchRecommendation  `json:"search_recommendation"`
}

const systemPrompt = `You expand a user's documentation search query into several
phrasing variants that are more likely to match section headings in a
technical corpus. You also extract: the doc-sets the query is scoped to (if
named explicitly), the domain nouns (technical entities) it mentions, the
predicate verbs (actions) it mentions, and its primary language ("en" or
"zh"). Respond with a single JSON object and nothing else:
{"optimized_queries": [...], "doc_sets": [...], "domain_nouns": [...],
"predicate_verbs": [...], "language": "en", "search_recommendation":
{"online_suggested": false, "reason": "..."}}`

// Optimizer runs stage 0a.
type Optimizer struct {
	Client llm.Client
	Model  string
	Log    *logrus.Entry
}

func New(client llm.Client, model string, log *logrus.Entry) *Optimizer {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Optimizer{Client: client, Model: model, Log: log}
}

// Optimize calls the LLM and parses its JSON response. On a malformed or
// unparseable response it degrades gracefully: it returns a Result with an
// empty OptimizedQueries slice and online_suggested forced true, rather
// than an error, so the Searcher can fall back to searching with the raw
// query alone.
func (o *Optimizer) Optimize(ctx context.Context, rawQuery string) (Result, error) {
	raw, err := o.Client.Invoke(ctx, o.Model, systemPrompt, []llm.Message{
		{Role: "user", Content: rawQuery},
	}, 1024, 0.0)
	if err != nil {
		return Result{}, fmt.Errorf("optimizer: invoke failed: %w", err)
	}

	var res Result
	if err := llm.ExtractJSON(raw, &res); err != nil {
		o.Log.WithError(err).Warn("optimizer: degrading to raw query after malformed response")
		return Result{
			OptimizedQueries:      nil,
			SearchRecommendation: SearchRecommendation{OnlineSuggested: true, Reason: "optimizer response was not valid JSON"},
		}, nil
	}
	return res, nil
}

// QueriesOrFallback returns res.OptimizedQueries, or []string{rawQuery}
// when the optimizer produced none.
func (r Result) QueriesOrFallback(rawQuery string) []string {
	if len(r.OptimizedQueries) == 0 {
		return []string{rawQuery}
	}
	return r.OptimizedQueries
}
