// Package llmrerank implements stage 1.5, LLMReranker: an LLM pass over
// the BM25/embedding-reranked candidate set that re-scores headings with
// semantic judgment and, when no heading survives, relaxes its own
// threshold and re-filters, up to a caller-given number of retries. If
// nothing survives the last retry, the result is empty; no top-N fallback
// is applied at that point.
//
// AdjustThreshold and FilterRerankerOutput are ported line-for-line from
// reranker_utils.py's adjust_threshold/filter_reranker_output.
package llmrerank

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/zorro-gridi/doc4llm-sub000/internal/corpus"
	"github.com/zorro-gridi/doc4llm-sub000/internal/llm"
)

// ThresholdStep is how much AdjustThreshold relaxes per retry.
const ThresholdStep = 0.10

// DefaultMinHeadingsCount is the minimum number of headings
// FilterRerankerOutput guarantees per page when any candidates exist.
const DefaultMinHeadingsCount = 1

// AdjustThreshold relaxes threshold by ThresholdStep, floored at 0 and
// rounded to 2 decimal places.
func AdjustThreshold(threshold float64) float64 {
	adjusted := threshold - ThresholdStep
	if adjusted < 0 {
		adjusted = 0
	}
	return math.Round(adjusted*100) / 100
}

// HeadingScore is one LLM-scored heading candidate.
type HeadingScore struct {
	Heading string
	Score   float64
}

// PageScores is one page's LLM-scored headings plus its own page-level
// score (used when a page has no heading-level scores to fall back on).
type PageScores struct {
	PageTitle  string
	PageScore  float64
	Headings   []HeadingScore
}

// FilterRerankerOutput re-filters page.Headings by threshold, following
// the 4-rule policy in reranker_utils.py's filter_reranker_output:
//  1. If the page's own score clears threshold, keep every heading.
//  2. Otherwise filter headings individually by threshold.
//  3. If that leaves nothing, drop the page entirely (Rerank then retries
//     with a relaxed threshold).
//  4. If some headings survive but fewer than minHeadingsCount, and the
//     page has at least minHeadingsCount candidates, keep the top-N scored
//     headings instead, so a surviving page has at least minHeadingsCount.
func FilterRerankerOutput(page PageScores, threshold float64, minHeadingsCount int) ([]HeadingScore, bool) {
	if minHeadingsCount <= 0 {
		minHeadingsCount = DefaultMinHeadingsCount
	}

	if page.PageScore >= threshold {
		return page.Headings, true
	}

	var kept []HeadingScore
	for _, h := range page.Headings {
		if h.Score >= threshold {
			kept = append(kept, h)
		}
	}

	if len(kept) == 0 && len(page.Headings) > 0 {
		return nil, false
	}

	if len(kept) < minHeadingsCount && len(page.Headings) >= minHeadingsCount {
		sorted := append([]HeadingScore(nil), page.Headings...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
		return sorted[:minHeadingsCount], true
	}

	if len(kept) == 0 {
		return nil, false
	}
	return kept, true
}

// Result is the LLMReranker's per-query output.
type Result struct {
	Data                []corpus.ScoredPage
	TotalHeadingsBefore int
	TotalHeadingsAfter  int
	Thinking            string
	RawResponse         string
}

const systemPrompt = `You judge how well each candidate documentation section
answers a user's query. For every (page, heading) candidate you are given,
assign a relevance score between 0 and 1. Respond with a single JSON object
and nothing else: {"thinking": "...", "pages": [{"page_title": "...",
"page_score": 0.0, "headings": [{"heading": "...", "score": 0.0}]}]}`

type llmResponse struct {
	Thinking string `json:"thinking"`
	Pages    []struct {
		PageTitle string `json:"page_title"`
		PageScore float64 `json:"page_score"`
		Headings  []struct {
			Heading string  `json:"heading"`
			Score   float64 `json:"score"`
		} `json:"headings"`
	} `json:"pages"`
}

// Reranker runs stage 1.5.
type Reranker struct {
	Client           llm.Client
	Model            string
	MinHeadingsCount int
	Log              *logrus.Entry
}

func New(client llm.Client, model string, log *logrus.Entry) *Reranker {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Reranker{Client: client, Model: model, MinHeadingsCount: DefaultMinHeadingsCount, Log: log}
}

// Rerank scores pages against query and applies FilterRerankerOutput at
// threshold, retrying with AdjustThreshold up to maxRetries times if the
// filtered result is empty but candidates existed.
func (r *Reranker) Rerank(ctx context.Context, query string, pages []corpus.ScoredPage, threshold float64, maxRetries int) (Result, error) {
	totalBefore := 0
	for _, p := range pages {
		totalBefore += len(p.Headings)
	}
	if totalBefore == 0 {
		return Result{Data: pages, TotalHeadingsBefore: 0, TotalHeadingsAfter: 0}, nil
	}

	raw, scored, err := r.invoke(ctx, query, pages)
	if err != nil {
		return Result{}, err
	}

	out := pages
	currentThreshold := threshold
	for attempt := 0; attempt <= maxRetries; attempt++ {
		filtered := applyScores(pages, scored, currentThreshold, r.MinHeadingsCount)
		if countHeadings(filtered) > 0 || attempt == maxRetries {
			out = filtered
			break
		}
		currentThreshold = AdjustThreshold(currentThreshold)
		r.Log.WithField("threshold", currentThreshold).Info("llmrerank: relaxing threshold, no survivors")
	}

	return Result{
		Data:                out,
		TotalHeadingsBefore: totalBefore,
		TotalHeadingsAfter:  countHeadings(out),
		Thinking:            scored.Thinking,
		RawResponse:         raw,
	}, nil
}

func (r *Reranker) invoke(ctx context.Context, query string, pages []corpus.ScoredPage) (string, llmResponse, error) {
	prompt := renderCandidates(query, pages)
	raw, err := r.Client.Invoke(ctx, r.Model, systemPrompt, []llm.Message{
		{Role: "user", Content: prompt},
	}, 2048, 0.0)
	if err != nil {
		return "", llmResponse{}, fmt.Errorf("llmrerank: invoke failed: %w", err)
	}
	var parsed llmResponse
	if err := llm.ExtractJSON(raw, &parsed); err != nil {
		return raw, llmResponse{}, fmt.Errorf("llmrerank: decode response: %w", err)
	}
	return raw, parsed, nil
}

func renderCandidates(query string, pages []corpus.ScoredPage) string {
	s := "Query: " + query + "\nCandidates:\n"
	for _, p := range pages {
		s += "- page: " + p.PageTitle + "\n"
		for _, h := range p.Headings {
			s += "  - heading: " + h.Text + "\n"
		}
	}
	return s
}

func applyScores(pages []corpus.ScoredPage, scored llmResponse, threshold float64, minHeadingsCount int) []corpus.ScoredPage {
	scoreIndex := make(map[string]struct {
		pageScore float64
		headings  map[string]float64
	}, len(scored.Pages))
	for _, p := range scored.Pages {
		headings := make(map[string]float64, len(p.Headings))
		for _, h := range p.Headings {
			headings[h.Heading] = h.Score
		}
		scoreIndex[p.PageTitle] = struct {
			pageScore float64
			headings  map[string]float64
		}{pageScore: p.PageScore, headings: headings}
	}

	out := make([]corpus.ScoredPage, 0, len(pages))
	for _, page := range pages {
		sc, ok := scoreIndex[page.PageTitle]
		if !ok {
			continue
		}
		ps := PageScores{PageTitle: page.PageTitle, PageScore: sc.pageScore}
		for _, h := range page.Headings {
			ps.Headings = append(ps.Headings, HeadingScore{Heading: h.Text, Score: sc.headings[h.Text]})
		}

		kept, ok := FilterRerankerOutput(ps, threshold, minHeadingsCount)
		if !ok {
			continue
		}
		keptSet := make(map[string]float64, len(kept))
		for _, k := range kept {
			keptSet[k.Heading] = k.Score
		}
		newHeadings := make([]corpus.Heading, 0, len(kept))
		for _, h := range page.Headings {
			score, present := keptSet[h.Text]
			if !present {
				continue
			}
			s := score
			h.RerankSim = &s
			h.Source = corpus.SourceLLMReranker
			newHeadings = append(newHeadings, h)
		}
		page.Headings = newHeadings
		page.Source = corpus.SourceLLMReranker
		page.Recompute()
		out = append(out, page)
	}
	return out
}

func countHeadings(pages []corpus.ScoredPage) int {
	n := 0
	for _, p := range pages {
		n += len(p.Headings)
	}
	return n
}
