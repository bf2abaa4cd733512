// Package pipeline wires the retrieval stages into one top-level
// Orchestrator: QueryOptimizer, QueryRouter, Searcher, LLMReranker, Reader,
// and SceneOutput.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/zorro-gridi/doc4llm-sub000/internal/bloom"
	"github.com/zorro-gridi/doc4llm-sub000/internal/corpus"
	"github.com/zorro-gridi/doc4llm-sub000/internal/llmrerank"
	"github.com/zorro-gridi/doc4llm-sub000/internal/optimizer"
	"github.com/zorro-gridi/doc4llm-sub000/internal/output"
	"github.com/zorro-gridi/doc4llm-sub000/internal/reader"
	"github.com/zorro-gridi/doc4llm-sub000/internal/router"
	"github.com/zorro-gridi/doc4llm-sub000/internal/searcher"
)

// MaxLLMRerankRetries bounds AdjustThreshold's relaxation loop per request.
const MaxLLMRerankRetries = 3

// DefaultChunkSize and DefaultChunkOverlap bound how much of an
// over-threshold document's text the Reader's Markdown splitter keeps once
// that single document crosses LargeDocumentLineThreshold, so one oversized
// page can't crowd out the rest of the result.
const (
	DefaultChunkSize    = 2000
	DefaultChunkOverlap = 200
)

// Orchestrator runs one query through every pipeline stage.
type Orchestrator struct {
	BaseDir      string
	Optimizer    *optimizer.Optimizer
	Router       *router.Router
	Searcher     *searcher.Searcher
	LLMReranker  *llmrerank.Reranker
	ChunkSize    int
	ChunkOverlap int
	Log          *logrus.Entry
}

// New builds an Orchestrator from its already-constructed stage objects.
func New(baseDir string, opt *optimizer.Optimizer, rt *router.Router, sr *searcher.Searcher, lr *llmrerank.Reranker, log *logrus.Entry) *Orchestrator {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Orchestrator{
		BaseDir:      baseDir,
		Optimizer:    opt,
		Router:       rt,
		Searcher:     sr,
		LLMReranker:  lr,
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
		Log:          log,
	}
}

// Run executes the full pipeline for rawQuery. It always returns a
// best-effort DocRAGResult, even alongside a non-nil error, so a caller
// that only wants to pick an exit code doesn't have to special-case the
// zero value.
func (o *Orchestrator) Run(ctx context.Context, rawQuery string) (DocRAGResult, error) {
	traceID := uuid.NewString()
	log := o.Log.WithField("trace_id", traceID)
	result := DocRAGResult{TraceID: traceID}

	if rawQuery == "" {
		return result, ErrEmptyQuery
	}

	optResult, err := o.Optimizer.Optimize(ctx, rawQuery)
	if err != nil {
		return result, fmt.Errorf("pipeline: optimizer stage: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return o.timedOut(result, err)
	}

	routeResult, err := o.Router.Route(ctx, rawQuery)
	if err != nil {
		return result, fmt.Errorf("pipeline: router stage: %w", err)
	}
	result.Scene = routeResult.Scene
	if err := ctx.Err(); err != nil {
		return o.timedOut(result, err)
	}

	o.Searcher.Config.DomainNouns = optResult.DomainNouns
	o.Searcher.Config.PredicateVerbs = optResult.PredicateVerbs

	searchResult, err := o.Searcher.Search(ctx, optResult.QueriesOrFallback(rawQuery), optResult.DocSets)
	if err != nil {
		switch {
		case errors.Is(err, searcher.ErrLanguageMismatch):
			return result, fmt.Errorf("%w: %v", ErrLanguageMismatch, err)
		case errors.Is(err, searcher.ErrNoDocSets):
			return result, fmt.Errorf("%w: %v", ErrNoDocSets, err)
		default:
			return result, fmt.Errorf("pipeline: searcher stage: %w", err)
		}
	}
	if !searchResult.Success {
		log.Warn("pipeline: search produced no usable results")
		return result, ErrNoResults
	}
	if err := ctx.Err(); err != nil {
		return o.timedOut(result, err)
	}

	rerankResult, err := o.LLMReranker.Rerank(ctx, rawQuery, searchResult.Pages, routeResult.RerankerThreshold, MaxLLMRerankRetries)
	if err != nil {
		return result, fmt.Errorf("pipeline: llm reranker stage: %w", err)
	}
	result.Thinking = rerankResult.Thinking
	result.RawResponse = rerankResult.RawResponse
	if len(rerankResult.Data) == 0 {
		return result, ErrNoResults
	}
	if err := ctx.Err(); err != nil {
		return o.timedOut(result, err)
	}

	extracted, sources, err := o.extract(rerankResult.Data)
	if err != nil {
		return result, fmt.Errorf("pipeline: reader stage: %w", err)
	}

	var titles []string
	var bodies []string
	for i, p := range rerankResult.Data {
		if i < len(extracted.Contents) {
			titles = append(titles, p.PageTitle)
			bodies = append(bodies, extracted.Contents[i])
		}
	}

	result.Output = output.Render(routeResult.Scene, titles, bodies, sources)
	result.Sources = sources
	result.DocumentsExtracted = extracted.DocumentCount
	result.TotalLines = extracted.TotalLineCount
	result.RequiresProcessing = extracted.RequiresProcessing
	result.Success = true
	return result, nil
}

// extract reads each page's surviving-heading sections via the Reader,
// grouped by doc-set, and assembles the bloom-deduplicated Sources list
// from each page's TOC anchors.
func (o *Orchestrator) extract(pages []corpus.ScoredPage) (reader.ExtractionResult, []SourceRef, error) {
	byDocSet := make(map[string]map[string][]string)
	order := make(map[string][]string)
	for _, p := range pages {
		if byDocSet[p.DocSet] == nil {
			byDocSet[p.DocSet] = make(map[string][]string)
		}
		var headings []string
		for _, h := range p.Headings {
			headings = append(headings, h.Text)
		}
		byDocSet[p.DocSet][p.PageTitle] = headings
		order[p.DocSet] = append(order[p.DocSet], p.PageTitle)
	}

	var allContents []string
	var sources []SourceRef
	anchorSeen := bloom.New(len(pages)*4, 0.01)

	for docSetName, pageHeadings := range byDocSet {
		ds := corpus.DocSet{Name: docSetName, Dir: filepath.Join(o.BaseDir, docSetName)}
		res, err := reader.ExtractMultiByHeadings(ds, pageHeadings)
		if err != nil {
			return reader.ExtractionResult{}, nil, err
		}
		for _, content := range res.Contents {
			allContents = append(allContents, o.fitContextWindow(content))
		}

		for _, title := range order[docSetName] {
			toc, headings, err := readAnchor(ds, title)
			if err != nil || len(headings) == 0 {
				continue
			}
			for _, h := range headings {
				if h.Anchor == "" || !anchorSeen.AddIfAbsent(h.Anchor) {
					continue
				}
				sources = append(sources, SourceRef{Title: title, SourceURL: h.Anchor, LocalPath: toc})
			}
		}
	}

	total := 0
	counts := make([]int, len(allContents))
	for i, c := range allContents {
		n := strings.Count(c, "\n") + 1
		counts[i] = n
		total += n
	}
	return reader.ExtractionResult{
		Contents:           allContents,
		DocumentCount:      len(allContents),
		TotalLineCount:     total,
		IndividualCounts:   counts,
		RequiresProcessing: total > reader.LargeDocumentLineThreshold,
	}, sources, nil
}

// fitContextWindow chunks content via the Reader's Markdown splitter and
// keeps only the first chunk once a single extracted document crosses
// LargeDocumentLineThreshold on its own, so one oversized page can't push
// every other source out of the rendered output. Short documents pass
// through untouched.
func (o *Orchestrator) fitContextWindow(content string) string {
	if strings.Count(content, "\n")+1 <= reader.LargeDocumentLineThreshold {
		return content
	}
	chunks, err := reader.ChunkForContextWindow(content, o.ChunkSize, o.ChunkOverlap)
	if err != nil {
		o.Log.WithError(err).Warn("pipeline: chunking oversized document failed, keeping full text")
		return content
	}
	if len(chunks) == 0 {
		return content
	}
	return chunks[0]
}

func readAnchor(ds corpus.DocSet, pageTitle string) (string, []corpus.TOCHeading, error) {
	pages, err := corpus.DiscoverPages(ds)
	if err != nil {
		return "", nil, err
	}
	for _, p := range pages {
		if p.Title != pageTitle || !p.HasTOC {
			continue
		}
		headings, err := corpus.ParseTOC(p.TOCPath)
		return p.TOCPath, headings, err
	}
	return "", nil, nil
}

func (o *Orchestrator) timedOut(partial DocRAGResult, cause error) (DocRAGResult, error) {
	o.Log.WithField("trace_id", partial.TraceID).Warn("pipeline: deadline exceeded, returning partial result")
	partial.Success = false
	return partial, fmt.Errorf("pipeline: request deadline exceeded: %w", cause)
}
