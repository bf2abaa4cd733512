// Package router implements stage 0b, QueryRouter: classifies the query
// into one of seven output scenes and derives the reranker threshold the
// rest of the pipeline should use for this request.
package router

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/zorro-gridi/doc4llm-sub000/internal/llm"
)

// Scene is one of the seven output-rendering scenes.
type Scene string

const (
	SceneHowTo         Scene = "howto"
	SceneConceptual    Scene = "conceptual"
	SceneTroubleshoot  Scene = "troubleshoot"
	SceneReference     Scene = "reference"
	SceneComparison    Scene = "comparison"
	SceneListing       Scene = "listing"
	SceneUnclassified  Scene = "unclassified"
)

const (
	minRerankerThreshold = 0.30
	maxRerankerThreshold = 0.80
)

// Result is the routing decision for one query.
type Result struct {
	Scene            Scene   `json:"scene"`
	Confidence       float64 `json:"confidence"`
	Ambiguity        bool    `json:"ambiguity"`
	CoverageNeed     string  `json:"coverage_need"`
	RerankerThreshold float64 `json:"reranker_threshold"`
}

const systemPrompt = `You classify a documentation search query into exactly one
of these scenes: howto, conceptual, troubleshoot, reference, comparison,
listing, unclassified. Also estimate your confidence (0-1), whether the
query is ambiguous between two scenes, how broad the needed coverage is
("narrow" or "broad"), and a reranker_threshold between 0.30 and 0.80
reflecting how strict the embedding rerank pass should be: a narrow,
high-confidence query should use a tighter (higher) threshold, a broad or
ambiguous one a looser (lower) threshold. Respond with a single JSON object
and nothing else: {"scene": "...", "confidence": 0.0, "ambiguity": false,
"coverage_need": "narrow", "reranker_threshold": 0.5}`

// Router runs stage 0b.
type Router struct {
	Client llm.Client
	Model  string
	Log    *logrus.Entry
}

func New(client llm.Client, model string, log *logrus.Entry) *Router {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Router{Client: client, Model: model, Log: log}
}

// Route classifies rawQuery. A malformed LLM response falls back to
// SceneUnclassified with the midpoint reranker threshold, rather than
// failing the whole request, consistent with the optimizer's degrade
// behavior.
func (r *Router) Route(ctx context.Context, rawQuery string) (Result, error) {
	raw, err := r.Client.Invoke(ctx, r.Model, systemPrompt, []llm.Message{
		{Role: "user", Content: rawQuery},
	}, 256, 0.0)
	if err != nil {
		return Result{}, fmt.Errorf("router: invoke failed: %w", err)
	}

	var res Result
	if err := llm.ExtractJSON(raw, &res); err != nil {
		r.Log.WithError(err).Warn("router: degrading to unclassified scene after malformed response")
		return Result{
			Scene:             SceneUnclassified,
			Ambiguity:         true,
			CoverageNeed:      "broad",
			RerankerThreshold: (minRerankerThreshold + maxRerankerThreshold) / 2,
		}, nil
	}
	res.RerankerThreshold = clampThreshold(res.RerankerThreshold)
	return res, nil
}

func clampThreshold(t float64) float64 {
	if t < minRerankerThreshold {
		return minRerankerThreshold
	}
	if t > maxRerankerThreshold {
		return maxRerankerThreshold
	}
	return t
}
