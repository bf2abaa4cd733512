package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zorro-gridi/doc4llm-sub000/internal/llm"
	"github.com/zorro-gridi/doc4llm-sub000/internal/llmrerank"
	"github.com/zorro-gridi/doc4llm-sub000/internal/optimizer"
	"github.com/zorro-gridi/doc4llm-sub000/internal/router"
	"github.com/zorro-gridi/doc4llm-sub000/internal/searcher"
)

// fakeClient returns a different canned response per call, in the order
// the Orchestrator is expected to invoke the LLM: optimizer, router, then
// the LLM reranker.
type fakeClient struct {
	responses []string
	calls     int
}

func (f *fakeClient) Invoke(ctx context.Context, model, system string, messages []llm.Message, maxTokens int, temperature float64) (string, error) {
	resp := f.responses[f.calls]
	f.calls++
	return resp, nil
}

func writeDocSet(t *testing.T, baseDir, docSetName, pageName, content, toc string) {
	t.Helper()
	pageDir := filepath.Join(baseDir, docSetName, pageName)
	require.NoError(t, os.MkdirAll(pageDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pageDir, "docContent.md"), []byte(content), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(pageDir, "docTOC.md"), []byte(toc), 0o644))
}

func TestOrchestrator_Run_EndToEnd(t *testing.T) {
	base := t.TempDir()
	writeDocSet(t, base, "widget@1.0", "rotate",
		"# Key Rotation Guide\n\nintro\n\n## Rotate keys\n\nRun widget rotate-key now.\n",
		"## Rotate keys：https://example.com/widget/rotate\n## Rotate keys again\n## Rotate keys once more\n",
	)

	fc := &fakeClient{responses: []string{
		`{"optimized_queries": ["rotate keys"], "doc_sets": [], "domain_nouns": ["key"], "predicate_verbs": [], "language": "en", "search_recommendation": {"online_suggested": false, "reason": ""}}`,
		`{"scene": "howto", "confidence": 0.9, "ambiguity": false, "coverage_need": "narrow", "reranker_threshold": 0.4}`,
		`{"thinking": "rotate keys is clearly about key rotation", "pages": [{"page_title": "Key Rotation Guide", "page_score": 0.9, "headings": [{"heading": "Rotate keys", "score": 0.9}, {"heading": "Rotate keys again", "score": 0.9}, {"heading": "Rotate keys once more", "score": 0.9}]}]}`,
	}}

	opt := optimizer.New(fc, "test-model", nil)
	rt := router.New(fc, "test-model", nil)
	sr := searcher.New(base, searcher.DefaultConfig(), nil, nil)
	lr := llmrerank.New(fc, "test-model", nil)

	orch := New(base, opt, rt, sr, lr, nil)
	result, err := orch.Run(context.Background(), "how do I rotate keys")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, router.SceneHowTo, result.Scene)
	assert.Contains(t, result.Output, "Run widget rotate-key now.")
	assert.NotEmpty(t, result.Sources)
	assert.NotEmpty(t, result.TraceID)
}

func TestOrchestrator_Run_EmptyQuery(t *testing.T) {
	orch := New(t.TempDir(), nil, nil, nil, nil, nil)
	_, err := orch.Run(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestOrchestrator_Run_ChunksOversizedPage(t *testing.T) {
	base := t.TempDir()
	var body string
	for i := 0; i < 450; i++ {
		body += "Run widget rotate-key now, and again.\n"
	}
	writeDocSet(t, base, "widget@1.0", "rotate",
		"# Key Rotation Guide\n\nintro\n\n## Rotate keys\n\n"+body,
		"## Rotate keys：https://example.com/widget/rotate\n",
	)

	fc := &fakeClient{responses: []string{
		`{"optimized_queries": ["rotate keys"], "doc_sets": [], "domain_nouns": ["key"], "predicate_verbs": [], "language": "en", "search_recommendation": {"online_suggested": false, "reason": ""}}`,
		`{"scene": "howto", "confidence": 0.9, "ambiguity": false, "coverage_need": "narrow", "reranker_threshold": 0.4}`,
		`{"thinking": "rotate keys is clearly about key rotation", "pages": [{"page_title": "Key Rotation Guide", "page_score": 0.9, "headings": [{"heading": "Rotate keys", "score": 0.9}]}]}`,
	}}

	opt := optimizer.New(fc, "test-model", nil)
	rt := router.New(fc, "test-model", nil)
	sr := searcher.New(base, searcher.DefaultConfig(), nil, nil)
	lr := llmrerank.New(fc, "test-model", nil)

	orch := New(base, opt, rt, sr, lr, nil)
	orch.ChunkSize = 200
	orch.ChunkOverlap = 20
	result, err := orch.Run(context.Background(), "how do I rotate keys")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Contains(t, result.Output, "Run widget rotate-key now")
	assert.Less(t, result.TotalLines, strings.Count(body, "\n"))
}
