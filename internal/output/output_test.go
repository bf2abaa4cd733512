package output

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zorro-gridi/doc4llm-sub000/internal/router"
)

func TestRender_IncludesCitationsAndSources(t *testing.T) {
	out := Render(router.SceneHowTo,
		[]string{"Rotating keys"},
		[]string{"Run widget rotate-key now."},
		[]Source{{Title: "Widget Guide", SourceURL: "https://example.com/widget"}},
	)

	assert.Contains(t, out, "## Steps")
	assert.Contains(t, out, "[1] Rotating keys")
	assert.Contains(t, out, "Run widget rotate-key now.")
	assert.Contains(t, out, "## Sources")
	assert.Contains(t, out, "[Widget Guide](https://example.com/widget)")
}

func TestRender_UnknownSceneFallsBackToUnclassified(t *testing.T) {
	out := Render(router.Scene("nonsense"), nil, nil, nil)
	assert.Contains(t, out, "## Answer")
}

func TestRender_NoSourcesOmitsBlock(t *testing.T) {
	out := Render(router.SceneReference, []string{"x"}, []string{"y"}, nil)
	assert.NotContains(t, out, "## Sources")
}
