package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON_FencedBlock(t *testing.T) {
	raw := "Here is the result:\n```json\n{\"scene\": \"howto\", \"confidence\": 0.8}\n```\nThanks."
	var out struct {
		Scene      string  `json:"scene"`
		Confidence float64 `json:"confidence"`
	}
	require.NoError(t, ExtractJSON(raw, &out))
	assert.Equal(t, "howto", out.Scene)
	assert.InDelta(t, 0.8, out.Confidence, 1e-9)
}

func TestExtractJSON_BareBraces(t *testing.T) {
	raw := "sure, {\"optimized_queries\": [\"a\", \"b\"]} done"
	var out struct {
		OptimizedQueries []string `json:"optimized_queries"`
	}
	require.NoError(t, ExtractJSON(raw, &out))
	assert.Equal(t, []string{"a", "b"}, out.OptimizedQueries)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	var out map[string]any
	err := ExtractJSON("no json here at all", &out)
	assert.Error(t, err)
}
