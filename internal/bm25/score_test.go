package bm25

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreCorpus_RanksMatchingDocHigher(t *testing.T) {
	docs := [][]string{
		{"rotate", "keys", "safely"},
		{"billing", "invoice", "faq"},
	}
	query := []string{"rotate", "keys"}

	scores := ScoreCorpus(docs, query, 1.2, 0.75)
	assert.Greater(t, scores[0], scores[1])
	assert.Greater(t, scores[0], 0.0)
	assert.Equal(t, 0.0, scores[1])
}

func TestScoreCorpus_EmptyInputs(t *testing.T) {
	assert.Equal(t, []float64{}, ScoreCorpus(nil, []string{"x"}, 1.2, 0.75))
	scores := ScoreCorpus([][]string{{"a"}}, nil, 1.2, 0.75)
	assert.Equal(t, []float64{0}, scores)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1.2, cfg.K1)
	assert.Equal(t, 0.75, cfg.B)
	assert.Equal(t, 0.25, cfg.ThresholdHeadings)
	assert.Equal(t, 0.70, cfg.ThresholdPrecision)
	assert.Equal(t, 0.60, cfg.ThresholdPageTitle)
}
