package rerank

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zorro-gridi/doc4llm-sub000/internal/corpus"
	"github.com/zorro-gridi/doc4llm-sub000/internal/rerank/mocks"
)

func TestHeadingReranker_FiltersByThreshold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockMatcher(ctrl)
	m.EXPECT().
		RerankBatch(gomock.Any(), "how to rotate keys", []string{"Key rotation", "Unrelated section"}).
		Return([]float64{0.90, 0.40}, nil)

	page := corpus.ScoredPage{
		PageTitle: "Security",
		Headings: []corpus.Heading{
			{Text: "Key rotation", Level: 2},
			{Text: "Unrelated section", Level: 2},
		},
	}

	r := NewHeadingReranker(m)
	err := r.Rerank(context.Background(), "how to rotate keys", &page)
	require.NoError(t, err)

	require.Len(t, page.Headings, 1)
	assert.Equal(t, "Key rotation", page.Headings[0].Text)
	assert.True(t, page.Headings[0].IsPrecision)
	assert.Equal(t, corpus.SourceReranker, page.Source)
}

func TestHeadingReranker_TopK(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockMatcher(ctrl)
	m.EXPECT().
		RerankBatch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]float64{0.70, 0.95, 0.80}, nil)

	page := corpus.ScoredPage{
		Headings: []corpus.Heading{
			{Text: "a"}, {Text: "b"}, {Text: "c"},
		},
	}

	r := NewHeadingReranker(m)
	r.TopK = 2
	err := r.Rerank(context.Background(), "q", &page)
	require.NoError(t, err)
	require.Len(t, page.Headings, 2)
	assert.Equal(t, "b", page.Headings[0].Text)
	assert.Equal(t, "c", page.Headings[1].Text)
}

func TestCosineSimilarity(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{1, 0}
	assert.InDelta(t, 1.0, CosineSimilarity(a, b), 1e-9)

	c := []float32{0, 1}
	assert.InDelta(t, 0.0, CosineSimilarity(a, c), 1e-9)

	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
}
