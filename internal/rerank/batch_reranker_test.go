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

func TestBatchReranker_TitleMatchClearsHeadings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockMatcher(ctrl)
	m.EXPECT().Rerank(gomock.Any(), "rotating secrets", "Secrets Rotation Guide").Return(0.92, nil)

	pages := []corpus.ScoredPage{{
		PageTitle: "Secrets Rotation Guide",
		Headings:  []corpus.Heading{{Text: "Step 1"}, {Text: "Step 2"}},
	}}

	b := NewBatchReranker(m)
	out, err := b.RerankPages(context.Background(), "rotating secrets", pages)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Headings)
	assert.True(t, out[0].IsPrecision)
}

func TestBatchReranker_DropsPageBelowThreshold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockMatcher(ctrl)
	m.EXPECT().Rerank(gomock.Any(), "rotating secrets", "Unrelated Page").Return(0.10, nil)
	m.EXPECT().RerankBatch(gomock.Any(), "rotating secrets", []string{"Step 1"}).Return([]float64{0.20}, nil)

	pages := []corpus.ScoredPage{{
		PageTitle: "Unrelated Page",
		Headings:  []corpus.Heading{{Text: "Step 1"}},
	}}

	b := NewBatchReranker(m)
	out, err := b.RerankPages(context.Background(), "rotating secrets", pages)
	require.NoError(t, err)
	assert.Empty(t, out)
}
