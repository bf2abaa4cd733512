package llmrerank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdjustThreshold(t *testing.T) {
	assert.InDelta(t, 0.60, AdjustThreshold(0.70), 1e-9)
	assert.InDelta(t, 0.0, AdjustThreshold(0.05), 1e-9)
	assert.InDelta(t, 0.0, AdjustThreshold(0.0), 1e-9)
	assert.InDelta(t, 0.33, AdjustThreshold(0.428), 1e-9)
}

func TestFilterRerankerOutput_PageScorePasses(t *testing.T) {
	page := PageScores{
		PageTitle: "Guide",
		PageScore: 0.9,
		Headings:  []HeadingScore{{Heading: "a", Score: 0.1}, {Heading: "b", Score: 0.05}},
	}
	kept, ok := FilterRerankerOutput(page, 0.5, 1)
	assert.True(t, ok)
	assert.Len(t, kept, 2)
}

func TestFilterRerankerOutput_FiltersHeadingsIndividually(t *testing.T) {
	page := PageScores{
		PageTitle: "Guide",
		PageScore: 0.2,
		Headings:  []HeadingScore{{Heading: "a", Score: 0.9}, {Heading: "b", Score: 0.1}},
	}
	kept, ok := FilterRerankerOutput(page, 0.5, 1)
	assert.True(t, ok)
	assert.Len(t, kept, 1)
	assert.Equal(t, "a", kept[0].Heading)
}

func TestFilterRerankerOutput_DropsPageWhenEmpty(t *testing.T) {
	page := PageScores{
		PageTitle: "Guide",
		PageScore: 0.1,
		Headings:  []HeadingScore{{Heading: "a", Score: 0.1}, {Heading: "b", Score: 0.2}},
	}
	_, ok := FilterRerankerOutput(page, 0.5, 1)
	assert.False(t, ok)
}

func TestFilterRerankerOutput_GuaranteesMinHeadings(t *testing.T) {
	page := PageScores{
		PageTitle: "Guide",
		PageScore: 0.1,
		Headings: []HeadingScore{
			{Heading: "a", Score: 0.40},
			{Heading: "b", Score: 0.35},
			{Heading: "c", Score: 0.10},
		},
	}
	kept, ok := FilterRerankerOutput(page, 0.5, 2)
	assert.True(t, ok)
	assert.Len(t, kept, 2)
	assert.Equal(t, "a", kept[0].Heading)
	assert.Equal(t, "b", kept[1].Heading)
}
