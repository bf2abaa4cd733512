package contentsearch

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zorro-gridi/doc4llm-sub000/internal/corpus"
)

func writeContentPage(t *testing.T, dir, name, content string) {
	t.Helper()
	pageDir := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(pageDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pageDir, corpus.ContentFileName), []byte(content), 0o644))
}

func TestSearcher_Search_FindsHeadingAndDedups(t *testing.T) {
	dir := t.TempDir()
	docSetDir := filepath.Join(dir, "widget@1.0")
	require.NoError(t, os.MkdirAll(docSetDir, 0o755))

	content := "# Widget Guide\n\n## Rotating keys\n\nTo rotate a key, run widget rotate-key now.\nThis invalidates the old key immediately.\n\n## Other section\n\nNothing relevant here.\n"
	writeContentPage(t, docSetDir, "rotate", content)

	pattern := regexp.MustCompile(`(?i)rotate`)
	s := NewSearcher()
	hits, err := s.Search(corpus.DocSet{Name: "widget@1.0", Dir: docSetDir}, pattern)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "## Rotating keys", hits[0].Heading)
	assert.Contains(t, hits[0].RelatedContext, "rotate")
}

func TestSearcher_Search_NilPatternReturnsNothing(t *testing.T) {
	s := NewSearcher()
	hits, err := s.Search(corpus.DocSet{Name: "x"}, nil)
	require.NoError(t, err)
	assert.Nil(t, hits)
}

func TestSearcher_Search_CapsAtMaxResults(t *testing.T) {
	dir := t.TempDir()
	docSetDir := filepath.Join(dir, "widget@1.0")
	require.NoError(t, os.MkdirAll(docSetDir, 0o755))

	var content string
	for i := 0; i < 5; i++ {
		content += "## Section\n\nmatch line\n\n"
	}
	// Distinct headings so dedup doesn't collapse them, to exercise the cap.
	content = ""
	for i := 0; i < 5; i++ {
		content += "## Section " + string(rune('A'+i)) + "\n\nmatch line here\n\n"
	}
	writeContentPage(t, docSetDir, "page", content)

	pattern := regexp.MustCompile(`match`)
	s := &Searcher{MaxResults: 2}
	hits, err := s.Search(corpus.DocSet{Name: "widget@1.0", Dir: docSetDir}, pattern)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestBuildKeywordPattern(t *testing.T) {
	assert.Nil(t, BuildKeywordPattern(nil))
	p := BuildKeywordPattern([]string{"foo", "bar.baz"})
	require.NotNil(t, p)
	assert.True(t, p.MatchString("this has FOO in it"))
	assert.True(t, p.MatchString("bar.baz literal"))
	assert.False(t, p.MatchString("barXbaz")) // dot is escaped, not a wildcard
}

func TestExtractContext_PinsMatchLineUnderTruncation(t *testing.T) {
	lines := []string{
		"## Heading",
		"",
	}
	// Build a body far exceeding 80 words on both sides of the match.
	for i := 0; i < 60; i++ {
		lines = append(lines, "filler word number "+string(rune('a'+(i%26))))
	}
	matchLineIdx := len(lines)
	lines = append(lines, "THEMATCH appears right here in this line")
	for i := 0; i < 60; i++ {
		lines = append(lines, "trailing filler word "+string(rune('a'+(i%26))))
	}

	ctx := extractContext(lines, matchLineIdx+1, initialContext)
	assert.Contains(t, ctx, "THEMATCH", "match line must survive symmetric truncation")
}
