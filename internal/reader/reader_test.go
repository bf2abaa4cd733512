package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zorro-gridi/doc4llm-sub000/internal/corpus"
)

func writePage(t *testing.T, dir, name, content string) {
	t.Helper()
	pageDir := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(pageDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pageDir, corpus.ContentFileName), []byte(content), 0o644))
}

func TestExtractByTitles(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "a", "# Page A\n\nbody a\n")
	writePage(t, dir, "b", "# Page B\n\nbody b\n")

	res, err := ExtractByTitles(corpus.DocSet{Name: "x", Dir: dir}, []string{"Page A"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Contains(t, res.Contents[0], "body a")
	assert.Equal(t, 1, res.DocumentCount)
}

func TestExtractMultiByHeadings_SlicesSection(t *testing.T) {
	dir := t.TempDir()
	content := "# Page A\n\nintro\n\n## Section One\n\nfirst section body\n\n## Section Two\n\nsecond section body\n"
	writePage(t, dir, "a", content)

	res, err := ExtractMultiByHeadings(corpus.DocSet{Name: "x", Dir: dir}, map[string][]string{
		"Page A": {"Section One"},
	})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Contains(t, res.Contents[0], "first section body")
	assert.NotContains(t, res.Contents[0], "second section body")
}

func TestExtractMultiByHeadings_EmptyHeadingsReturnsWholeFile(t *testing.T) {
	dir := t.TempDir()
	content := "# Page A\n\nintro\n\n## Section One\n\nbody\n"
	writePage(t, dir, "a", content)

	res, err := ExtractMultiByHeadings(corpus.DocSet{Name: "x", Dir: dir}, map[string][]string{
		"Page A": {},
	})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Contains(t, res.Contents[0], "# Page A")
	assert.Contains(t, res.Contents[0], "body")
}

func TestBuildResult_RequiresProcessingAboveThreshold(t *testing.T) {
	var big string
	for i := 0; i < LargeDocumentLineThreshold+10; i++ {
		big += "line\n"
	}
	res := buildResult([]string{big})
	assert.True(t, res.RequiresProcessing)
}

func TestChunkForContextWindow_SplitsOversizedText(t *testing.T) {
	var big string
	for i := 0; i < 50; i++ {
		big += "## Section\n\nsome body text that repeats across many headings.\n\n"
	}
	chunks, err := ChunkForContextWindow(big, 200, 20)
	require.NoError(t, err)
	assert.Greater(t, len(chunks), 1)
}
