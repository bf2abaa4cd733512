package searcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDocSet(t *testing.T, baseDir, docSetName string, pages map[string]string, tocs map[string]string) {
	t.Helper()
	docSetDir := filepath.Join(baseDir, docSetName)
	for page, content := range pages {
		pageDir := filepath.Join(docSetDir, page)
		require.NoError(t, os.MkdirAll(pageDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(pageDir, "docContent.md"), []byte(content), 0o644))
		if toc, ok := tocs[page]; ok {
			require.NoError(t, os.WriteFile(filepath.Join(pageDir, "docTOC.md"), []byte(toc), 0o644))
		}
	}
}

func TestSearcher_Search_BM25Only(t *testing.T) {
	base := t.TempDir()
	writeDocSet(t, base, "widget@1.0",
		map[string]string{
			"rotate": "# Key Rotation Guide\n\nHow to rotate keys safely.\n",
			"unrelated": "# Billing FAQ\n\nHow invoices work.\n",
		},
		map[string]string{
			"rotate":    "## Rotate keys\n## Rotate keys again\n## Rotate keys once more\n",
			"unrelated": "## Invoices\n## Payment methods\n",
		},
	)

	s := New(base, DefaultConfig(), nil, nil)
	res, err := s.Search(context.Background(), []string{"rotate keys"}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Pages)
	for _, p := range res.Pages {
		assert.NotEmpty(t, p.Headings)
	}
}

func TestSearcher_Search_NoDocSets(t *testing.T) {
	base := t.TempDir()
	s := New(base, DefaultConfig(), nil, nil)
	_, err := s.Search(context.Background(), []string{"anything"}, []string{"missing@1.0"})
	assert.ErrorIs(t, err, ErrNoDocSets)
}

func TestSearcher_Search_LanguageMismatch(t *testing.T) {
	base := t.TempDir()
	writeDocSet(t, base, "widget@1.0",
		map[string]string{"zh": "# 中文指南\n\n中文内容在这里测试测试。\n"},
		map[string]string{"zh": "## 中文小节标题测试内容\n## 另一个中文小节标题\n"},
	)

	s := New(base, DefaultConfig(), nil, nil)
	_, err := s.Search(context.Background(), []string{"rotate the keys please now"}, nil)
	assert.ErrorIs(t, err, ErrLanguageMismatch)
}
