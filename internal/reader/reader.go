// Package reader implements stage 2, Reader: extracts the actual section
// text the upstream stages only identified by title/heading.
package reader

import (
	"fmt"
	"os"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/zorro-gridi/doc4llm-sub000/internal/corpus"
)

// LargeDocumentLineThreshold is the line count above which ExtractionResult
// flags requires_processing, signaling that a caller should chunk the
// result (via the configured text splitter) before handing it to an LLM
// context window.
const LargeDocumentLineThreshold = 400

// ExtractionResult is the Reader's output.
type ExtractionResult struct {
	Contents          []string
	DocumentCount     int
	TotalLineCount    int
	IndividualCounts  []int
	Threshold         int
	RequiresProcessing bool
}

// ExtractByTitles reads the full docContent.md of every page whose title is
// in titles, within docSet.
func ExtractByTitles(docSet corpus.DocSet, titles []string) (ExtractionResult, error) {
	wanted := make(map[string]struct{}, len(titles))
	for _, t := range titles {
		wanted[t] = struct{}{}
	}

	pages, err := corpus.DiscoverPages(docSet)
	if err != nil {
		return ExtractionResult{}, fmt.Errorf("reader: discover pages: %w", err)
	}

	var contents []string
	for _, p := range pages {
		if _, ok := wanted[p.Title]; !ok {
			continue
		}
		data, err := os.ReadFile(p.ContentPath)
		if err != nil {
			return ExtractionResult{}, fmt.Errorf("reader: read %s: %w", p.ContentPath, err)
		}
		contents = append(contents, string(data))
	}
	return buildResult(contents), nil
}

// ExtractMultiByHeadings reads docContent.md for each page and, when
// headings for that page is non-empty, slices out only the sub-regions
// between each named heading and the next heading of equal-or-higher
// level; when headings is empty for a page, the whole file is returned.
func ExtractMultiByHeadings(docSet corpus.DocSet, pageHeadings map[string][]string) (ExtractionResult, error) {
	pages, err := corpus.DiscoverPages(docSet)
	if err != nil {
		return ExtractionResult{}, fmt.Errorf("reader: discover pages: %w", err)
	}

	var contents []string
	for _, p := range pages {
		headings, wanted := pageHeadings[p.Title]
		if !wanted {
			continue
		}
		lines, err := corpus.ReadLines(p.ContentPath)
		if err != nil {
			return ExtractionResult{}, fmt.Errorf("reader: read %s: %w", p.ContentPath, err)
		}
		if len(headings) == 0 {
			contents = append(contents, strings.Join(lines, "\n"))
			continue
		}
		for _, h := range headings {
			section := extractSection(lines, h)
			if section != "" {
				contents = append(contents, section)
			}
		}
	}
	return buildResult(contents), nil
}

// extractSection returns the lines from the heading whose text (after its
// "#" markers) equals heading up to but excluding the next heading of
// equal-or-shallower level. Leading "#" markers and spaces are trimmed from
// heading first, since corpus.Heading.Text sometimes carries them.
func extractSection(lines []string, heading string) string {
	target := strings.TrimSpace(heading)
	target = strings.TrimLeft(target, "# ")

	start := -1
	startLevel := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !corpus.IsHeadingLine(trimmed) {
			continue
		}
		level := 0
		for level < len(trimmed) && trimmed[level] == '#' {
			level++
		}
		text := strings.TrimSpace(trimmed[level:])
		if text == target {
			start = i
			startLevel = level
			break
		}
	}
	if start < 0 {
		return ""
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if !corpus.IsHeadingLine(trimmed) {
			continue
		}
		level := 0
		for level < len(trimmed) && trimmed[level] == '#' {
			level++
		}
		if level <= startLevel {
			end = i
			break
		}
	}
	return strings.Join(lines[start:end], "\n")
}

func buildResult(contents []string) ExtractionResult {
	counts := make([]int, len(contents))
	total := 0
	for i, c := range contents {
		n := strings.Count(c, "\n") + 1
		counts[i] = n
		total += n
	}
	return ExtractionResult{
		Contents:          contents,
		DocumentCount:      len(contents),
		TotalLineCount:     total,
		IndividualCounts:   counts,
		Threshold:          LargeDocumentLineThreshold,
		RequiresProcessing: total > LargeDocumentLineThreshold,
	}
}

// ChunkForContextWindow splits a large extracted document into
// model-context-sized chunks using the configured Markdown-aware splitter,
// for callers that need to feed ExtractionResult.Contents into an LLM once
// RequiresProcessing is set.
func ChunkForContextWindow(text string, chunkSize, chunkOverlap int) ([]string, error) {
	splitter := textsplitter.NewMarkdownTextSplitter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)
	return splitter.SplitText(text)
}
