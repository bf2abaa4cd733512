package contentsearch

import (
	"regexp"
	"strings"

	"github.com/zorro-gridi/doc4llm-sub000/internal/corpus"
	"github.com/zorro-gridi/doc4llm-sub000/internal/textproc"
)

const (
	backtrackLines    = 100
	defaultMaxResults = 20
	initialContext    = 2
	maxContextSize    = 50
	expandStep        = 5
	maxWords          = 80
)

// ContentHit is one deduplicated FALLBACK_2 result.
type ContentHit struct {
	DocSet         string
	PageTitle      string
	TOCPath        string
	Heading        string
	Level          int
	RelatedContext string
}

// Searcher is the ContentSearcher (FALLBACK_2): pure in-process keyword
// search over docContent.md, heading-level deduplicated, with surrounding
// context.
type Searcher struct {
	MaxResults int
}

// NewSearcher returns a Searcher with the default global result cap.
func NewSearcher() *Searcher {
	return &Searcher{MaxResults: defaultMaxResults}
}

// Search runs FALLBACK_2 over one doc-set. It requires a non-nil pattern
// built from domain_nouns: if domain_nouns was empty, BuildKeywordPattern
// returns nil and callers should skip calling Search.
func (s *Searcher) Search(docSet corpus.DocSet, pattern *regexp.Regexp) ([]ContentHit, error) {
	if pattern == nil {
		return nil, nil
	}
	maxResults := s.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	pages, err := corpus.DiscoverPages(docSet)
	if err != nil {
		return nil, err
	}

	type key struct{ docSet, pageTitle, heading string }
	seen := make(map[key]struct{})

	var hits []ContentHit
	for _, page := range pages {
		lines, err := corpus.ReadLines(page.ContentPath)
		if err != nil {
			continue
		}
		for lineNum := 1; lineNum <= len(lines); lineNum++ {
			if !pattern.MatchString(lines[lineNum-1]) {
				continue
			}
			headingText, headingLevel, ok := findHeadingBackward(lines, lineNum, backtrackLines)
			if !ok {
				continue
			}
			k := key{docSet.Name, page.Title, headingText}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}

			ctx := extractContext(lines, lineNum, initialContext)
			hits = append(hits, ContentHit{
				DocSet:         docSet.Name,
				PageTitle:      page.Title,
				TOCPath:        page.TOCPath,
				Heading:        headingText,
				Level:          headingLevel,
				RelatedContext: ctx,
			})
			if len(hits) >= maxResults {
				return hits, nil
			}
		}
	}
	return hits, nil
}

var atxHeadingRE = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// findHeadingBackward walks upward from startLine (1-based, inclusive, so a
// matching heading line is its own section) up to maxBack lines looking
// for the nearest Markdown heading.
func findHeadingBackward(lines []string, startLine, maxBack int) (text string, level int, ok bool) {
	limit := startLine - maxBack - 1
	if limit < -1 {
		limit = -1
	}
	for i := startLine - 1; i > limit; i-- {
		if i < 0 {
			break
		}
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		m := atxHeadingRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		headingText := corpus.RemoveURLFromHeading(m[2])
		if headingText == "" {
			continue
		}
		return m[1] + " " + headingText, len(m[1]), true
	}
	return "", 0, false
}

// findHeadingBoundaries returns the 0-based [upperBound, lowerBound) window
// that context extraction must stay inside: the line after the heading
// that owns match_line, up to (exclusive) the next heading.
func findHeadingBoundaries(lines []string, matchLine int) (int, int) {
	matchIdx := matchLine - 1
	n := len(lines)

	upper := 0
	for i := matchIdx - 1; i >= 0; i-- {
		if corpus.IsHeadingLine(lines[i]) {
			upper = i + 1
			break
		}
	}
	lower := n
	for i := matchIdx + 1; i < n; i++ {
		if corpus.IsHeadingLine(lines[i]) {
			lower = i
			break
		}
	}
	return upper, lower
}

var leadingDashRE = regexp.MustCompile(`^-{3,}\s*`)

// extractContext expands ±contextSize up to ±50 in steps of 5, bounded by
// heading boundaries, until word count <= 80; if still over at the maximum
// expansion, truncate symmetrically while pinning the match line itself so
// it's never the line that gets dropped near a boundary.
func extractContext(lines []string, matchLine, contextSize int) string {
	if matchLine < 1 || matchLine > len(lines) {
		return ""
	}
	upper, lower := findHeadingBoundaries(lines, matchLine)
	matchIdx := matchLine - 1

	currentSize := contextSize
	if currentSize > maxContextSize {
		currentSize = maxContextSize
	}

	var kept []int // absolute line indices, heading lines and leading-dash already cleaned
	steps := (maxContextSize-contextSize)/expandStep + 1
	for i := 0; i < steps; i++ {
		startIdx := upper
		if matchIdx-currentSize > startIdx {
			startIdx = matchIdx - currentSize
		}
		endIdx := lower
		if matchIdx+currentSize+1 < endIdx {
			endIdx = matchIdx + currentSize + 1
		}

		kept = kept[:0]
		for idx := startIdx; idx < endIdx; idx++ {
			line := strings.TrimSpace(lines[idx])
			if corpus.IsHeadingLine(line) {
				continue
			}
			line = leadingDashRE.ReplaceAllString(line, "")
			if line == "" {
				continue
			}
			kept = append(kept, idx)
		}

		text := joinCleaned(lines, kept)
		text = cleanURLs(text)
		if countWords(text) <= maxWords {
			return text
		}
		if currentSize < maxContextSize {
			currentSize += expandStep
		} else {
			return truncateSymmetric(lines, kept, matchIdx, maxWords)
		}
	}
	return truncateSymmetric(lines, kept, matchIdx, maxWords)
}

func joinCleaned(lines []string, idxs []int) string {
	parts := make([]string, 0, len(idxs))
	for _, idx := range idxs {
		line := strings.TrimSpace(lines[idx])
		line = leadingDashRE.ReplaceAllString(line, "")
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n")
}

// truncateSymmetric drops lines alternately from the outermost kept line on
// each side until the text fits max_words, but never drops the line
// containing matchIdx: once only that line (or nothing) remains on one
// side, further trimming comes only from the other side. A naive
// alternating-removal loop that doesn't track the match line's position
// can step past it near a boundary and drop the one line the snippet
// exists to show.
func truncateSymmetric(lines []string, idxs []int, matchIdx, maxWords int) string {
	if len(idxs) == 0 {
		return ""
	}
	left, right := 0, len(idxs)-1

	matchPos := -1
	for i, idx := range idxs {
		if idx == matchIdx {
			matchPos = i
			break
		}
	}

	text := joinCleaned(lines, idxs[left:right+1])
	for left < right && countWords(cleanURLs(text)) > maxWords {
		canDropLeft := matchPos < 0 || left < matchPos
		canDropRight := matchPos < 0 || right > matchPos
		switch {
		case canDropLeft && canDropRight:
			if (left+right)%2 == 0 {
				left++
			} else {
				right--
			}
		case canDropLeft:
			left++
		case canDropRight:
			right--
		default:
			// Only the match line remains; stop even if still over budget.
			left, right = matchPos, matchPos
		}
		text = joinCleaned(lines, idxs[left:right+1])
	}
	return cleanURLs(text)
}

var (
	mdLinkRE  = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	bareURLRE = regexp.MustCompile(`https?://\S+`)
)

func cleanURLs(text string) string {
	text = mdLinkRE.ReplaceAllString(text, "$1")
	text = bareURLRE.ReplaceAllString(text, "")
	return text
}

// countWords counts words for the mixed CJK/English corpus: each CJK
// character counts as one word, and each run of Latin letters/digits counts
// as one word, matching textproc.Tokenize's notion of a "word".
func countWords(text string) int {
	return len(textproc.Tokenize(text))
}
