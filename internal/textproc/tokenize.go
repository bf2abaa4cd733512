// Package textproc implements the tokenization, language-detection, and
// rerank-preprocessing rules shared by the BM25 recall and reranker stages.
package textproc

import (
	"strings"
	"unicode"
)

// CJK reports whether r falls in the CJK Unified Ideographs block
// (U+4E00-U+9FFF).
func CJK(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

// Tokenize lowercases text and splits on non-alphanumeric runes. Each CJK
// character becomes its own token so that BM25 over mixed Chinese/English
// TOCs scores individual ideographs rather than whole unsegmented runs.
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	tokens := make([]string, 0, len(text)/4+1)
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			tokens = append(tokens, buf.String())
			buf.Reset()
		}
	}
	for _, r := range text {
		switch {
		case CJK(r):
			flush()
			tokens = append(tokens, string(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			buf.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return tokens
}
