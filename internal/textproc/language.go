package textproc

import "strings"

// DefaultLangThreshold is the CJK-character ratio above which a text (or the
// aggregate of several texts) is classified as Chinese. Deliberately high
// (90%) so mixed technical English text containing the odd Chinese term or
// product name is not misrouted to the Chinese embedding model.
const DefaultLangThreshold = 0.9

// Lang is the two-letter language classification used across the pipeline.
type Lang string

const (
	LangZH Lang = "zh"
	LangEN Lang = "en"
)

// CJKRatio returns the fraction of non-space runes in text that fall in the
// CJK Unified Ideographs block. It is order-independent: concatenating the
// same runes in any order yields the same ratio, which is what makes
// DetectLanguage stable under concatenation order.
func CJKRatio(text string) float64 {
	var cjk, total int
	for _, r := range text {
		if r == ' ' || r == '\n' || r == '\t' || r == '\r' {
			continue
		}
		total++
		if CJK(r) {
			cjk++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(cjk) / float64(total)
}

// DetectLanguage classifies text as zh when its CJK ratio is at or above
// threshold, en otherwise.
func DetectLanguage(text string, threshold float64) Lang {
	if CJKRatio(text) >= threshold {
		return LangZH
	}
	return LangEN
}

// DetectLanguageDefault uses DefaultLangThreshold.
func DetectLanguageDefault(text string) Lang {
	return DetectLanguage(text, DefaultLangThreshold)
}

// AggregateCJKRatio computes the CJK ratio over the concatenation of texts.
// It is used by the Matcher backend-selection rule and is
// concatenation-order independent by construction.
func AggregateCJKRatio(texts []string) float64 {
	return CJKRatio(strings.Join(texts, ""))
}
