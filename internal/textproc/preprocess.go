package textproc

import (
	"regexp"
	"strings"
)

// EnglishStem applies a small set of plural-suffix reductions so the
// preprocessor can match "hook" against "hooks", "policy" against
// "policies", and so on. It is intentionally not a real stemmer
// (no Porter/Snowball), just this fixed suffix list.
func EnglishStem(word string) string {
	suffixes := []string{"ies", "ves", "ied", "es", "s"}
	for _, suf := range suffixes {
		if strings.HasSuffix(word, suf) && len(word) > len(suf)+2 {
			switch suf {
			case "ies":
				if !strings.HasSuffix(word, "aies") && !strings.HasSuffix(word, "eies") {
					return word[:len(word)-3] + "y"
				}
			case "ves":
				return word[:len(word)-3] + "f"
			case "ied":
				if !strings.HasSuffix(word, "aied") && !strings.HasSuffix(word, "eied") {
					return word[:len(word)-3] + "y"
				}
			default:
				return word[:len(word)-len(suf)]
			}
		}
	}
	return word
}

// ContainsDomainNoun reports whether text contains at least one of
// domainNouns. CJK nouns are matched by bare substring; ASCII nouns are
// matched by stem (and by raw substring, since a stem match is a superset
// check on the lowercased text, not a tokenized one).
func ContainsDomainNoun(text string, domainNouns []string) bool {
	if text == "" || len(domainNouns) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	for _, noun := range domainNouns {
		nounLower := strings.ToLower(noun)
		if nounLower == "" {
			continue
		}
		if hasCJK(nounLower) {
			if strings.Contains(lower, nounLower) {
				return true
			}
			continue
		}
		stem := EnglishStem(nounLower)
		if strings.Contains(lower, stem) || strings.Contains(lower, nounLower) {
			return true
		}
	}
	return false
}

func hasCJK(s string) bool {
	for _, r := range s {
		if CJK(r) {
			return true
		}
	}
	return false
}

// ProtectedKeywords returns the intersection of skipedKeywords and
// domainNouns (case-insensitive), i.e. terms that must never be stripped by
// preprocessing even if they also appear in skipedKeywords or
// predicateVerbs.
func ProtectedKeywords(skipedKeywords, domainNouns []string) []string {
	domainSet := make(map[string]struct{}, len(domainNouns))
	for _, n := range domainNouns {
		domainSet[strings.ToLower(n)] = struct{}{}
	}
	var out []string
	seen := make(map[string]struct{})
	for _, k := range skipedKeywords {
		lk := strings.ToLower(k)
		if _, ok := domainSet[lk]; ok {
			if _, dup := seen[lk]; !dup {
				out = append(out, k)
				seen[lk] = struct{}{}
			}
		}
	}
	return out
}

// PreprocessForRerank applies the verb-stripping rule: if text contains a
// domain noun, it is returned byte-identical. Otherwise every predicate
// verb is stripped from it, except verbs that are also protected keywords.
// ASCII verbs are removed at word boundaries; CJK verbs by bare substring.
// Whitespace is then collapsed and trimmed.
//
// PreprocessForRerank is idempotent: a second pass over already-processed
// text either still contains a domain noun (no-op) or no longer contains
// any predicate verb to strip (no-op).
func PreprocessForRerank(text string, domainNouns, predicateVerbs, protected []string) string {
	if text == "" {
		return text
	}
	if ContainsDomainNoun(text, domainNouns) {
		return text
	}
	if len(predicateVerbs) == 0 {
		return text
	}
	protectedSet := make(map[string]struct{}, len(protected))
	for _, p := range protected {
		protectedSet[strings.ToLower(p)] = struct{}{}
	}

	out := text
	for _, verb := range predicateVerbs {
		if verb == "" {
			continue
		}
		if _, blocked := protectedSet[strings.ToLower(verb)]; blocked {
			continue
		}
		if hasCJK(verb) {
			out = strings.ReplaceAll(out, verb, "")
			// Case-insensitive CJK substring match is rare in practice
			// (CJK has no case), but keep the lowercase form reachable too.
			if lv := strings.ToLower(verb); lv != verb {
				out = strings.ReplaceAll(out, lv, "")
			}
			continue
		}
		pattern := `(?i)\b` + regexp.QuoteMeta(verb) + `\b`
		re := regexp.MustCompile(pattern)
		out = re.ReplaceAllString(out, "")
	}
	out = collapseWhitespace(out)
	return out
}

var wsRE = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return strings.TrimSpace(wsRE.ReplaceAllString(s, " "))
}

// FilterSkippedKeywords removes every occurrence of an unprotected skipped
// keyword from query (case-insensitive), then collapses whitespace. Used by
// the Searcher before recall.
func FilterSkippedKeywords(query string, skipedKeywords, protected []string) string {
	protectedSet := make(map[string]struct{}, len(protected))
	for _, p := range protected {
		protectedSet[strings.ToLower(p)] = struct{}{}
	}
	out := query
	for _, kw := range skipedKeywords {
		if kw == "" {
			continue
		}
		if _, blocked := protectedSet[strings.ToLower(kw)]; blocked {
			continue
		}
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(kw))
		out = re.ReplaceAllString(out, "")
	}
	return collapseWhitespace(out)
}
