// Package bm25 implements Okapi BM25 scoring over per-page TOC headings
// (IDF = ln(1 + (N-df+0.5)/(df+0.5)), term-saturation numerator/
// denominator), as a reusable per-corpus scorer rather than a persisted
// index, since the corpus is rescanned on every request.
package bm25

import "math"

// Config holds the tunable BM25 and thresholding parameters.
type Config struct {
	K1                 float64
	B                  float64
	ThresholdHeadings  float64
	ThresholdPrecision float64
	ThresholdPageTitle float64
	MinHeadings        int
}

// DefaultConfig returns the scorer's default tunables.
func DefaultConfig() Config {
	return Config{
		K1:                 1.2,
		B:                  0.75,
		ThresholdHeadings:  0.25,
		ThresholdPrecision: 0.70,
		ThresholdPageTitle: 0.60,
		MinHeadings:        1,
	}
}

// ScoreCorpus scores every document in docs (already tokenized) against
// queryTokens using Okapi BM25 with the given k1/b, treating docs as the
// entire corpus for df/avgdl purposes — this is what makes headings within
// one page comparable to each other but not across pages.
func ScoreCorpus(docs [][]string, queryTokens []string, k1, b float64) []float64 {
	n := len(docs)
	scores := make([]float64, n)
	if n == 0 || len(queryTokens) == 0 {
		return scores
	}

	df := make(map[string]int)
	totalLen := 0
	docLens := make([]int, n)
	for i, d := range docs {
		docLens[i] = len(d)
		totalLen += len(d)
		seen := make(map[string]struct{}, len(d))
		for _, t := range d {
			if _, ok := seen[t]; !ok {
				df[t]++
				seen[t] = struct{}{}
			}
		}
	}
	avgLen := float64(totalLen) / float64(n)
	if avgLen == 0 {
		avgLen = 1
	}

	qCounts := make(map[string]int, len(queryTokens))
	for _, t := range queryTokens {
		qCounts[t]++
	}

	for i, d := range docs {
		tf := make(map[string]int, len(d))
		for _, t := range d {
			tf[t]++
		}
		docLen := float64(docLens[i])

		var score float64
		for term, qf := range qCounts {
			dfTerm, ok := df[term]
			if !ok || dfTerm == 0 {
				continue
			}
			tfTerm := float64(tf[term])
			if tfTerm == 0 {
				continue
			}
			idf := math.Log(1 + (float64(n)-float64(dfTerm)+0.5)/(float64(dfTerm)+0.5))
			numerator := tfTerm * (k1 + 1)
			denominator := tfTerm + k1*(1-b+b*(docLen/avgLen))
			score += idf * (numerator / denominator) * float64(qf)
		}
		scores[i] = score
	}
	return scores
}
