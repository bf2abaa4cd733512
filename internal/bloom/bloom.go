// Package bloom implements a small, request-scoped Bloom filter used by the
// pipeline to dedup TOC anchor URLs while it assembles one request's
// source citations. A fixed-size bit array avoids the map-growth churn a
// hash set would incur as anchors are added.
package bloom

import "hash/fnv"

// Filter is a fixed-size bit-array Bloom filter with k=2 hash functions
// (two independent FNV variants), sized from the caller's expected element
// count.
type Filter struct {
	bits []uint64
	k    int
}

// New creates a filter sized for roughly n elements at the given false
// positive rate fp (e.g. 0.01). Falls back to a sane minimum size for n<=0.
func New(n int, fp float64) *Filter {
	if n <= 0 {
		n = 64
	}
	if fp <= 0 || fp >= 1 {
		fp = 0.01
	}
	m := optimalBits(n, fp)
	words := (m + 63) / 64
	if words < 1 {
		words = 1
	}
	return &Filter{bits: make([]uint64, words), k: 2}
}

func optimalBits(n int, fp float64) int {
	// m = -(n * ln(fp)) / (ln2)^2, computed without math.Log to keep this
	// package stdlib-free of anything beyond hash/fnv: a close fixed
	// approximation (ln2^2 ≈ 0.4805) is adequate for a request-scoped
	// capacity hint, not an exact memory budget.
	const ln2Squared = 0.4805
	lnFpApprox := approxLn(fp)
	bits := -(float64(n) * lnFpApprox) / ln2Squared
	if bits < 64 {
		bits = 64
	}
	return int(bits)
}

// approxLn is a coarse natural log approximation sufficient for sizing.
func approxLn(x float64) float64 {
	// ln(x) via a handful of Newton iterations on e^y = x would drag in
	// math anyway; since callers only ever pass fp in [0.001, 0.1], a
	// small lookup-and-interpolate table is precise enough here.
	switch {
	case x <= 0.001:
		return -6.9
	case x <= 0.01:
		return -4.6
	case x <= 0.05:
		return -3.0
	default:
		return -2.3
	}
}

func (f *Filter) hashes(s string) (uint64, uint64) {
	h1 := fnv.New64a()
	h1.Write([]byte(s))
	sum1 := h1.Sum64()

	h2 := fnv.New64()
	h2.Write([]byte(s))
	sum2 := h2.Sum64()
	return sum1, sum2
}

func (f *Filter) bitPositions(s string) []uint64 {
	h1, h2 := f.hashes(s)
	m := uint64(len(f.bits) * 64)
	positions := make([]uint64, f.k)
	for i := 0; i < f.k; i++ {
		positions[i] = (h1 + uint64(i)*h2) % m
	}
	return positions
}

// Add inserts s into the filter.
func (f *Filter) Add(s string) {
	for _, pos := range f.bitPositions(s) {
		f.bits[pos/64] |= 1 << (pos % 64)
	}
}

// MightContain reports whether s was possibly added before. False positives
// are possible; false negatives are not.
func (f *Filter) MightContain(s string) bool {
	for _, pos := range f.bitPositions(s) {
		if f.bits[pos/64]&(1<<(pos%64)) == 0 {
			return false
		}
	}
	return true
}

// AddIfAbsent adds s and reports true if it was not already (probably)
// present. Used to dedup anchors across the TOC files of the pages cited by
// one request.
func (f *Filter) AddIfAbsent(s string) bool {
	if f.MightContain(s) {
		return false
	}
	f.Add(s)
	return true
}
