package crawl

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Visited set sizing for one pagination chain.
const (
	visitedExpectedURLs      = 1000
	visitedFalsePositiveRate = 0.01
)

// VisitedSet records the URLs already traversed in one chain. It only
// grows. The Bloom filter answers most "not visited" checks; an exact set
// confirms every positive so a false positive never ends a chain early.
//
// VisitedSet is not safe for concurrent use; a chain is walked by a single
// goroutine.
type VisitedSet struct {
	seen *bloom.BloomFilter
	urls map[string]struct{}
}

// NewVisitedSet creates an empty VisitedSet.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{
		seen: bloom.NewWithEstimates(visitedExpectedURLs, visitedFalsePositiveRate),
		urls: make(map[string]struct{}),
	}
}

// Add marks rawURL as visited. URLs differing only by fragment are the same page.
func (v *VisitedSet) Add(rawURL string) {
	key := visitKey(rawURL)
	v.seen.AddString(key)
	v.urls[key] = struct{}{}
}

// Has reports whether rawURL was visited.
func (v *VisitedSet) Has(rawURL string) bool {
	key := visitKey(rawURL)
	if !v.seen.TestString(key) {
		return false
	}
	_, ok := v.urls[key]
	return ok
}

// Len returns the number of distinct URLs visited.
func (v *VisitedSet) Len() int {
	return len(v.urls)
}

func visitKey(rawURL string) string {
	if idx := strings.Index(rawURL, "#"); idx != -1 {
		return rawURL[:idx]
	}
	return rawURL
}
