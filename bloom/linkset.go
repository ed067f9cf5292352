// Package bloom provides probabilistic link deduplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// LinkSet remembers links seen during one queue fill.
// False positives are possible at the configured rate; false negatives are not.
type LinkSet struct {
	f *bloom.BloomFilter
}

// NewLinkSet creates a LinkSet sized for n expected links
// with the given false positive rate.
func NewLinkSet(n uint, fpRate float64) *LinkSet {
	if n == 0 {
		n = 1
	}
	return &LinkSet{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records the link and reports whether it was new.
func (s *LinkSet) Add(link string) bool {
	return !s.f.TestAndAddString(link)
}

// Has reports whether the link may have been added.
func (s *LinkSet) Has(link string) bool {
	return s.f.TestString(link)
}
