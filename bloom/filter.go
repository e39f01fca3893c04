// Package bloom provides content-hash deduplication using Bloom filters.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter wraps a Bloom filter for remembering filing content hashes.
// It is safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a content hash.
func (f *Filter) Add(hash string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(hash)
}

// Test returns true if the hash might have been added.
// False positives are possible; false negatives are not.
func (f *Filter) Test(hash string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(hash)
}

// TestAndAdd reports whether the hash might have been added before, and
// adds it in the same step.
func (f *Filter) TestAndAdd(hash string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAddString(hash)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}
