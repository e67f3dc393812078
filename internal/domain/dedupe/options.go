// Package dedupe tracks which (name, team) pairs a batch has already
// ingested so repeated rows can be reported as duplicates.
package dedupe

const defaultMaxSize = 10_000

// Option applies a configuration option to the InMemoryDeduper.
type Option func(*inMemoryDeduper)

// WithMaxSize sets the maximum number of keys to keep. Oldest keys are
// evicted first. maxSize <= 0 disables the bound.
func WithMaxSize(maxSize int) Option {
	return func(d *inMemoryDeduper) {
		d.maxSize = maxSize
	}
}
