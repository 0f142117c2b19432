package analyzer

import (
	"time"

	"github.com/charmbracelet/log"
)

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the structured logger receiving call-failure and
// decode-failure diagnostics. Defaults to the package default logger.
func WithLogger(l *log.Logger) Option {
	return func(a *Analyzer) { a.log = l }
}

// WithChunkSize sets the chunk byte limit used when ExtractCharacters is
// called with a non-positive chunkSize. Defaults to DefaultChunkSize.
func WithChunkSize(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.chunkSize = n
		}
	}
}

// WithConcurrency dispatches up to n chunk calls at once. Chunk order in the
// merged result is preserved regardless, so this never changes observable
// output. Defaults to sequential dispatch.
func WithConcurrency(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithTimeout bounds each backend call. Zero leaves calls bounded only by the
// backend's own timeout.
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) { a.timeout = d }
}

// WithFuzzyMerge switches character reconciliation to the alias-aware fuzzy
// merge with the given similarity threshold in (0,1]. The default is the
// exact-name merge.
func WithFuzzyMerge(threshold float64) Option {
	return func(a *Analyzer) { a.fuzzy = threshold }
}

// WithCache coalesces identical in-flight prompts and reuses responses for
// ttl. Off by default.
func WithCache(ttl time.Duration) Option {
	return func(a *Analyzer) { a.cacheTTL = &ttl }
}

// WithPrompts replaces the stock prompt templates.
func WithPrompts(p Prompts) Option {
	return func(a *Analyzer) { a.prompts = p }
}
