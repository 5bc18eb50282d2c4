// Package blackboard holds the shared, read-mostly context snapshot an
// actor injects into its states and abilities. Snapshots are replaced
// wholesale, never deep-merged, so consumers observe a consistent view
// for the duration of a tick
package blackboard

import "log/slog"

// Blackboard is an identifier-to-value snapshot. The zero value is not
// usable; construct through New
type Blackboard struct {
	values map[string]any
	logger *slog.Logger
}

// Option configures a Blackboard at construction
type Option func(*Blackboard)

// WithLogger sets the logger used to report type-mismatched reads
func WithLogger(logger *slog.Logger) Option {
	return func(b *Blackboard) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New builds a snapshot over the given values. The map is taken as-is;
// callers must not mutate it after handing it over
func New(values map[string]any, opts ...Option) *Blackboard {
	b := &Blackboard{
		values: values,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Has reports whether key is present in the snapshot
func (b *Blackboard) Has(key string) bool {
	if b == nil {
		return false
	}
	_, ok := b.values[key]
	return ok
}

// Len returns the number of entries in the snapshot
func (b *Blackboard) Len() int {
	if b == nil {
		return 0
	}
	return len(b.values)
}

// Keys returns the snapshot's identifiers in unspecified order
func (b *Blackboard) Keys() []string {
	if b == nil {
		return nil
	}
	keys := make([]string, 0, len(b.values))
	for k := range b.values {
		keys = append(keys, k)
	}
	return keys
}

// Value fetches key with an expected-type check. A missing key returns
// the fallback silently; a type mismatch returns the fallback and logs,
// never panics. Nil-safe so states can read before the first snapshot
// is supplied
func Value[T any](b *Blackboard, key string, fallback T) T {
	if b == nil {
		return fallback
	}
	raw, ok := b.values[key]
	if !ok {
		return fallback
	}
	typed, ok := raw.(T)
	if !ok {
		b.logger.Warn("blackboard type mismatch",
			"key", key,
			"stored", raw,
			"expected", fallback)
		return fallback
	}
	return typed
}
