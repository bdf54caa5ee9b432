package testutil

import (
	"sync/atomic"

	"github.com/roach88/fastnbt/internal/convert"
	"github.com/roach88/fastnbt/internal/nbt"
	"github.com/roach88/fastnbt/internal/world"
)

// CountingExtractor wraps an extractor and counts its invocations.
type CountingExtractor struct {
	fn    convert.Extractor
	calls atomic.Int64
}

// Count wraps fn.
func Count(fn convert.Extractor) *CountingExtractor {
	return &CountingExtractor{fn: fn}
}

// Constant returns a counting extractor that always yields t.
func Constant(t nbt.Tag) *CountingExtractor {
	return Count(func(world.Entity) nbt.Tag { return t })
}

// Extract runs the wrapped extractor. Use it as the convert.Extractor.
func (c *CountingExtractor) Extract(e world.Entity) nbt.Tag {
	c.calls.Add(1)
	return c.fn(e)
}

// Calls returns the number of invocations so far.
func (c *CountingExtractor) Calls() int64 {
	return c.calls.Load()
}

// CountingPredicate wraps a boolean predicate and counts its invocations.
type CountingPredicate struct {
	fn    func(world.Entity) bool
	calls atomic.Int64
}

// CountPredicate wraps fn.
func CountPredicate(fn func(world.Entity) bool) *CountingPredicate {
	return &CountingPredicate{fn: fn}
}

// Match runs the wrapped predicate.
func (c *CountingPredicate) Match(e world.Entity) bool {
	c.calls.Add(1)
	return c.fn(e)
}

// Calls returns the number of invocations so far.
func (c *CountingPredicate) Calls() int64 {
	return c.calls.Load()
}
