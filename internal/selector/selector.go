package selector

import (
	"log/slog"

	"github.com/roach88/fastnbt/internal/convert"
	"github.com/roach88/fastnbt/internal/metrics"
	"github.com/roach88/fastnbt/internal/nbt"
	"github.com/roach88/fastnbt/internal/world"
)

// Predicate decides whether an entity is selected.
type Predicate func(world.Entity) bool

// Option configures Build and Filter.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records evaluations on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func newOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Plan describes how a pattern will be evaluated against a registry.
type Plan struct {
	// Fields are the pattern's top-level keys in sorted order.
	Fields []string

	// Degraded is set when some field has no extractor.
	Degraded bool

	// Unknown is the first field, in sorted order, with no extractor.
	Unknown string
}

// Path names the evaluation path the plan takes.
func (p Plan) Path() string {
	if p.Degraded {
		return metrics.PathFallback
	}
	return metrics.PathFast
}

// Inspect resolves the pattern's keys against reg.
func Inspect(reg *convert.Registry, expected nbt.Compound) Plan {
	plan := Plan{Fields: expected.SortedKeys()}
	for _, key := range plan.Fields {
		if !reg.Has(key) {
			plan.Degraded = true
			plan.Unknown = key
			break
		}
	}
	return plan
}

// Build compiles a predicate for expected.
//
// If any key of expected has no extractor in reg, the result is fallback
// itself: it is called with the entity and its answer returned unchanged,
// so fallback must already account for invert. No extractor runs on that
// path. Otherwise the predicate extracts exactly the pattern's fields,
// omitting those whose extractor returns nil, and reports
// SubsetMatch(expected, extracted, true) != invert.
//
// The pattern is copied, so later changes to expected do not affect the
// predicate. Build panics if fallback is nil and is needed.
func Build(reg *convert.Registry, expected nbt.Compound, invert bool, fallback Predicate, opts ...Option) Predicate {
	o := newOptions(opts)
	plan := Inspect(reg, expected)

	if plan.Degraded {
		if fallback == nil {
			panic("selector: pattern field " + plan.Unknown + " has no extractor and no fallback was given")
		}
		o.logger.Debug("field has no extractor, using full serialization",
			"field", plan.Unknown,
			"fields", len(plan.Fields))
		o.metrics.RecordBuild(metrics.PathFallback)
		return observe(fallback, o.metrics)
	}

	type field struct {
		name string
		fn   convert.Extractor
	}
	fields := make([]field, len(plan.Fields))
	for i, name := range plan.Fields {
		fn, _ := reg.Lookup(name)
		fields[i] = field{name: name, fn: fn}
	}
	pattern := expected.Clone()
	if pattern == nil {
		pattern = nbt.Compound{}
	}

	o.logger.Debug("predicate uses field extractors",
		"fields", plan.Fields,
		"invert", invert)
	o.metrics.RecordBuild(metrics.PathFast)

	m := o.metrics
	return func(e world.Entity) bool {
		found := make(nbt.Compound, len(fields))
		for _, f := range fields {
			if v := f.fn(e); v != nil {
				found[f.name] = v
			}
		}
		matched := nbt.SubsetMatch(pattern, found, true) != invert
		m.RecordExtractions(len(fields))
		m.RecordEvaluation(metrics.PathFast, matched)
		return matched
	}
}

// observe wraps fallback to count its evaluations. Without metrics the
// fallback is returned as is.
func observe(fallback Predicate, m *metrics.Metrics) Predicate {
	if m == nil {
		return fallback
	}
	return func(e world.Entity) bool {
		matched := fallback(e)
		m.RecordEvaluation(metrics.PathFallback, matched)
		return matched
	}
}

// FullSave adapts a saver's authoritative comparison into a Predicate for
// use as a fallback.
func FullSave(s world.Saver, expected nbt.Compound, invert bool) Predicate {
	return Predicate(s.Predicate(expected.Clone(), invert))
}
