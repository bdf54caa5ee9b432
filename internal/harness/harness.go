package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/fastnbt/internal/convert"
	"github.com/roach88/fastnbt/internal/nbt"
	"github.com/roach88/fastnbt/internal/selector"
	"github.com/roach88/fastnbt/internal/store"
	"github.com/roach88/fastnbt/internal/world"
)

// scanWorkers is the concurrency used when selecting entities.
const scanWorkers = 4

// Harness is the scenario execution engine.
type Harness struct {
	store    *store.Store
	world    *world.World
	saver    world.Saver
	registry *convert.Registry
	logger   *slog.Logger
}

// Option configures Run.
type Option func(*Harness)

// WithLogger sets the logger. Defaults to discarding output.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		if l != nil {
			h.logger = l
		}
	}
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Build the world and the platform's registry
// 2. Record a snapshot of every entity
// 3. Evaluate every query through both predicate paths
// 4. Record each query run and read the trace back from the store
//
// A returned error means the scenario could not run; check failures are
// reported in Result.Errors.
func Run(ctx context.Context, scenario *Scenario, opts ...Option) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	w, err := world.Build(scenario.Entities)
	if err != nil {
		return nil, fmt.Errorf("failed to build entities: %w", err)
	}
	reg, err := scenario.Registry()
	if err != nil {
		return nil, fmt.Errorf("failed to build registry: %w", err)
	}

	h := &Harness{
		store:    st,
		world:    w,
		saver:    scenario.Saver(),
		registry: reg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	for _, opt := range opts {
		opt(h)
	}

	if err := h.snapshot(ctx); err != nil {
		return nil, fmt.Errorf("failed to record snapshots: %w", err)
	}

	result := NewResult()
	for i, q := range scenario.Queries {
		if err := h.executeQuery(ctx, i, q, result); err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
	}

	runs, err := st.ReadQueryRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read query runs: %w", err)
	}
	for _, run := range runs {
		result.Trace = append(result.Trace, traceFromRun(run))
	}
	return result, nil
}

// snapshot records every entity's full saved state.
func (h *Harness) snapshot(ctx context.Context) error {
	seq, err := h.store.NextSeq(ctx)
	if err != nil {
		return err
	}
	for _, e := range h.world.Entities() {
		_, err := h.store.WriteSnapshot(ctx, store.Snapshot{
			UUID:  e.Data().UUID,
			Name:  h.world.Name(e),
			Kind:  e.Kind(),
			State: h.saver.SaveWithID(e),
			Seq:   seq,
		})
		if err != nil {
			return fmt.Errorf("entity %q: %w", h.world.Name(e), err)
		}
	}
	return nil
}

// executeQuery evaluates one query through the extractor predicate and the
// full save, checks it, and records the run.
func (h *Harness) executeQuery(ctx context.Context, index int, q Query, result *Result) error {
	pattern := q.Pattern.String()
	fallback := selector.FullSave(h.saver, q.Pattern, q.Invert)
	fast := selector.Build(h.registry, q.Pattern, q.Invert, fallback, selector.WithLogger(h.logger))
	plan := selector.Inspect(h.registry, q.Pattern)

	for _, e := range h.world.Entities() {
		if err := assertAgreement(index, pattern, h.world.Name(e), fast(e), fallback(e)); err != nil {
			result.AddError(err.Error())
		}
	}

	selected, err := selector.Filter(ctx, h.world.Entities(), fast, scanWorkers, selector.WithLogger(h.logger))
	if err != nil {
		return err
	}
	matches := make([]store.Match, len(selected))
	names := make([]string, len(selected))
	for i, e := range selected {
		names[i] = h.world.Name(e)
		matches[i] = store.Match{UUID: e.Data().UUID, Name: names[i]}
	}

	if err := assertSelection(index, pattern, q.Expect, names); err != nil {
		result.AddError(err.Error())
	}
	if err := assertDegraded(index, pattern, q.Degraded, plan.Degraded, plan.Unknown); err != nil {
		result.AddError(err.Error())
	}

	seq, err := h.store.NextSeq(ctx)
	if err != nil {
		return err
	}
	id, err := h.store.WriteQueryRun(ctx, store.QueryRun{
		Pattern: q.Pattern,
		Invert:  q.Invert,
		Path:    plan.Path(),
		Unknown: plan.Unknown,
		Total:   len(h.world.Entities()),
		Seq:     seq,
		Matches: matches,
	})
	if err != nil {
		return err
	}

	h.logger.Info("query evaluated",
		"query", index,
		"pattern", pattern,
		"path", plan.Path(),
		"selected", len(selected),
		"run_id", id,
	)
	return nil
}

// traceFromRun converts a stored run into a trace entry.
func traceFromRun(run store.QueryRun) QueryTrace {
	matched := make([]string, len(run.Matches))
	for i, m := range run.Matches {
		matched[i] = m.Name
	}
	return QueryTrace{
		Pattern: run.Pattern.String(),
		Invert:  run.Invert,
		Path:    run.Path,
		Unknown: run.Unknown,
		Matched: matched,
		Total:   run.Total,
		Seq:     run.Seq,
	}
}
