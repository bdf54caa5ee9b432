package selector

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/fastnbt/internal/world"
)

// minChunk is the smallest batch handed to one goroutine.
const minChunk = 64

// Filter returns the entities pred selects, in input order. Up to workers
// goroutines evaluate disjoint ranges of entities concurrently; pred must
// be safe for concurrent use, which every Build result is.
func Filter(ctx context.Context, entities []world.Entity, pred Predicate, workers int, opts ...Option) ([]world.Entity, error) {
	o := newOptions(opts)
	start := time.Now()
	defer o.metrics.RecordScan(start)

	if workers < 1 {
		workers = 1
	}
	chunk := (len(entities) + workers - 1) / workers
	if chunk < minChunk {
		chunk = minChunk
	}

	hits := make([]bool, len(entities))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < len(entities); lo += chunk {
		hi := min(lo+chunk, len(entities))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				hits[i] = pred(entities[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []world.Entity
	for i, hit := range hits {
		if hit {
			out = append(out, entities[i])
		}
	}
	o.logger.Debug("scan complete",
		"entities", len(entities),
		"selected", len(out),
		"workers", workers)
	return out, nil
}
