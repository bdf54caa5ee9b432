package cli

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/fastnbt/internal/metrics"
	"github.com/roach88/fastnbt/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Entity   string // optional - UUID of an entity to filter runs by
}

// TraceRun is one recorded query run.
type TraceRun struct {
	ID      string   `json:"id"`
	Seq     int64    `json:"seq"`
	Pattern string   `json:"pattern"`
	Invert  bool     `json:"invert"`
	Path    string   `json:"path"`
	Unknown string   `json:"unknown,omitempty"`
	Total   int      `json:"total"`
	Matched []string `json:"matched"`
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	Runs  []TraceRun `json:"runs"`
	Stats TraceStats `json:"stats"`
}

// TraceStats holds summary statistics for the trace.
type TraceStats struct {
	Runs      int `json:"runs"`
	Fast      int `json:"fast"`
	Fallback  int `json:"fallback"`
	Snapshots int `json:"snapshots"`
}

// RenderText implements TextRenderer.
func (r TraceResult) RenderText(w io.Writer) {
	if len(r.Runs) == 0 {
		fmt.Fprintln(w, "No query runs recorded.")
		return
	}
	for _, run := range r.Runs {
		invert := ""
		if run.Invert {
			invert = " !"
		}
		fmt.Fprintf(w, "[seq=%d] %s%s  path=%s  %d/%d\n",
			run.Seq, run.Pattern, invert, run.Path, len(run.Matched), run.Total)
		for _, name := range run.Matched {
			fmt.Fprintf(w, "    %s\n", name)
		}
	}
	fmt.Fprintf(w, "\n%d run(s): %d fast, %d fallback; %d snapshot(s)\n",
		r.Stats.Runs, r.Stats.Fast, r.Stats.Fallback, r.Stats.Snapshots)
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "List recorded query runs",
		Long: `List the query runs recorded in a store, in seq order, with the
entities each run selected.

Examples:
  fastnbt trace --db runs.db
  fastnbt trace --db runs.db --entity 0d4c5b9e-...
  fastnbt trace --db runs.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Entity, "entity", "", "only runs that selected this entity UUID")

	return cmd
}

func runTrace(ctx context.Context, opts *TraceOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := opts.formatter(cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return out.Error(ExitCommandError, ErrCodeStore, err)
	}
	defer st.Close()

	runs, err := st.ReadQueryRuns(ctx)
	if err != nil {
		return out.Error(ExitCommandError, ErrCodeStore, err)
	}

	if opts.Entity != "" {
		id, err := uuid.Parse(opts.Entity)
		if err != nil {
			return out.Error(ExitCommandError, ErrCodeGeneric, fmt.Errorf("invalid entity uuid: %w", err))
		}
		keep, err := st.ReadEntityRuns(ctx, id)
		if err != nil {
			return out.Error(ExitCommandError, ErrCodeStore, err)
		}
		runs = slices.DeleteFunc(runs, func(r store.QueryRun) bool {
			return !slices.Contains(keep, r.ID)
		})
	}

	snapshots, err := st.ReadSnapshots(ctx)
	if err != nil {
		return out.Error(ExitCommandError, ErrCodeStore, err)
	}

	result := TraceResult{
		Runs:  make([]TraceRun, len(runs)),
		Stats: TraceStats{Runs: len(runs), Snapshots: len(snapshots)},
	}
	for i, run := range runs {
		result.Runs[i] = traceRun(run)
		if run.Path == metrics.PathFallback {
			result.Stats.Fallback++
		} else {
			result.Stats.Fast++
		}
	}
	return out.Success(result)
}

func traceRun(run store.QueryRun) TraceRun {
	matched := make([]string, len(run.Matches))
	for i, m := range run.Matches {
		matched[i] = m.Name
	}
	return TraceRun{
		ID:      run.ID,
		Seq:     run.Seq,
		Pattern: run.Pattern.String(),
		Invert:  run.Invert,
		Path:    run.Path,
		Unknown: run.Unknown,
		Total:   run.Total,
		Matched: matched,
	}
}
