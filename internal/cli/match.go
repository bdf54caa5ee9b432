package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/fastnbt/internal/config"
	"github.com/roach88/fastnbt/internal/metrics"
	"github.com/roach88/fastnbt/internal/nbt"
	"github.com/roach88/fastnbt/internal/selector"
	"github.com/roach88/fastnbt/internal/store"
	"github.com/roach88/fastnbt/internal/world"
)

// MatchOptions holds flags for the match command.
type MatchOptions struct {
	*RootOptions
	Pattern  string
	Invert   bool
	Database string
	Workers  int
	Metrics  bool
}

// MatchResult is the outcome of one query over a world.
type MatchResult struct {
	Pattern string   `json:"pattern"`
	Invert  bool     `json:"invert"`
	Path    string   `json:"path"`
	Fields  []string `json:"fields"`
	Unknown string   `json:"unknown,omitempty"`
	Matched []string `json:"matched"`
	Total   int      `json:"total"`
	RunID   string   `json:"run_id,omitempty"`
}

// RenderText implements TextRenderer.
func (r MatchResult) RenderText(w io.Writer) {
	fmt.Fprintf(w, "Pattern: %s", r.Pattern)
	if r.Invert {
		fmt.Fprint(w, " (inverted)")
	}
	fmt.Fprintln(w)
	if r.Unknown != "" {
		fmt.Fprintf(w, "Path:    %s (no extractor for %s)\n", r.Path, r.Unknown)
	} else {
		fmt.Fprintf(w, "Path:    %s\n", r.Path)
	}
	fmt.Fprintf(w, "Matched: %d of %d\n", len(r.Matched), r.Total)
	for _, name := range r.Matched {
		fmt.Fprintf(w, "  %s\n", name)
	}
	if r.RunID != "" {
		fmt.Fprintf(w, "Run:     %s\n", r.RunID)
	}
}

// NewMatchCommand creates the match command.
func NewMatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "match <world.yaml>",
		Short: "Select entities whose saved state contains a pattern",
		Long: `Select the entities of a world file whose saved state contains the
given pattern, as @e[nbt={...}] does.

The pattern is a YAML flow mapping using the tag fixture syntax
(!b !s !i !l !f !d for numeric types). Namespaced ids inside flow
collections must be quoted.

Examples:
  fastnbt match world.yaml --pattern '{Health: !f 20}'
  fastnbt match world.yaml --pattern '{Tags: [boss]}' --invert
  fastnbt match world.yaml --pattern '{Inventory: [{id: "minecraft:torch"}]}' --db runs.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Pattern, "pattern", "p", "", "pattern to match (required)")
	_ = cmd.MarkFlagRequired("pattern")
	cmd.Flags().BoolVar(&opts.Invert, "invert", false, "select entities that do not match")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database (overrides store.path)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "concurrent scan workers (overrides scan.workers)")
	cmd.Flags().BoolVar(&opts.Metrics, "metrics", false, "print evaluation metrics to stderr")

	return cmd
}

func runMatch(ctx context.Context, opts *MatchOptions, worldPath string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := opts.formatter(cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		return out.Error(ExitCommandError, ErrCodeConfig, err)
	}
	logger := opts.logger(cmd, cfg)

	expected, err := nbt.ParseCompoundYAML([]byte(opts.Pattern))
	if err != nil {
		return out.Error(ExitCommandError, ErrCodePattern, err)
	}
	w, err := world.LoadFile(worldPath)
	if err != nil {
		return out.Error(ExitCommandError, ErrCodeWorld, err)
	}
	reg, err := cfg.Registry()
	if err != nil {
		return out.Error(ExitCommandError, ErrCodeConfig, err)
	}

	m := metrics.New()
	saver := cfg.Saver()
	plan := selector.Inspect(reg, expected)
	pred := selector.Build(reg, expected, opts.Invert,
		selector.FullSave(saver, expected, opts.Invert),
		selector.WithLogger(logger), selector.WithMetrics(m))

	workers := opts.Workers
	if workers <= 0 {
		workers = cfg.Scan.Workers
	}
	selected, err := selector.Filter(ctx, w.Entities(), pred, workers,
		selector.WithLogger(logger), selector.WithMetrics(m))
	if err != nil {
		return out.Error(ExitCommandError, ErrCodeGeneric, err)
	}

	result := MatchResult{
		Pattern: expected.String(),
		Invert:  opts.Invert,
		Path:    plan.Path(),
		Fields:  plan.Fields,
		Unknown: plan.Unknown,
		Matched: make([]string, len(selected)),
		Total:   len(w.Entities()),
	}
	matches := make([]store.Match, len(selected))
	for i, e := range selected {
		result.Matched[i] = w.Name(e)
		matches[i] = store.Match{UUID: e.Data().UUID, Name: w.Name(e)}
	}

	if dbPath := databasePath(opts.Database, cfg); dbPath != "" {
		id, err := recordRun(ctx, dbPath, store.QueryRun{
			Pattern: expected,
			Invert:  opts.Invert,
			Path:    plan.Path(),
			Unknown: plan.Unknown,
			Total:   result.Total,
			Matches: matches,
		})
		if err != nil {
			return out.Error(ExitCommandError, ErrCodeStore, err)
		}
		result.RunID = id
		out.VerboseLog("Recorded run %s in %s", id, dbPath)
	}

	if opts.Metrics {
		writeMetrics(out.GetErrWriter(), m)
	}
	return out.Success(result)
}

// databasePath prefers the flag over the configured store path.
func databasePath(flag string, cfg config.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.Store.Path
}

// recordRun writes run at the store's next seq and returns its id.
func recordRun(ctx context.Context, path string, run store.QueryRun) (string, error) {
	st, err := store.Open(path)
	if err != nil {
		return "", err
	}
	defer st.Close()

	if run.Seq, err = st.NextSeq(ctx); err != nil {
		return "", err
	}
	return st.WriteQueryRun(ctx, run)
}

// writeMetrics prints every counter and histogram sample on m's registry.
func writeMetrics(w io.Writer, m *metrics.Metrics) {
	families, err := m.Registry().Gather()
	if err != nil {
		fmt.Fprintf(w, "metrics unavailable: %v\n", err)
		return
	}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			var labels []string
			for _, lp := range metric.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			switch {
			case metric.GetCounter() != nil:
				fmt.Fprintf(w, "%s %g\n", name, metric.GetCounter().GetValue())
			case metric.GetHistogram() != nil:
				h := metric.GetHistogram()
				fmt.Fprintf(w, "%s count=%d sum=%gs\n", name, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
}
