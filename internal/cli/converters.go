package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// ConvertersResult lists the field extractors of the active configuration.
type ConvertersResult struct {
	Platform string   `json:"platform"`
	Groups   []string `json:"groups"`
	Fields   []string `json:"fields"`
}

// RenderText implements TextRenderer.
func (r ConvertersResult) RenderText(w io.Writer) {
	fmt.Fprintf(w, "Platform: %s\n", r.Platform)
	fmt.Fprintf(w, "Groups:   %v\n", r.Groups)
	fmt.Fprintf(w, "Fields (%d):\n", len(r.Fields))
	for _, f := range r.Fields {
		fmt.Fprintf(w, "  %s\n", f)
	}
}

// NewConvertersCommand creates the converters command.
func NewConvertersCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "converters",
		Short: "List registered field extractors",
		Long: `List the top-level fields that have a registered extractor under the
active configuration. Patterns using only these fields are evaluated
without a full save.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConverters(rootOpts, cmd)
		},
	}
}

func runConverters(opts *RootOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		return out.Error(ExitCommandError, ErrCodeConfig, err)
	}
	groups, err := cfg.ConverterGroups()
	if err != nil {
		return out.Error(ExitCommandError, ErrCodeConfig, err)
	}
	reg, err := cfg.Registry()
	if err != nil {
		return out.Error(ExitCommandError, ErrCodeConfig, err)
	}

	result := ConvertersResult{
		Platform: cfg.Platform,
		Groups:   make([]string, len(groups)),
		Fields:   reg.Names(),
	}
	for i, g := range groups {
		result.Groups[i] = string(g)
	}
	return out.Success(result)
}
