package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/fastnbt/internal/config"
)

// ValidationError is one configuration problem.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Config *config.Config    `json:"config,omitempty"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// RenderText implements TextRenderer.
func (r ValidationResult) RenderText(w io.Writer) {
	if r.Valid {
		fmt.Fprintln(w, "✓ Configuration is valid")
		fmt.Fprintf(w, "  platform: %s\n", r.Config.Platform)
		fmt.Fprintf(w, "  log.level: %s\n", r.Config.Log.Level)
		fmt.Fprintf(w, "  scan.workers: %d\n", r.Config.Scan.Workers)
		return
	}
	fmt.Fprintln(w, "✗ Configuration is invalid")
	for _, e := range r.Errors {
		if e.Line > 0 {
			fmt.Fprintf(w, "  line %d:%d %s: %s\n", e.Line, e.Column, e.Field, e.Message)
		} else {
			fmt.Fprintf(w, "  %s: %s\n", e.Field, e.Message)
		}
	}
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config.cue>",
		Short: "Validate a configuration file",
		Long: `Validate a CUE configuration file against the configuration schema
and print the effective settings with defaults applied.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	cfg, err := config.Load(path)
	if err != nil {
		var ce *config.ConfigError
		if !errors.As(err, &ce) {
			return out.Error(ExitCommandError, ErrCodeConfig, err)
		}
		ve := ValidationError{Field: ce.Field, Message: ce.Message}
		if ce.Pos.IsValid() {
			ve.Line = ce.Pos.Line()
			ve.Column = ce.Pos.Column()
		}
		if err := out.Success(ValidationResult{Errors: []ValidationError{ve}}); err != nil {
			return err
		}
		return WrapExitError(ExitFailure, "configuration is invalid", err)
	}

	out.VerboseLog("Loaded %s", path)
	return out.Success(ValidationResult{Valid: true, Config: &cfg})
}
