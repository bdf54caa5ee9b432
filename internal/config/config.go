// Package config loads fastnbt configuration written in CUE.
//
// A configuration file is unified with the embedded #Config schema, which
// supplies defaults and rejects unknown fields:
//
//	platform: "neoforge"
//	converters: groups: ["base", "living", "neoforge"]
//	log: level: "debug"
//	scan: workers: 8
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/fastnbt/internal/convert"
	"github.com/roach88/fastnbt/internal/world"
)

//go:embed schema.cue
var schemaSource string

// Platforms.
const (
	PlatformVanilla  = "vanilla"
	PlatformNeoForge = "neoforge"
)

// Config is the decoded configuration.
type Config struct {
	Platform   string           `json:"platform"`
	Converters ConvertersConfig `json:"converters"`
	Log        LogConfig        `json:"log"`
	Scan       ScanConfig       `json:"scan"`
	Store      StoreConfig      `json:"store"`
}

// ConvertersConfig selects built-in extractor groups.
type ConvertersConfig struct {
	Groups []string `json:"groups,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `json:"level"`
}

// ScanConfig configures concurrent entity scans.
type ScanConfig struct {
	Workers int `json:"workers"`
}

// StoreConfig configures the SQLite store.
type StoreConfig struct {
	Path string `json:"path"`
}

// ConfigError is a configuration problem with its source position.
type ConfigError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *ConfigError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsConfigError reports whether err is, or wraps, a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// Default returns the configuration an empty file produces.
func Default() Config {
	cfg, err := Parse(nil, "default.cue")
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema is invalid: %v", err))
	}
	return cfg
}

// Load reads and validates a configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data, path)
}

// Parse validates CUE source against the schema and decodes it.
func Parse(data []byte, filename string) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}

	file := ctx.CompileBytes(data, cue.Filename(filename))
	if err := file.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}

	v := schema.LookupPath(cue.ParsePath("#Config")).Unify(file)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Config{}, formatCUEError(err)
	}

	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return Config{}, formatCUEError(err)
	}
	if _, err := cfg.ConverterGroups(); err != nil {
		return Config{}, &ConfigError{Field: "converters.groups", Message: err.Error()}
	}
	return cfg, nil
}

// Saver returns the saver for the configured platform.
func (c Config) Saver() world.Saver {
	return world.Saver{NeoForge: c.Platform == PlatformNeoForge}
}

// ConverterGroups resolves the configured groups, defaulting to every group
// the platform supports.
func (c Config) ConverterGroups() ([]convert.Group, error) {
	if len(c.Converters.Groups) == 0 {
		return convert.GroupsFor(c.Saver()), nil
	}
	groups, err := convert.ParseGroups(c.Converters.Groups)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		if g == convert.GroupNeoForge && !c.Saver().NeoForge {
			return nil, fmt.Errorf("group %q requires platform %q", g, PlatformNeoForge)
		}
	}
	return groups, nil
}

// Registry returns the process-wide converter registry for this
// configuration's groups and platform, including any convert.Extend
// registrations.
func (c Config) Registry() (*convert.Registry, error) {
	groups, err := c.ConverterGroups()
	if err != nil {
		return nil, err
	}
	return convert.Default(groups, c.Saver())
}

// LogLevel returns the configured slog level.
func (c Config) LogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &ConfigError{Field: "cue", Message: err.Error()}
	}

	first := errs[0]
	ce := &ConfigError{Field: "cue", Message: first.Error()}
	if path := first.Path(); len(path) > 0 {
		ce.Field = strings.Join(path, ".")
	}
	if positions := errors.Positions(first); len(positions) > 0 {
		ce.Pos = positions[0]
	}
	return ce
}
