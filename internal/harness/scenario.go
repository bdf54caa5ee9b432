package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/fastnbt/internal/convert"
	"github.com/roach88/fastnbt/internal/nbt"
	"github.com/roach88/fastnbt/internal/world"
)

// Platforms a scenario may run against.
const (
	PlatformVanilla  = "vanilla"
	PlatformNeoForge = "neoforge"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Platform selects the saver and converter groups. Defaults to vanilla.
	Platform string `yaml:"platform,omitempty"`

	// Entities uses the world-file entity format.
	Entities []world.EntitySpec `yaml:"entities"`

	// Queries are evaluated in order against every entity.
	Queries []Query `yaml:"queries"`
}

// Query is one selector pattern with its expected outcome.
type Query struct {
	// Pattern is the expected compound, written in the tagged YAML form.
	Pattern nbt.Compound `yaml:"pattern"`

	// Invert selects the entities that do not match.
	Invert bool `yaml:"invert,omitempty"`

	// Expect names the entities the query selects, in any order.
	// Required; use [] when nothing should match.
	Expect []string `yaml:"expect"`

	// Degraded, if set, asserts whether the pattern falls back to a full
	// save.
	Degraded *bool `yaml:"degraded,omitempty"`
}

// Saver returns the saver for the scenario's platform.
func (s *Scenario) Saver() world.Saver {
	return world.Saver{NeoForge: s.Platform == PlatformNeoForge}
}

// Registry returns the process-wide converter registry for the scenario's
// platform.
func (s *Scenario) Registry() (*convert.Registry, error) {
	saver := s.Saver()
	return convert.Default(convert.GroupsFor(saver), saver)
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// FindScenarios returns the .yaml files in dir whose base name matches
// filter, sorted by path. An empty filter matches everything.
func FindScenarios(dir, filter string) ([]string, error) {
	if filter == "" {
		filter = "*"
	}
	if _, err := filepath.Match(filter, ""); err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", filter, err)
	}

	var paths []string
	for _, ext := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, ext))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if ok, _ := filepath.Match(filter, filepath.Base(m)); ok {
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch s.Platform {
	case "", PlatformVanilla, PlatformNeoForge:
	default:
		return fmt.Errorf("unknown platform %q", s.Platform)
	}

	if len(s.Entities) == 0 {
		return fmt.Errorf("entities list is required and must be non-empty")
	}
	if len(s.Queries) == 0 {
		return fmt.Errorf("queries list is required and must be non-empty")
	}

	names := make(map[string]bool, len(s.Entities))
	for _, e := range s.Entities {
		names[e.Name] = true
	}
	for i, q := range s.Queries {
		if q.Pattern == nil {
			return fmt.Errorf("queries[%d]: pattern is required (use {} to match everything)", i)
		}
		if q.Expect == nil {
			return fmt.Errorf("queries[%d]: expect is required (use [] if nothing matches)", i)
		}
		for _, name := range q.Expect {
			if !names[name] {
				return fmt.Errorf("queries[%d]: expect names unknown entity %q", i, name)
			}
		}
	}
	return nil
}
