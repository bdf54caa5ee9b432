package convert

import (
	"slices"
	"strings"
	"sync"

	"github.com/roach88/fastnbt/internal/world"
)

var std struct {
	mu         sync.Mutex
	frozen     bool
	extensions []func(*Builder)
	registries map[string]*Registry
}

// Extend queues fn to run against every default registry's builder, after
// the built-in extractors. Extensions run in the order they were added, so
// the last one to register a name wins. Extend fails once any default
// registry has been built.
func Extend(fn func(*Builder)) error {
	std.mu.Lock()
	defer std.mu.Unlock()
	if std.frozen {
		return ErrRegistryFrozen
	}
	std.extensions = append(std.extensions, fn)
	return nil
}

// Default returns the process-wide registry for groups on the platform of
// s. Each distinct selection is built once, with every queued extension
// applied, and the same *Registry is returned thereafter. The first call
// closes Extend.
func Default(groups []Group, s world.Saver) (*Registry, error) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.frozen = true

	key := defaultKey(groups, s)
	if reg, ok := std.registries[key]; ok {
		return reg, nil
	}
	b, err := NewBuilder(groups, s)
	if err != nil {
		return nil, err
	}
	for _, fn := range std.extensions {
		fn(b)
	}
	reg := b.Build()
	if std.registries == nil {
		std.registries = make(map[string]*Registry)
	}
	std.registries[key] = reg
	return reg, nil
}

// defaultKey identifies a group selection. Registration order is fixed by
// groupOrder, so the order groups are listed in does not matter.
func defaultKey(groups []Group, s world.Saver) string {
	var parts []string
	for _, g := range groupOrder {
		if slices.Contains(groups, g) {
			parts = append(parts, string(g))
		}
	}
	platform := "vanilla"
	if s.NeoForge {
		platform = "neoforge"
	}
	return platform + ":" + strings.Join(parts, ",")
}
