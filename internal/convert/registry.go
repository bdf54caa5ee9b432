package convert

import (
	"maps"
	"slices"

	"github.com/roach88/fastnbt/internal/nbt"
	"github.com/roach88/fastnbt/internal/world"
)

// Extractor computes one field of an entity's saved state. A nil result
// means the field is absent for that entity.
type Extractor func(world.Entity) nbt.Tag

// Builder collects registrations. It is not safe for concurrent use.
type Builder struct {
	extractors map[string]Extractor
}

// NewEmptyBuilder returns a builder with no registrations.
func NewEmptyBuilder() *Builder {
	return &Builder{extractors: make(map[string]Extractor)}
}

// Register binds name to fn. A later registration for the same name
// replaces the earlier one. Register panics if fn is nil.
func (b *Builder) Register(name string, fn Extractor) *Builder {
	if fn == nil {
		panic("convert: nil extractor for " + name)
	}
	b.extractors[name] = fn
	return b
}

// RegisterFor binds name to fn for entities implementing T. For any other
// entity the extractor returns nil, so the field reads as absent.
func RegisterFor[T world.Entity](b *Builder, name string, fn func(T) nbt.Tag) *Builder {
	if fn == nil {
		panic("convert: nil extractor for " + name)
	}
	return b.Register(name, func(e world.Entity) nbt.Tag {
		t, ok := e.(T)
		if !ok {
			return nil
		}
		return fn(t)
	})
}

// Build freezes the current registrations into a Registry. The builder may
// keep being used; later registrations do not affect the returned Registry.
func (b *Builder) Build() *Registry {
	return &Registry{extractors: maps.Clone(b.extractors)}
}

// Registry is a frozen set of extractors keyed by field name.
type Registry struct {
	extractors map[string]Extractor
}

// Has reports whether an extractor is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.extractors[name]
	return ok
}

// Get runs the extractor registered under name. The result is nil when the
// field is absent for e.
func (r *Registry) Get(name string, e world.Entity) (nbt.Tag, error) {
	fn, ok := r.extractors[name]
	if !ok {
		return nil, &NoSuchConverterError{Name: name}
	}
	return fn(e), nil
}

// Lookup returns the extractor registered under name.
func (r *Registry) Lookup(name string) (Extractor, bool) {
	fn, ok := r.extractors[name]
	return fn, ok
}

// Names returns every registered name in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.extractors))
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	return len(r.extractors)
}
