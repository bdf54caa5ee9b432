package world

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Entity kinds accepted in world files.
const (
	KindEntity       = "entity"
	KindLiving       = "living"
	KindPlayer       = "player"
	KindServerPlayer = "server_player"
)

// EntityNamespace seeds the name-derived UUIDs of world-file entities.
var EntityNamespace = uuid.MustParse("6f0c8a2e-55d1-4c0b-9b7e-2f7d3c1a9e40")

// File is the on-disk form of a world.
type File struct {
	Entities []EntitySpec `yaml:"entities"`
}

// EntitySpec describes one entity in a world file. Each layer section is
// decoded on top of that layer's defaults.
type EntitySpec struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	Type    string `yaml:"type"`
	UUID    string `yaml:"uuid"`
	Vehicle string `yaml:"vehicle"`

	Entity yaml.Node `yaml:"entity"`
	Living yaml.Node `yaml:"living"`
	Player yaml.Node `yaml:"player"`
	Server yaml.Node `yaml:"server"`
}

// World is a set of named entities.
type World struct {
	entities []Entity
	byName   map[string]Entity
	names    map[Entity]string
}

// Entities returns the entities in file order.
func (w *World) Entities() []Entity { return w.entities }

// Lookup finds an entity by name.
func (w *World) Lookup(name string) (Entity, bool) {
	e, ok := w.byName[name]
	return e, ok
}

// Name returns the name an entity was declared with.
func (w *World) Name(e Entity) string { return w.names[e] }

// LoadFile reads and builds a world file.
func LoadFile(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world file: %w", err)
	}
	w, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// Decode parses a world document. Unknown keys are rejected.
func Decode(data []byte) (*World, error) {
	var f File
	if err := decodeStrict(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return Build(f.Entities)
}

// Build creates the entities described by specs and mounts riders onto
// their vehicles.
func Build(specs []EntitySpec) (*World, error) {
	w := &World{
		byName: make(map[string]Entity, len(specs)),
		names:  make(map[Entity]string, len(specs)),
	}
	for i := range specs {
		spec := &specs[i]
		if spec.Name == "" {
			return nil, fmt.Errorf("entities[%d]: name is required", i)
		}
		if _, dup := w.byName[spec.Name]; dup {
			return nil, fmt.Errorf("entities[%d]: duplicate name %q", i, spec.Name)
		}
		e, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", spec.Name, err)
		}
		w.entities = append(w.entities, e)
		w.byName[spec.Name] = e
		w.names[e] = spec.Name
	}

	for _, spec := range specs {
		if spec.Vehicle == "" {
			continue
		}
		vehicle, ok := w.byName[spec.Vehicle]
		if !ok {
			return nil, fmt.Errorf("entity %q: unknown vehicle %q", spec.Name, spec.Vehicle)
		}
		passenger := w.byName[spec.Name]
		if ridesOn(vehicle, passenger) {
			return nil, fmt.Errorf("entity %q: riding %q would form a cycle", spec.Name, spec.Vehicle)
		}
		Mount(passenger, vehicle)
	}
	return w, nil
}

// ridesOn reports whether e is target or sits somewhere above it.
func ridesOn(e, target Entity) bool {
	for cur := e; cur != nil; cur = cur.Data().vehicle {
		if cur == target {
			return true
		}
	}
	return false
}

func (s *EntitySpec) build() (Entity, error) {
	data := DefaultEntityData()
	if err := decodeNode(&s.Entity, &data); err != nil {
		return nil, fmt.Errorf("entity: %w", err)
	}
	id, err := s.uuid()
	if err != nil {
		return nil, err
	}
	data.UUID = id

	living := DefaultLivingData()
	player := DefaultPlayerData()
	server := DefaultServerPlayerData()

	switch s.Kind {
	case KindEntity, "":
		if err := s.rejectSections(&s.Living, &s.Player, &s.Server); err != nil {
			return nil, err
		}
		if s.Type == "" {
			return nil, errors.New("type is required")
		}
		return NewEntity(s.Type, data), nil

	case KindLiving:
		if err := s.rejectSections(&s.Player, &s.Server); err != nil {
			return nil, err
		}
		if s.Type == "" {
			return nil, errors.New("type is required")
		}
		if err := decodeNode(&s.Living, &living); err != nil {
			return nil, fmt.Errorf("living: %w", err)
		}
		return NewLiving(s.Type, data, living), nil

	case KindPlayer, KindServerPlayer:
		if s.Type != "" && s.Type != PlayerKind {
			return nil, fmt.Errorf("players have type %s, not %s", PlayerKind, s.Type)
		}
		if err := decodeNode(&s.Living, &living); err != nil {
			return nil, fmt.Errorf("living: %w", err)
		}
		if err := decodeNode(&s.Player, &player); err != nil {
			return nil, fmt.Errorf("player: %w", err)
		}
		if s.Kind == KindPlayer {
			if err := s.rejectSections(&s.Server); err != nil {
				return nil, err
			}
			return NewPlayer(data, living, player), nil
		}
		if err := decodeNode(&s.Server, &server); err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		return NewServerPlayer(data, living, player, server), nil

	default:
		return nil, fmt.Errorf("unknown kind %q", s.Kind)
	}
}

func (s *EntitySpec) uuid() (uuid.UUID, error) {
	if s.UUID == "" {
		return uuid.NewSHA1(EntityNamespace, []byte(s.Name)), nil
	}
	id, err := uuid.Parse(s.UUID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("uuid: %w", err)
	}
	return id, nil
}

func (s *EntitySpec) rejectSections(nodes ...*yaml.Node) error {
	for _, n := range nodes {
		if n.Kind != 0 {
			return fmt.Errorf("line %d: section not allowed for kind %q", n.Line, s.Kind)
		}
	}
	return nil
}

// decodeNode decodes an optional section onto out, rejecting unknown keys.
// yaml.Node.Decode cannot reject unknown keys, so the node is re-encoded and
// run through a strict decoder.
func decodeNode(node *yaml.Node, out any) error {
	if node.Kind == 0 {
		return nil
	}
	data, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	return decodeStrict(data, out)
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(out)
}

// UnmarshalYAML accepts [x, y, z].
func (v *Vec3) UnmarshalYAML(node *yaml.Node) error {
	var xyz []float64
	if err := node.Decode(&xyz); err != nil {
		return err
	}
	if len(xyz) != 3 {
		return fmt.Errorf("line %d: expected [x, y, z], got %d values", node.Line, len(xyz))
	}
	*v = Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	return nil
}

// UnmarshalYAML accepts [x, y, z].
func (p *BlockPos) UnmarshalYAML(node *yaml.Node) error {
	var xyz []int
	if err := node.Decode(&xyz); err != nil {
		return err
	}
	if len(xyz) != 3 {
		return fmt.Errorf("line %d: expected [x, y, z], got %d values", node.Line, len(xyz))
	}
	*p = BlockPos{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	return nil
}
