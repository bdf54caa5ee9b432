package world

import (
	"encoding/json"
	"slices"

	"github.com/roach88/fastnbt/internal/nbt"
)

// ItemStack is a stack of items in an inventory slot.
type ItemStack struct {
	ID    string       `yaml:"id"`
	Count int          `yaml:"count"`
	Slot  int          `yaml:"slot"`
	Tag   nbt.Compound `yaml:"tag"`
}

// IsEmpty reports whether the stack holds nothing.
func (s ItemStack) IsEmpty() bool {
	return s.ID == "" || s.ID == "minecraft:air" || s.Count <= 0
}

// Save writes the stack without its slot.
func (s ItemStack) Save() nbt.Compound {
	c := nbt.Compound{
		"id":    nbt.String(s.ID),
		"Count": nbt.Byte(s.Count),
	}
	if len(s.Tag) > 0 {
		c["tag"] = s.Tag.Clone()
	}
	return c
}

// SaveItems writes every non-empty stack with its slot, in slot order.
func SaveItems(items []ItemStack) nbt.List {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b ItemStack) int { return a.Slot - b.Slot })

	list := nbt.List{}
	for _, item := range sorted {
		if item.IsEmpty() {
			continue
		}
		c := item.Save()
		c["Slot"] = nbt.Byte(item.Slot)
		list = append(list, c)
	}
	return list
}

// Save writes the effect.
func (e Effect) Save() nbt.Compound {
	return nbt.Compound{
		"id":             nbt.String(e.ID),
		"amplifier":      nbt.Byte(e.Amplifier),
		"duration":       nbt.Int(e.Duration),
		"ambient":        nbt.Bool(e.Ambient),
		"show_particles": nbt.Bool(!e.HideParticles),
		"show_icon":      nbt.Bool(!e.HideIcon),
	}
}

// SaveEffects writes active effects, or nil when there are none.
func SaveEffects(effects []Effect) nbt.Tag {
	if len(effects) == 0 {
		return nil
	}
	list := make(nbt.List, len(effects))
	for i, e := range effects {
		list[i] = e.Save()
	}
	return list
}

// Save writes the attribute and its modifiers.
func (a Attribute) Save() nbt.Compound {
	c := nbt.Compound{
		"Name": nbt.String(a.Name),
		"Base": nbt.Double(a.Base),
	}
	if len(a.Modifiers) > 0 {
		mods := make(nbt.List, len(a.Modifiers))
		for i, m := range a.Modifiers {
			mods[i] = nbt.Compound{
				"Name":      nbt.String(m.Name),
				"Amount":    nbt.Double(m.Amount),
				"Operation": nbt.Int(m.Operation),
				"UUID":      nbt.UUIDToIntArray(m.UUID),
			}
		}
		c["Modifiers"] = mods
	}
	return c
}

// SaveAttributes writes the attribute map. An entity with no attributes
// still writes an empty list.
func SaveAttributes(attrs []Attribute) nbt.List {
	list := make(nbt.List, len(attrs))
	for i, a := range attrs {
		list[i] = a.Save()
	}
	return list
}

// SaveBrain writes remembered values as {memories:{<key>:{value:<v>}}}.
func SaveBrain(memories nbt.Compound) nbt.Compound {
	mem := make(nbt.Compound, len(memories))
	for k, v := range memories {
		mem[k] = nbt.Compound{"value": nbt.Clone(v)}
	}
	return nbt.Compound{"memories": mem}
}

// Save writes the food state as the four food fields of a player.
func (f Food) Save(c nbt.Compound) {
	c["foodLevel"] = nbt.Int(f.Level)
	c["foodTickTimer"] = nbt.Int(f.TickTimer)
	c["foodSaturationLevel"] = nbt.Float(f.Saturation)
	c["foodExhaustionLevel"] = nbt.Float(f.Exhaustion)
}

// Save writes the abilities compound.
func (a Abilities) Save() nbt.Compound {
	return nbt.Compound{
		"invulnerable": nbt.Bool(a.Invulnerable),
		"flying":       nbt.Bool(a.Flying),
		"mayfly":       nbt.Bool(a.MayFly),
		"instabuild":   nbt.Bool(a.InstaBuild),
		"mayBuild":     nbt.Bool(a.MayBuild),
		"flySpeed":     nbt.Float(a.FlySpeed),
		"walkSpeed":    nbt.Float(a.WalkSpeed),
	}
}

// Save writes the position as {dimension, pos:[I;x,y,z]}.
func (g GlobalPos) Save() nbt.Compound {
	return nbt.Compound{
		"dimension": nbt.String(g.Dimension),
		"pos":       nbt.IntArray{int32(g.Pos.X), int32(g.Pos.Y), int32(g.Pos.Z)},
	}
}

// Save writes the tracker.
func (w WardenTracker) Save() nbt.Compound {
	return nbt.Compound{
		"ticks_since_last_warning": nbt.Int(w.TicksSinceLastWarning),
		"warning_level":            nbt.Int(w.WarningLevel),
		"cooldown_ticks":           nbt.Int(w.CooldownTicks),
	}
}

// Save writes the recipe book.
func (r RecipeBook) Save() nbt.Compound {
	return nbt.Compound{
		"recipes":              nbt.Strings(r.Known...),
		"toBeDisplayed":        nbt.Strings(r.Highlight...),
		"isGuiOpen":            nbt.Bool(r.GuiOpen),
		"isFilteringCraftable": nbt.Bool(r.FilteringCraftable),
	}
}

// Save writes a position as a three-element list of doubles.
func (v Vec3) Save() nbt.List {
	return nbt.Doubles(v.X, v.Y, v.Z)
}

// SaveNetherPosition writes the position a player entered the nether at.
func SaveNetherPosition(v Vec3) nbt.Compound {
	return nbt.Compound{"x": nbt.Double(v.X), "y": nbt.Double(v.Y), "z": nbt.Double(v.Z)}
}

// NameJSON renders a plain custom name as a JSON text component.
func NameJSON(name string) string {
	b, err := json.Marshal(struct {
		Text string `json:"text"`
	}{name})
	if err != nil {
		return `{"text":""}`
	}
	return string(b)
}
