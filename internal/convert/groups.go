package convert

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/fastnbt/internal/world"
)

// Group names a set of built-in extractors.
type Group string

const (
	GroupBase         Group = "base"
	GroupLiving       Group = "living"
	GroupPlayer       Group = "player"
	GroupServerPlayer Group = "server_player"
	GroupNeoForge     Group = "neoforge"
)

var groupFuncs = map[Group]func(*Builder, world.Saver){
	GroupBase:         RegisterBase,
	GroupLiving:       RegisterLiving,
	GroupPlayer:       RegisterPlayer,
	GroupServerPlayer: RegisterServerPlayer,
	GroupNeoForge:     RegisterNeoForge,
}

// groupOrder fixes registration order, so that a name defined by two
// groups resolves the same way regardless of how groups were listed.
var groupOrder = []Group{GroupBase, GroupLiving, GroupPlayer, GroupServerPlayer, GroupNeoForge}

// VanillaGroups are the groups every server supports.
func VanillaGroups() []Group {
	return []Group{GroupBase, GroupLiving, GroupPlayer, GroupServerPlayer}
}

// GroupsFor returns the groups matching a saver's platform.
func GroupsFor(s world.Saver) []Group {
	groups := VanillaGroups()
	if s.NeoForge {
		groups = append(groups, GroupNeoForge)
	}
	return groups
}

// ParseGroups resolves group names as written in configuration.
func ParseGroups(names []string) ([]Group, error) {
	groups := make([]Group, 0, len(names))
	for _, name := range names {
		g := Group(strings.ToLower(strings.TrimSpace(name)))
		if _, ok := groupFuncs[g]; !ok {
			return nil, fmt.Errorf("unknown converter group %q", name)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// NewBuilder returns a builder with the built-in extractors of groups
// registered against s. The NeoForge group requires a NeoForge saver.
func NewBuilder(groups []Group, s world.Saver) (*Builder, error) {
	for _, g := range groups {
		if _, ok := groupFuncs[g]; !ok {
			return nil, fmt.Errorf("unknown converter group %q", g)
		}
		if g == GroupNeoForge && !s.NeoForge {
			return nil, fmt.Errorf("converter group %q requires the neoforge platform", g)
		}
	}

	b := NewEmptyBuilder()
	for _, g := range groupOrder {
		if slices.Contains(groups, g) {
			groupFuncs[g](b, s)
		}
	}
	return b, nil
}
