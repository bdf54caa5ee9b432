package store

import (
	"fmt"

	"github.com/roach88/fastnbt/internal/nbt"
)

// marshalTag converts a tag to canonical JSON TEXT for storage.
func marshalTag(t nbt.Tag) (string, error) {
	data, err := nbt.MarshalCanonical(t)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// unmarshalCompound parses canonical JSON TEXT that must hold a compound.
func unmarshalCompound(data string) (nbt.Compound, error) {
	t, err := nbt.UnmarshalCanonical([]byte(data))
	if err != nil {
		return nil, err
	}
	c, ok := t.(nbt.Compound)
	if !ok {
		return nil, fmt.Errorf("expected compound, got %s", t.Type())
	}
	return c, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
