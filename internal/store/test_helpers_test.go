package store

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fastnbt/internal/nbt"
)

// createTestStore opens a store in a temp dir that is closed on cleanup.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestSnapshot(name string, health float32, seq int64) Snapshot {
	return Snapshot{
		UUID: uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)),
		Name: name,
		Kind: "minecraft:pig",
		State: nbt.Compound{
			"id":     nbt.String("minecraft:pig"),
			"Health": nbt.Float(health),
			"Tags":   nbt.Strings("farm"),
		},
		Seq: seq,
	}
}
