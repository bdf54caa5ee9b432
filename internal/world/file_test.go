package world

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fastnbt/internal/nbt"
)

const stableWorld = `
entities:
  - name: horse
    kind: living
    type: minecraft:horse
    entity:
      pos: [10, 64, -3]
      tags: [tame]
    living:
      health: 30
      memories:
        minecraft:home: !l 12
  - name: steve
    kind: server_player
    uuid: 00000000-0000-0000-0000-000000000002
    vehicle: horse
    player:
      xp_level: 7
      food: {level: 3}
      inventory:
        - {id: 'minecraft:diamond_sword', count: 1, slot: 0}
    server:
      game_mode: 1
      respawn: {pos: [0, 70, 0], dimension: 'minecraft:overworld'}
  - name: arrow
    type: minecraft:arrow
    entity:
      persistent_data: {pickup: !b 1}
`

func TestDecode(t *testing.T) {
	w, err := Decode([]byte(stableWorld))
	require.NoError(t, err)
	require.Len(t, w.Entities(), 3)

	horse, ok := w.Lookup("horse")
	require.True(t, ok)
	assert.Equal(t, "minecraft:horse", horse.Kind())
	assert.Equal(t, "horse", w.Name(horse))
	assert.Equal(t, uuid.NewSHA1(EntityNamespace, []byte("horse")), horse.Data().UUID)
	assert.Equal(t, 300, horse.Data().Air, "entity defaults survive partial sections")
	assert.Equal(t, float32(30), horse.(Living).LivingData().Health)
	assert.Equal(t, nbt.Long(12), horse.(Living).LivingData().Memories["minecraft:home"])

	steveEntity, ok := w.Lookup("steve")
	require.True(t, ok)
	steve, ok := steveEntity.(ServerPlayer)
	require.True(t, ok)
	assert.Equal(t, PlayerKind, steve.Kind())
	assert.Equal(t, uuid.MustParse("00000000-0000-0000-0000-000000000002"), steve.Data().UUID)
	assert.Equal(t, horse, steve.Data().Vehicle())
	assert.Equal(t, 3, steve.PlayerData().Food.Level)
	assert.Equal(t, float32(5), steve.PlayerData().Food.Saturation, "nested defaults survive")
	assert.True(t, steve.PlayerData().Abilities.MayBuild)
	assert.Equal(t, 1, steve.ServerPlayerData().GameMode)
	assert.Equal(t, "minecraft:overworld", steve.ServerPlayerData().Dimension)
	require.NotNil(t, steve.ServerPlayerData().Respawn)
	assert.Equal(t, BlockPos{Y: 70}, steve.ServerPlayerData().Respawn.Pos)

	arrow, ok := w.Lookup("arrow")
	require.True(t, ok)
	_, isLiving := arrow.(Living)
	assert.False(t, isLiving)
	assert.Equal(t, nbt.Byte(1), arrow.Data().PersistentData["pickup"])
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "unknown top-level key",
			doc:     "entitys: []",
			wantErr: "entitys",
		},
		{
			name:    "unknown section key",
			doc:     "entities: [{name: a, type: 'minecraft:pig', kind: living, living: {helth: 1}}]",
			wantErr: "helth",
		},
		{
			name:    "missing name",
			doc:     "entities: [{type: 'minecraft:pig'}]",
			wantErr: "name is required",
		},
		{
			name:    "duplicate name",
			doc:     "entities: [{name: a, type: 'minecraft:pig'}, {name: a, type: 'minecraft:cow'}]",
			wantErr: "duplicate name",
		},
		{
			name:    "missing type",
			doc:     "entities: [{name: a, kind: living}]",
			wantErr: "type is required",
		},
		{
			name:    "unknown kind",
			doc:     "entities: [{name: a, kind: ghost, type: 'minecraft:vex'}]",
			wantErr: "unknown kind",
		},
		{
			name:    "section not allowed",
			doc:     "entities: [{name: a, type: 'minecraft:boat', living: {health: 1}}]",
			wantErr: "section not allowed",
		},
		{
			name:    "unknown vehicle",
			doc:     "entities: [{name: a, type: 'minecraft:pig', vehicle: b}]",
			wantErr: "unknown vehicle",
		},
		{
			name:    "cycle",
			doc:     "entities: [{name: a, type: 'minecraft:pig', vehicle: b}, {name: b, type: 'minecraft:boat', vehicle: a}]",
			wantErr: "cycle",
		},
		{
			name:    "bad uuid",
			doc:     "entities: [{name: a, type: 'minecraft:pig', uuid: nope}]",
			wantErr: "uuid",
		},
		{
			name:    "bad position",
			doc:     "entities: [{name: a, type: 'minecraft:pig', entity: {pos: [1, 2]}}]",
			wantErr: "expected [x, y, z]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte(stableWorld), 0o644))

	w, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, w.Entities(), 3)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
