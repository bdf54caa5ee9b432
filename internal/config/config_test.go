package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fastnbt/internal/convert"
	"github.com/roach88/fastnbt/internal/nbt"
	"github.com/roach88/fastnbt/internal/world"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, PlatformVanilla, cfg.Platform)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Scan.Workers)
	assert.Empty(t, cfg.Store.Path)
	assert.Empty(t, cfg.Converters.Groups)
	assert.False(t, cfg.Saver().NeoForge)

	groups, err := cfg.ConverterGroups()
	require.NoError(t, err)
	assert.Equal(t, convert.VanillaGroups(), groups)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
platform: "neoforge"
converters: groups: ["base", "neoforge"]
log: level: "debug"
scan: workers: 16
store: path: "runs.db"
`), "fastnbt.cue")
	require.NoError(t, err)

	assert.Equal(t, PlatformNeoForge, cfg.Platform)
	assert.True(t, cfg.Saver().NeoForge)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.Equal(t, 16, cfg.Scan.Workers)
	assert.Equal(t, "runs.db", cfg.Store.Path)

	groups, err := cfg.ConverterGroups()
	require.NoError(t, err)
	assert.Equal(t, []convert.Group{convert.GroupBase, convert.GroupNeoForge}, groups)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"unknown field", `platfrom: "vanilla"`, "platfrom"},
		{"bad platform", `platform: "forge"`, "platform"},
		{"bad group", `converters: groups: ["mobs"]`, "groups"},
		{"too many workers", `scan: workers: 1000`, "workers"},
		{"zero workers", `scan: workers: 0`, "workers"},
		{"neoforge group on vanilla", `converters: groups: ["base", "neoforge"]`, "requires platform"},
		{"syntax", `platform: "vanilla`, "cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.cue")
			require.Error(t, err)
			assert.True(t, IsConfigError(err), "got %T", err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fastnbt.cue")
	require.NoError(t, os.WriteFile(path, []byte(`log: level: "warn"`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel())

	_, err = Load(filepath.Join(dir, "missing.cue"))
	assert.Error(t, err)
}

func TestConfig_Registry(t *testing.T) {
	cfg, err := Parse([]byte(`converters: groups: ["base"]`), "c.cue")
	require.NoError(t, err)

	require.NoError(t, convert.Extend(func(b *convert.Builder) {
		b.Register("IsBaby", func(world.Entity) nbt.Tag { return nbt.Bool(false) })
	}))

	reg, err := cfg.Registry()
	require.NoError(t, err)
	assert.True(t, reg.Has("Pos"))
	assert.True(t, reg.Has("IsBaby"), "extensions registered before first use apply")
	assert.False(t, reg.Has("Health"))

	again, err := cfg.Registry()
	require.NoError(t, err)
	assert.Same(t, reg, again, "one frozen registry per configuration")

	neoforge, err := Parse([]byte(`platform: "neoforge"`), "n.cue")
	require.NoError(t, err)
	other, err := neoforge.Registry()
	require.NoError(t, err)
	assert.True(t, other.Has(world.CanUpdateKey))
	assert.True(t, other.Has("IsBaby"))

	assert.ErrorIs(t, convert.Extend(func(*convert.Builder) {}), convert.ErrRegistryFrozen)
}
