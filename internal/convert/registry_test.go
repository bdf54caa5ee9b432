package convert

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fastnbt/internal/nbt"
	"github.com/roach88/fastnbt/internal/world"
)

func constant(t nbt.Tag) Extractor {
	return func(world.Entity) nbt.Tag { return t }
}

func TestRegistry_HasAndGet(t *testing.T) {
	reg := NewEmptyBuilder().
		Register("Health", constant(nbt.Float(20))).
		Build()

	assert.True(t, reg.Has("Health"))
	assert.False(t, reg.Has("health"), "names are case sensitive")
	assert.False(t, reg.Has(""))

	e := world.NewEntity("minecraft:item", world.DefaultEntityData())
	got, err := reg.Get("Health", e)
	require.NoError(t, err)
	assert.Equal(t, nbt.Float(20), got)
}

func TestRegistry_GetUnknown(t *testing.T) {
	reg := NewEmptyBuilder().Build()
	e := world.NewEntity("minecraft:item", world.DefaultEntityData())

	got, err := reg.Get("Bogus", e)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, IsNoSuchConverter(err))
	assert.True(t, IsNoSuchConverter(fmt.Errorf("wrapped: %w", err)))
	assert.Contains(t, err.Error(), `"Bogus"`)

	var nsc *NoSuchConverterError
	require.ErrorAs(t, err, &nsc)
	assert.Equal(t, "Bogus", nsc.Name)

	assert.False(t, IsNoSuchConverter(fmt.Errorf("other")))
}

func TestRegistry_LastRegistrationWins(t *testing.T) {
	reg := NewEmptyBuilder().
		Register("Health", constant(nbt.Float(1))).
		Register("Health", constant(nbt.Float(2))).
		Build()

	got, err := reg.Get("Health", world.NewEntity("minecraft:item", world.DefaultEntityData()))
	require.NoError(t, err)
	assert.Equal(t, nbt.Float(2), got)
	assert.Equal(t, 1, reg.Len())
}

func TestRegister_NilExtractorPanics(t *testing.T) {
	b := NewEmptyBuilder()
	assert.PanicsWithValue(t, "convert: nil extractor for Health", func() {
		b.Register("Health", nil)
	})
	assert.Panics(t, func() {
		RegisterFor[world.Living](b, "Health", nil)
	})
	assert.False(t, b.Build().Has("Health"), "a rejected registration leaves no entry")
}

func TestRegistry_FrozenAfterBuild(t *testing.T) {
	b := NewEmptyBuilder().Register("A", constant(nbt.Int(1)))
	reg := b.Build()

	b.Register("B", constant(nbt.Int(2)))
	b.Register("A", constant(nbt.Int(3)))

	assert.False(t, reg.Has("B"))
	got, err := reg.Get("A", world.NewEntity("minecraft:item", world.DefaultEntityData()))
	require.NoError(t, err)
	assert.Equal(t, nbt.Int(1), got)
	assert.True(t, b.Build().Has("B"))
}

func TestRegisterFor_CapabilityGuard(t *testing.T) {
	calls := 0
	b := NewEmptyBuilder()
	RegisterFor(b, "Health", func(l world.Living) nbt.Tag {
		calls++
		return nbt.Float(l.LivingData().Health)
	})
	reg := b.Build()

	boat := world.NewEntity("minecraft:boat", world.DefaultEntityData())
	got, err := reg.Get("Health", boat)
	require.NoError(t, err)
	assert.Nil(t, got, "entities without the capability read as absent")
	assert.Zero(t, calls)

	pig := world.NewLiving("minecraft:pig", world.DefaultEntityData(), world.LivingData{Health: 7})
	got, err = reg.Get("Health", pig)
	require.NoError(t, err)
	assert.Equal(t, nbt.Float(7), got)
	assert.Equal(t, 1, calls)

	player := world.NewPlayer(world.DefaultEntityData(), world.LivingData{Health: 3}, world.DefaultPlayerData())
	got, err = reg.Get("Health", player)
	require.NoError(t, err)
	assert.Equal(t, nbt.Float(3), got, "richer capabilities satisfy the guard")
}

func TestRegistry_NamesAndLookup(t *testing.T) {
	reg := NewEmptyBuilder().
		Register("b", constant(nbt.Int(1))).
		Register("a", constant(nbt.Int(2))).
		Register("C", constant(nbt.Int(3))).
		Build()

	assert.Equal(t, []string{"C", "a", "b"}, reg.Names())
	assert.Equal(t, 3, reg.Len())

	fn, ok := reg.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, nbt.Int(2), fn(nil))

	_, ok = reg.Lookup("z")
	assert.False(t, ok)
}
