package convert

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fastnbt/internal/nbt"
	"github.com/roach88/fastnbt/internal/world"
)

// The default registries are process-wide and close Extend on first use,
// so their whole lifecycle is exercised in a single test.
func TestDefault_Lifecycle(t *testing.T) {
	require.NoError(t, Extend(func(b *Builder) {
		b.Register("IsBaby", func(world.Entity) nbt.Tag { return nbt.Bool(false) })
	}))
	require.NoError(t, Extend(func(b *Builder) {
		b.Register("IsBaby", func(world.Entity) nbt.Tag { return nbt.Bool(true) })
	}))

	neoforge := world.Saver{NeoForge: true}
	var wg sync.WaitGroup
	regs := make([]*Registry, 8)
	for i := range regs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reg, err := Default(GroupsFor(neoforge), neoforge)
			assert.NoError(t, err)
			regs[i] = reg
		}(i)
	}
	wg.Wait()

	reg := regs[0]
	for _, r := range regs {
		assert.Same(t, reg, r)
	}
	assert.True(t, reg.Has("Pos"))
	assert.True(t, reg.Has(world.CanUpdateKey))
	got, err := reg.Get("IsBaby", world.NewEntity("minecraft:zombie", world.DefaultEntityData()))
	require.NoError(t, err)
	assert.Equal(t, nbt.Byte(1), got, "later extensions shadow earlier ones")

	t.Run("group order does not matter", func(t *testing.T) {
		reversed := []Group{GroupNeoForge, GroupServerPlayer, GroupPlayer, GroupLiving, GroupBase}
		again, err := Default(reversed, neoforge)
		require.NoError(t, err)
		assert.Same(t, reg, again)
	})

	t.Run("each selection is its own registry", func(t *testing.T) {
		vanilla, err := Default([]Group{GroupBase}, world.Saver{})
		require.NoError(t, err)
		assert.NotSame(t, reg, vanilla)
		assert.False(t, vanilla.Has(world.CanUpdateKey))
		assert.False(t, vanilla.Has("Health"))
		assert.True(t, vanilla.Has("IsBaby"), "extensions apply to every selection")
	})

	t.Run("invalid selection", func(t *testing.T) {
		_, err := Default([]Group{GroupNeoForge}, world.Saver{})
		assert.Error(t, err)
	})

	assert.ErrorIs(t, Extend(func(*Builder) {}), ErrRegistryFrozen)
}
