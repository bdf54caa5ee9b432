package convert

import (
	"github.com/roach88/fastnbt/internal/nbt"
	"github.com/roach88/fastnbt/internal/world"
)

// flag writes a boolean field that the save only includes when set.
func flag(set bool) nbt.Tag {
	if !set {
		return nil
	}
	return nbt.Bool(true)
}

// compound returns c, or nil when c is empty, so that omission stays an
// untyped nil.
func compound(c nbt.Compound) nbt.Tag {
	if len(c) == 0 {
		return nil
	}
	return c.Clone()
}

// RegisterBase registers the fields every entity writes.
func RegisterBase(b *Builder, s world.Saver) {
	field := func(name string, fn func(d *world.EntityData) nbt.Tag) {
		b.Register(name, func(e world.Entity) nbt.Tag { return fn(e.Data()) })
	}

	b.Register("Pos", func(e world.Entity) nbt.Tag { return world.SavedPos(e).Save() })
	field("Motion", func(d *world.EntityData) nbt.Tag { return d.Motion.Save() })
	field("Rotation", func(d *world.EntityData) nbt.Tag { return nbt.Floats(d.Yaw, d.Pitch) })
	field("FallDistance", func(d *world.EntityData) nbt.Tag { return nbt.Double(d.FallDistance) })
	field("Fire", func(d *world.EntityData) nbt.Tag { return nbt.Short(d.FireTicks) })
	field("Air", func(d *world.EntityData) nbt.Tag { return nbt.Short(d.Air) })
	field("OnGround", func(d *world.EntityData) nbt.Tag { return nbt.Bool(d.OnGround) })
	field("Invulnerable", func(d *world.EntityData) nbt.Tag { return nbt.Bool(d.Invulnerable) })
	field("PortalCooldown", func(d *world.EntityData) nbt.Tag { return nbt.Int(d.PortalCooldown) })
	field("UUID", func(d *world.EntityData) nbt.Tag { return nbt.UUIDToIntArray(d.UUID) })
	field("CustomName", func(d *world.EntityData) nbt.Tag {
		if d.CustomName == "" {
			return nil
		}
		return nbt.String(world.NameJSON(d.CustomName))
	})
	field("CustomNameVisible", func(d *world.EntityData) nbt.Tag { return flag(d.CustomNameVisible) })
	field("Silent", func(d *world.EntityData) nbt.Tag { return flag(d.Silent) })
	field("NoGravity", func(d *world.EntityData) nbt.Tag { return flag(d.NoGravity) })
	field("Glowing", func(d *world.EntityData) nbt.Tag { return flag(d.Glowing) })
	field("HasVisualFire", func(d *world.EntityData) nbt.Tag { return flag(d.VisualFire) })
	field("TicksFrozen", func(d *world.EntityData) nbt.Tag {
		if d.TicksFrozen <= 0 {
			return nil
		}
		return nbt.Int(d.TicksFrozen)
	})
	field("Tags", func(d *world.EntityData) nbt.Tag {
		if len(d.Tags) == 0 {
			return nil
		}
		return nbt.Strings(d.Tags...)
	})
	b.Register("Passengers", s.SavePassengers)
}

// RegisterLiving registers the fields living entities add.
func RegisterLiving(b *Builder, _ world.Saver) {
	field := func(name string, fn func(l *world.LivingData) nbt.Tag) {
		RegisterFor(b, name, func(e world.Living) nbt.Tag { return fn(e.LivingData()) })
	}

	field("Health", func(l *world.LivingData) nbt.Tag { return nbt.Float(l.Health) })
	field("HurtTime", func(l *world.LivingData) nbt.Tag { return nbt.Short(l.HurtTime) })
	field("HurtByTimestamp", func(l *world.LivingData) nbt.Tag { return nbt.Int(l.HurtByTimestamp) })
	field("DeathTime", func(l *world.LivingData) nbt.Tag { return nbt.Short(l.DeathTime) })
	field("AbsorptionAmount", func(l *world.LivingData) nbt.Tag { return nbt.Float(l.AbsorptionAmount) })
	field("Attributes", func(l *world.LivingData) nbt.Tag { return world.SaveAttributes(l.Attributes) })
	field("active_effects", func(l *world.LivingData) nbt.Tag { return world.SaveEffects(l.Effects) })
	field("FallFlying", func(l *world.LivingData) nbt.Tag { return nbt.Bool(l.FallFlying) })
	field("Brain", func(l *world.LivingData) nbt.Tag { return world.SaveBrain(l.Memories) })

	sleeping := func(name string, coord func(p *world.BlockPos) int) {
		field(name, func(l *world.LivingData) nbt.Tag {
			if l.SleepingPos == nil {
				return nil
			}
			return nbt.Int(coord(l.SleepingPos))
		})
	}
	sleeping("SleepingX", func(p *world.BlockPos) int { return p.X })
	sleeping("SleepingY", func(p *world.BlockPos) int { return p.Y })
	sleeping("SleepingZ", func(p *world.BlockPos) int { return p.Z })
}

// RegisterPlayer registers the fields players add.
func RegisterPlayer(b *Builder, _ world.Saver) {
	field := func(name string, fn func(p *world.PlayerData) nbt.Tag) {
		RegisterFor(b, name, func(e world.Player) nbt.Tag { return fn(e.PlayerData()) })
	}

	field("DataVersion", func(*world.PlayerData) nbt.Tag { return nbt.Int(world.DataVersion) })
	field("Inventory", func(p *world.PlayerData) nbt.Tag { return world.SaveItems(p.Inventory) })
	field("SelectedItemSlot", func(p *world.PlayerData) nbt.Tag { return nbt.Int(p.SelectedSlot) })
	field("SleepTimer", func(p *world.PlayerData) nbt.Tag { return nbt.Short(p.SleepTimer) })
	field("XpP", func(p *world.PlayerData) nbt.Tag { return nbt.Float(p.XpProgress) })
	field("XpLevel", func(p *world.PlayerData) nbt.Tag { return nbt.Int(p.XpLevel) })
	field("XpTotal", func(p *world.PlayerData) nbt.Tag { return nbt.Int(p.XpTotal) })
	field("XpSeed", func(p *world.PlayerData) nbt.Tag { return nbt.Long(p.XpSeed) })
	field("Score", func(p *world.PlayerData) nbt.Tag { return nbt.Int(p.Score) })
	field("foodLevel", func(p *world.PlayerData) nbt.Tag { return nbt.Int(p.Food.Level) })
	field("foodTickTimer", func(p *world.PlayerData) nbt.Tag { return nbt.Int(p.Food.TickTimer) })
	field("foodSaturationLevel", func(p *world.PlayerData) nbt.Tag { return nbt.Float(p.Food.Saturation) })
	field("foodExhaustionLevel", func(p *world.PlayerData) nbt.Tag { return nbt.Float(p.Food.Exhaustion) })
	field("abilities", func(p *world.PlayerData) nbt.Tag { return p.Abilities.Save() })
	field("EnderItems", func(p *world.PlayerData) nbt.Tag { return world.SaveItems(p.EnderItems) })
	field("ShoulderEntityLeft", func(p *world.PlayerData) nbt.Tag { return compound(p.ShoulderLeft) })
	field("ShoulderEntityRight", func(p *world.PlayerData) nbt.Tag { return compound(p.ShoulderRight) })
	field("LastDeathLocation", func(p *world.PlayerData) nbt.Tag {
		if p.LastDeathLocation == nil {
			return nil
		}
		return p.LastDeathLocation.Save()
	})
}

// RegisterServerPlayer registers the fields connected players add.
func RegisterServerPlayer(b *Builder, s world.Saver) {
	field := func(name string, fn func(sp *world.ServerPlayerData) nbt.Tag) {
		RegisterFor(b, name, func(e world.ServerPlayer) nbt.Tag { return fn(e.ServerPlayerData()) })
	}

	field("warden_spawn_tracker", func(sp *world.ServerPlayerData) nbt.Tag {
		if sp.WardenTracker == nil {
			return nil
		}
		return sp.WardenTracker.Save()
	})
	field("playerGameType", func(sp *world.ServerPlayerData) nbt.Tag { return nbt.Int(sp.GameMode) })
	field("previousPlayerGameType", func(sp *world.ServerPlayerData) nbt.Tag {
		if sp.PreviousGameMode == nil {
			return nil
		}
		return nbt.Int(*sp.PreviousGameMode)
	})
	field("seenCredits", func(sp *world.ServerPlayerData) nbt.Tag { return nbt.Bool(sp.SeenCredits) })
	field("enteredNetherPosition", func(sp *world.ServerPlayerData) nbt.Tag {
		if sp.EnteredNetherPosition == nil {
			return nil
		}
		return world.SaveNetherPosition(*sp.EnteredNetherPosition)
	})
	field("recipeBook", func(sp *world.ServerPlayerData) nbt.Tag { return sp.RecipeBook.Save() })
	field("Dimension", func(sp *world.ServerPlayerData) nbt.Tag { return nbt.String(sp.Dimension) })

	respawn := func(name string, fn func(r *world.Respawn) nbt.Tag) {
		field(name, func(sp *world.ServerPlayerData) nbt.Tag {
			if sp.Respawn == nil {
				return nil
			}
			return fn(sp.Respawn)
		})
	}
	respawn("SpawnX", func(r *world.Respawn) nbt.Tag { return nbt.Int(r.Pos.X) })
	respawn("SpawnY", func(r *world.Respawn) nbt.Tag { return nbt.Int(r.Pos.Y) })
	respawn("SpawnZ", func(r *world.Respawn) nbt.Tag { return nbt.Int(r.Pos.Z) })
	respawn("SpawnForced", func(r *world.Respawn) nbt.Tag { return nbt.Bool(r.Forced) })
	respawn("SpawnAngle", func(r *world.Respawn) nbt.Tag { return nbt.Float(r.Angle) })
	respawn("SpawnDimension", func(r *world.Respawn) nbt.Tag { return nbt.String(r.Dimension) })

	RegisterFor(b, "RootVehicle", s.SaveRootVehicle)
	RegisterFor(b, "SelectedItem", func(e world.ServerPlayer) nbt.Tag {
		held := world.SelectedItem(e)
		if held.IsEmpty() {
			return nil
		}
		return held.Save()
	})
}

// RegisterNeoForge registers the fields the NeoForge platform adds to every
// entity. The registry it goes into must pair with a Saver that has
// NeoForge set.
func RegisterNeoForge(b *Builder, _ world.Saver) {
	field := func(name string, fn func(d *world.EntityData) nbt.Tag) {
		b.Register(name, func(e world.Entity) nbt.Tag { return fn(e.Data()) })
	}

	field(world.CanUpdateKey, func(d *world.EntityData) nbt.Tag { return nbt.Bool(!d.UpdatesDisabled) })
	field(world.AttachmentsKey, func(d *world.EntityData) nbt.Tag { return compound(d.Attachments) })
	field(world.PersistentDataKey, func(d *world.EntityData) nbt.Tag {
		if d.PersistentData == nil {
			return nbt.Compound{}
		}
		return d.PersistentData.Clone()
	})
}
