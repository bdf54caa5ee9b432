package world

import (
	"github.com/roach88/fastnbt/internal/nbt"
)

// DataVersion is the data version players are saved with.
const DataVersion = 3700

// NeoForge keys added to every saved entity when the platform is enabled.
const (
	CanUpdateKey      = "CanUpdate"
	AttachmentsKey    = "neoforge:attachments"
	PersistentDataKey = "NeoForgeData"
)

// Saver produces the full saved state of entities. The zero value saves
// like the vanilla server.
type Saver struct {
	NeoForge bool
}

// SaveWithoutID returns the complete saved state of e, without its id.
// This is the ground truth for every field extractor.
func (s Saver) SaveWithoutID(e Entity) nbt.Compound {
	c := nbt.Compound{}
	e.AddSaveData(s, c)
	if s.NeoForge {
		d := e.Data()
		c[CanUpdateKey] = nbt.Bool(!d.UpdatesDisabled)
		if len(d.Attachments) > 0 {
			c[AttachmentsKey] = d.Attachments.Clone()
		}
		c[PersistentDataKey] = persistentData(d)
	}
	if sp, ok := e.(ServerPlayer); ok {
		if held := SelectedItem(sp); !held.IsEmpty() {
			c["SelectedItem"] = held.Save()
		}
	}
	return c
}

// SaveWithID is SaveWithoutID plus the entity's "id".
func (s Saver) SaveWithID(e Entity) nbt.Compound {
	c := s.SaveWithoutID(e)
	c["id"] = nbt.String(e.Kind())
	return c
}

// SaveAsPassenger saves e for embedding in its vehicle's Passengers list.
// Removed entities and players are never saved this way.
func (s Saver) SaveAsPassenger(e Entity) (nbt.Compound, bool) {
	if e.Data().Removed {
		return nil, false
	}
	if _, ok := e.(Player); ok {
		return nil, false
	}
	return s.SaveWithID(e), true
}

// SavePassengers saves every passenger that can be saved, or returns nil
// when none can.
func (s Saver) SavePassengers(e Entity) nbt.Tag {
	var list nbt.List
	for _, p := range e.Data().passengers {
		if c, ok := s.SaveAsPassenger(p); ok {
			list = append(list, c)
		}
	}
	if len(list) == 0 {
		return nil
	}
	return list
}

// Predicate compares expected against the full saved state of each entity.
// It is exact, and as slow as a full save.
func (s Saver) Predicate(expected nbt.Compound, invert bool) func(Entity) bool {
	return func(e Entity) bool {
		return nbt.SubsetMatch(expected, s.SaveWithoutID(e), true) != invert
	}
}

func persistentData(d *EntityData) nbt.Compound {
	if d.PersistentData == nil {
		return nbt.Compound{}
	}
	return d.PersistentData.Clone()
}

// SavedPos is the position written for e: a riding entity is saved at its
// vehicle's position.
func SavedPos(e Entity) Vec3 {
	if v := e.Data().vehicle; v != nil {
		return v.Data().Pos
	}
	return e.Data().Pos
}

// AddSaveData writes the fields shared by every entity.
func (e *BaseEntity) AddSaveData(s Saver, c nbt.Compound) {
	d := &e.data
	c["Pos"] = SavedPos(e).Save()
	c["Motion"] = d.Motion.Save()
	c["Rotation"] = nbt.Floats(d.Yaw, d.Pitch)
	c["FallDistance"] = nbt.Double(d.FallDistance)
	c["Fire"] = nbt.Short(d.FireTicks)
	c["Air"] = nbt.Short(d.Air)
	c["OnGround"] = nbt.Bool(d.OnGround)
	c["Invulnerable"] = nbt.Bool(d.Invulnerable)
	c["PortalCooldown"] = nbt.Int(d.PortalCooldown)
	c["UUID"] = nbt.UUIDToIntArray(d.UUID)
	if d.CustomName != "" {
		c["CustomName"] = nbt.String(NameJSON(d.CustomName))
	}
	if d.CustomNameVisible {
		c["CustomNameVisible"] = nbt.Bool(true)
	}
	if d.Silent {
		c["Silent"] = nbt.Bool(true)
	}
	if d.NoGravity {
		c["NoGravity"] = nbt.Bool(true)
	}
	if d.Glowing {
		c["Glowing"] = nbt.Bool(true)
	}
	if d.TicksFrozen > 0 {
		c["TicksFrozen"] = nbt.Int(d.TicksFrozen)
	}
	if d.VisualFire {
		c["HasVisualFire"] = nbt.Bool(true)
	}
	if len(d.Tags) > 0 {
		c["Tags"] = nbt.Strings(d.Tags...)
	}
	if p := s.SavePassengers(e); p != nil {
		c["Passengers"] = p
	}
}

// AddSaveData writes the shared fields, then the living fields.
func (e *LivingEntity) AddSaveData(s Saver, c nbt.Compound) {
	e.BaseEntity.AddSaveData(s, c)
	l := &e.living
	c["Health"] = nbt.Float(l.Health)
	c["HurtTime"] = nbt.Short(l.HurtTime)
	c["HurtByTimestamp"] = nbt.Int(l.HurtByTimestamp)
	c["DeathTime"] = nbt.Short(l.DeathTime)
	c["AbsorptionAmount"] = nbt.Float(l.AbsorptionAmount)
	c["Attributes"] = SaveAttributes(l.Attributes)
	if effects := SaveEffects(l.Effects); effects != nil {
		c["active_effects"] = effects
	}
	c["FallFlying"] = nbt.Bool(l.FallFlying)
	if p := l.SleepingPos; p != nil {
		c["SleepingX"] = nbt.Int(p.X)
		c["SleepingY"] = nbt.Int(p.Y)
		c["SleepingZ"] = nbt.Int(p.Z)
	}
	c["Brain"] = SaveBrain(l.Memories)
}

// AddSaveData writes the living fields, then the player fields.
func (e *PlayerEntity) AddSaveData(s Saver, c nbt.Compound) {
	e.LivingEntity.AddSaveData(s, c)
	p := &e.player
	c["DataVersion"] = nbt.Int(DataVersion)
	c["Inventory"] = SaveItems(p.Inventory)
	c["SelectedItemSlot"] = nbt.Int(p.SelectedSlot)
	c["SleepTimer"] = nbt.Short(p.SleepTimer)
	c["XpP"] = nbt.Float(p.XpProgress)
	c["XpLevel"] = nbt.Int(p.XpLevel)
	c["XpTotal"] = nbt.Int(p.XpTotal)
	c["XpSeed"] = nbt.Long(p.XpSeed)
	c["Score"] = nbt.Int(p.Score)
	p.Food.Save(c)
	c["abilities"] = p.Abilities.Save()
	c["EnderItems"] = SaveItems(p.EnderItems)
	if len(p.ShoulderLeft) > 0 {
		c["ShoulderEntityLeft"] = p.ShoulderLeft.Clone()
	}
	if len(p.ShoulderRight) > 0 {
		c["ShoulderEntityRight"] = p.ShoulderRight.Clone()
	}
	if p.LastDeathLocation != nil {
		c["LastDeathLocation"] = p.LastDeathLocation.Save()
	}
}

// AddSaveData writes the player fields, then the connection fields.
func (e *ServerPlayerEntity) AddSaveData(s Saver, c nbt.Compound) {
	e.PlayerEntity.AddSaveData(s, c)
	sp := &e.server
	if sp.WardenTracker != nil {
		c["warden_spawn_tracker"] = sp.WardenTracker.Save()
	}
	c["playerGameType"] = nbt.Int(sp.GameMode)
	if sp.PreviousGameMode != nil {
		c["previousPlayerGameType"] = nbt.Int(*sp.PreviousGameMode)
	}
	c["seenCredits"] = nbt.Bool(sp.SeenCredits)
	if sp.EnteredNetherPosition != nil {
		c["enteredNetherPosition"] = SaveNetherPosition(*sp.EnteredNetherPosition)
	}
	if rv := s.SaveRootVehicle(e); rv != nil {
		c["RootVehicle"] = rv
	}
	c["recipeBook"] = sp.RecipeBook.Save()
	c["Dimension"] = nbt.String(sp.Dimension)
	if r := sp.Respawn; r != nil {
		c["SpawnX"] = nbt.Int(r.Pos.X)
		c["SpawnY"] = nbt.Int(r.Pos.Y)
		c["SpawnZ"] = nbt.Int(r.Pos.Z)
		c["SpawnForced"] = nbt.Bool(r.Forced)
		c["SpawnAngle"] = nbt.Float(r.Angle)
		c["SpawnDimension"] = nbt.String(r.Dimension)
	}
}

// SaveRootVehicle writes {Attach, Entity} for a player riding a stack whose
// only player is that player, or returns nil.
func (s Saver) SaveRootVehicle(p ServerPlayer) nbt.Tag {
	root := RootVehicle(p)
	if root == Entity(p) || !onlyPlayerPassenger(root) {
		return nil
	}
	vehicle := p.Data().vehicle
	return nbt.Compound{
		"Attach": nbt.UUIDToIntArray(vehicle.Data().UUID),
		"Entity": s.SaveWithID(root),
	}
}

func onlyPlayerPassenger(root Entity) bool {
	n := 0
	for _, p := range IndirectPassengers(root) {
		if _, ok := p.(Player); ok {
			n++
		}
	}
	return n == 1
}
