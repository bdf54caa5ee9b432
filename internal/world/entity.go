package world

import (
	"github.com/google/uuid"

	"github.com/roach88/fastnbt/internal/nbt"
)

// Entity is anything that lives in the world and can be saved.
type Entity interface {
	// Kind is the registry id written as "id" by SaveWithID.
	Kind() string

	// Data exposes the state shared by every entity.
	Data() *EntityData

	// AddSaveData writes the entity's fields into c. Implementations that
	// embed another entity type call the embedded AddSaveData first.
	AddSaveData(s Saver, c nbt.Compound)
}

// Living is an entity with health, effects and attributes.
type Living interface {
	Entity
	LivingData() *LivingData
}

// Player is a living entity with an inventory and experience.
type Player interface {
	Living
	PlayerData() *PlayerData
}

// ServerPlayer is a player connected to the server.
type ServerPlayer interface {
	Player
	ServerPlayerData() *ServerPlayerData
}

// Vec3 is a position or velocity.
type Vec3 struct {
	X, Y, Z float64
}

// BlockPos is an integer block coordinate.
type BlockPos struct {
	X, Y, Z int
}

// EntityData is the state every entity carries.
type EntityData struct {
	UUID              uuid.UUID    `yaml:"-"`
	Pos               Vec3         `yaml:"pos"`
	Motion            Vec3         `yaml:"motion"`
	Yaw               float32      `yaml:"yaw"`
	Pitch             float32      `yaml:"pitch"`
	FallDistance      float64      `yaml:"fall_distance"`
	FireTicks         int          `yaml:"fire_ticks"`
	Air               int          `yaml:"air"`
	OnGround          bool         `yaml:"on_ground"`
	Invulnerable      bool         `yaml:"invulnerable"`
	PortalCooldown    int          `yaml:"portal_cooldown"`
	CustomName        string       `yaml:"custom_name"`
	CustomNameVisible bool         `yaml:"custom_name_visible"`
	Silent            bool         `yaml:"silent"`
	NoGravity         bool         `yaml:"no_gravity"`
	Glowing           bool         `yaml:"glowing"`
	VisualFire        bool         `yaml:"visual_fire"`
	TicksFrozen       int          `yaml:"ticks_frozen"`
	Tags              []string     `yaml:"tags"`
	Removed           bool         `yaml:"removed"`
	UpdatesDisabled   bool         `yaml:"updates_disabled"`
	Attachments       nbt.Compound `yaml:"attachments"`
	PersistentData    nbt.Compound `yaml:"persistent_data"`

	vehicle    Entity
	passengers []Entity
}

// Vehicle returns the entity this one rides, or nil.
func (d *EntityData) Vehicle() Entity { return d.vehicle }

// Passengers returns the entities riding this one, in mount order.
func (d *EntityData) Passengers() []Entity { return d.passengers }

// LivingData is the state of a living entity.
type LivingData struct {
	Health           float32      `yaml:"health"`
	HurtTime         int          `yaml:"hurt_time"`
	HurtByTimestamp  int          `yaml:"hurt_by_timestamp"`
	DeathTime        int          `yaml:"death_time"`
	AbsorptionAmount float32      `yaml:"absorption"`
	Attributes       []Attribute  `yaml:"attributes"`
	Effects          []Effect     `yaml:"effects"`
	FallFlying       bool         `yaml:"fall_flying"`
	SleepingPos      *BlockPos    `yaml:"sleeping_pos"`
	Memories         nbt.Compound `yaml:"memories"`
}

// Attribute is a base value plus modifiers, e.g. generic.max_health.
type Attribute struct {
	Name      string     `yaml:"name"`
	Base      float64    `yaml:"base"`
	Modifiers []Modifier `yaml:"modifiers"`
}

// Modifier adjusts an attribute.
type Modifier struct {
	Name      string    `yaml:"name"`
	Amount    float64   `yaml:"amount"`
	Operation int       `yaml:"operation"`
	UUID      uuid.UUID `yaml:"uuid"`
}

// Effect is an active status effect.
type Effect struct {
	ID            string `yaml:"id"`
	Amplifier     int    `yaml:"amplifier"`
	Duration      int    `yaml:"duration"`
	Ambient       bool   `yaml:"ambient"`
	HideParticles bool   `yaml:"hide_particles"`
	HideIcon      bool   `yaml:"hide_icon"`
}

// PlayerData is the state of a player.
type PlayerData struct {
	Inventory         []ItemStack  `yaml:"inventory"`
	SelectedSlot      int          `yaml:"selected_slot"`
	SleepTimer        int          `yaml:"sleep_timer"`
	XpProgress        float32      `yaml:"xp_progress"`
	XpLevel           int          `yaml:"xp_level"`
	XpTotal           int          `yaml:"xp_total"`
	XpSeed            int64        `yaml:"xp_seed"`
	Score             int          `yaml:"score"`
	Food              Food         `yaml:"food"`
	Abilities         Abilities    `yaml:"abilities"`
	EnderItems        []ItemStack  `yaml:"ender_items"`
	ShoulderLeft      nbt.Compound `yaml:"shoulder_left"`
	ShoulderRight     nbt.Compound `yaml:"shoulder_right"`
	LastDeathLocation *GlobalPos   `yaml:"last_death_location"`
}

// Food is the hunger state of a player.
type Food struct {
	Level      int     `yaml:"level"`
	TickTimer  int     `yaml:"tick_timer"`
	Saturation float32 `yaml:"saturation"`
	Exhaustion float32 `yaml:"exhaustion"`
}

// Abilities are the movement and building permissions of a player.
type Abilities struct {
	Invulnerable bool    `yaml:"invulnerable"`
	Flying       bool    `yaml:"flying"`
	MayFly       bool    `yaml:"may_fly"`
	InstaBuild   bool    `yaml:"insta_build"`
	MayBuild     bool    `yaml:"may_build"`
	FlySpeed     float32 `yaml:"fly_speed"`
	WalkSpeed    float32 `yaml:"walk_speed"`
}

// GlobalPos is a block position in a named dimension.
type GlobalPos struct {
	Dimension string   `yaml:"dimension"`
	Pos       BlockPos `yaml:"pos"`
}

// ServerPlayerData is the state of a connected player.
type ServerPlayerData struct {
	WardenTracker         *WardenTracker `yaml:"warden_tracker"`
	GameMode              int            `yaml:"game_mode"`
	PreviousGameMode      *int           `yaml:"previous_game_mode"`
	SeenCredits           bool           `yaml:"seen_credits"`
	EnteredNetherPosition *Vec3          `yaml:"entered_nether_position"`
	RecipeBook            RecipeBook     `yaml:"recipe_book"`
	Dimension             string         `yaml:"dimension"`
	Respawn               *Respawn       `yaml:"respawn"`
}

// WardenTracker counts warden warnings issued near a player.
type WardenTracker struct {
	TicksSinceLastWarning int `yaml:"ticks_since_last_warning"`
	WarningLevel          int `yaml:"warning_level"`
	CooldownTicks         int `yaml:"cooldown_ticks"`
}

// RecipeBook is the set of recipes a player has unlocked.
type RecipeBook struct {
	Known              []string `yaml:"known"`
	Highlight          []string `yaml:"highlight"`
	GuiOpen            bool     `yaml:"gui_open"`
	FilteringCraftable bool     `yaml:"filtering_craftable"`
}

// Respawn is a player's respawn point.
type Respawn struct {
	Pos       BlockPos `yaml:"pos"`
	Angle     float32  `yaml:"angle"`
	Forced    bool     `yaml:"forced"`
	Dimension string   `yaml:"dimension"`
}

// BaseEntity is an entity with no capabilities beyond the shared state.
type BaseEntity struct {
	kind string
	data EntityData
}

// NewEntity creates a plain entity of the given kind.
func NewEntity(kind string, data EntityData) *BaseEntity {
	return &BaseEntity{kind: kind, data: data}
}

func (e *BaseEntity) Kind() string { return e.kind }
func (e *BaseEntity) Data() *EntityData { return &e.data }

// LivingEntity is a mob or any other entity with health.
type LivingEntity struct {
	BaseEntity
	living LivingData
}

// NewLiving creates a living entity of the given kind.
func NewLiving(kind string, data EntityData, living LivingData) *LivingEntity {
	return &LivingEntity{BaseEntity: BaseEntity{kind: kind, data: data}, living: living}
}

func (e *LivingEntity) LivingData() *LivingData { return &e.living }

// PlayerEntity is a player not bound to a connection.
type PlayerEntity struct {
	LivingEntity
	player PlayerData
}

// NewPlayer creates a player.
func NewPlayer(data EntityData, living LivingData, player PlayerData) *PlayerEntity {
	return &PlayerEntity{
		LivingEntity: LivingEntity{BaseEntity: BaseEntity{kind: PlayerKind, data: data}, living: living},
		player:       player,
	}
}

func (e *PlayerEntity) PlayerData() *PlayerData { return &e.player }

// ServerPlayerEntity is a connected player.
type ServerPlayerEntity struct {
	PlayerEntity
	server ServerPlayerData
}

// NewServerPlayer creates a connected player.
func NewServerPlayer(data EntityData, living LivingData, player PlayerData, server ServerPlayerData) *ServerPlayerEntity {
	return &ServerPlayerEntity{PlayerEntity: *NewPlayer(data, living, player), server: server}
}

func (e *ServerPlayerEntity) ServerPlayerData() *ServerPlayerData { return &e.server }

// PlayerKind is the registry id of players.
const PlayerKind = "minecraft:player"

// DefaultEntityData returns the state of a freshly spawned entity.
func DefaultEntityData() EntityData {
	return EntityData{Air: 300}
}

// DefaultLivingData returns the state of a freshly spawned living entity.
func DefaultLivingData() LivingData {
	return LivingData{Health: 20}
}

// DefaultPlayerData returns the state of a freshly joined player.
func DefaultPlayerData() PlayerData {
	return PlayerData{
		Food: Food{Level: 20, Saturation: 5},
		Abilities: Abilities{
			MayBuild:  true,
			FlySpeed:  0.05,
			WalkSpeed: 0.1,
		},
	}
}

// DefaultServerPlayerData returns the state of a freshly connected player.
func DefaultServerPlayerData() ServerPlayerData {
	return ServerPlayerData{Dimension: "minecraft:overworld"}
}

// Mount makes passenger ride vehicle, dismounting it from any previous
// vehicle first.
func Mount(passenger, vehicle Entity) {
	Dismount(passenger)
	passenger.Data().vehicle = vehicle
	vd := vehicle.Data()
	vd.passengers = append(vd.passengers, passenger)
}

// Dismount removes passenger from its vehicle, if any.
func Dismount(passenger Entity) {
	pd := passenger.Data()
	if pd.vehicle == nil {
		return
	}
	vd := pd.vehicle.Data()
	for i, p := range vd.passengers {
		if p == passenger {
			vd.passengers = append(vd.passengers[:i:i], vd.passengers[i+1:]...)
			break
		}
	}
	pd.vehicle = nil
}

// RootVehicle follows vehicle links to the bottom of the stack. An entity
// riding nothing is its own root.
func RootVehicle(e Entity) Entity {
	for {
		v := e.Data().vehicle
		if v == nil {
			return e
		}
		e = v
	}
}

// IndirectPassengers returns every entity riding e, directly or through
// other passengers, depth first.
func IndirectPassengers(e Entity) []Entity {
	var out []Entity
	for _, p := range e.Data().passengers {
		out = append(out, p)
		out = append(out, IndirectPassengers(p)...)
	}
	return out
}

// SelectedItem returns the item in the player's selected hotbar slot.
func SelectedItem(p Player) ItemStack {
	pd := p.PlayerData()
	for _, item := range pd.Inventory {
		if item.Slot == pd.SelectedSlot && !item.IsEmpty() {
			return item
		}
	}
	return ItemStack{}
}
