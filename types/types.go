// Package types defines the shared data structures for the Retro Dungeon engine.
// This package contains only type definitions and trivial accessors.
package types

// Intent is the parsed representation of a player command.
type Intent struct {
	Verb   string
	Object string // optional
	Target string // optional
}

// Event is emitted when a command or a frame update mutates the world.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single command or frame update.
type Result struct {
	Events []Event
	Output []string
}

// ItemKind classifies an item template.
type ItemKind int

const (
	KindMisc ItemKind = iota
	KindWeapon
	KindArmor
)

func (k ItemKind) String() string {
	switch k {
	case KindWeapon:
		return "weapon"
	case KindArmor:
		return "armor"
	default:
		return "misc"
	}
}

// Item is a value type: it is copied between rooms and the inventory.
type Item struct {
	Tag         string // logic key, e.g. "key"
	Name        string // player-facing name, matched case-insensitively
	Description string
	Takeable    bool
	Kind        ItemKind
	Damage      int
	Armor       int
}

// Rect is an inclusive tile rectangle.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Contains reports whether the tile (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// MonsterDef is a monster species template.
type MonsterDef struct {
	Tag         string
	Name        string
	Description string
	Health      int
	MaxHealth   int
	Attack      int
	AggroRange  float64
}

// SpawnDef places a monster species at a room-local position.
type SpawnDef struct {
	Species string
	X, Y    float64
}

// RoomDef is the base definition of a room.
type RoomDef struct {
	Tag         string
	Name        string
	Description string
	Exits       map[string]string // direction → room tag
	Items       []string          // item tags, in insertion order
	Monsters    []SpawnDef
	Furniture   []Rect
	MapX, MapY  int
}

// PlayerDef holds the player's starting stats.
type PlayerDef struct {
	Health int
	Attack int
	Armor  int
}

// GameDef holds game metadata from Lua.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Start   string // starting room tag
	Intro   []string
	Player  PlayerDef
}
