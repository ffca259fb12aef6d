// Package state holds the immutable content definitions and the single
// mutable session built from them.
package state

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/nathoo/retrodungeon/engine/inventory"
	"github.com/nathoo/retrodungeon/engine/monster"
	"github.com/nathoo/retrodungeon/engine/quest"
	"github.com/nathoo/retrodungeon/engine/world"
	"github.com/nathoo/retrodungeon/types"
)

// MaxHealth caps the player's health.
const MaxHealth = 100

// Room-local player positions.
const (
	StartX, StartY = 12.0, 9.0 // fresh session and teleport
	EntryX, EntryY = 10.0, 8.0 // after walking through an exit
)

// Defs holds the immutable game definitions loaded from Lua.
type Defs struct {
	Game    types.GameDef
	Rooms   []types.RoomDef // arena order
	Items   map[string]types.Item
	Species map[string]types.MonsterDef
}

// MaxHealth returns the species maximum used for health bars.
func (d *Defs) MaxHealth(species string) int {
	def, ok := d.Species[species]
	if !ok {
		return 0
	}
	if def.MaxHealth > 0 {
		return def.MaxHealth
	}
	return def.Health
}

// Player is the player's mutable stats and room-local position.
type Player struct {
	Health     int
	BaseAttack int
	BaseArmor  int
	X, Y       float64
	Female     bool
}

// Session is all mutable state for one process run.
type Session struct {
	ID         string
	World      *world.World
	Start      world.RoomID
	Current    world.RoomID
	Inventory  *inventory.Inventory
	Player     Player
	Flags      quest.Flags
	Ending     quest.Ending
	MapView    bool
	ShouldQuit bool
}

// NewSession builds a fresh world from defs and places the player in the
// start room.
func NewSession(defs *Defs, timing monster.Timing) (*Session, error) {
	w := world.New()
	for _, rd := range defs.Rooms {
		r := w.AddRoom(rd.Tag, rd.Name, rd.Description)
		r.MapX, r.MapY = rd.MapX, rd.MapY
		for _, f := range rd.Furniture {
			r.AddFurniture(f)
		}
		for _, tag := range rd.Items {
			it, ok := defs.Items[tag]
			if !ok {
				return nil, fmt.Errorf("room %q: unknown item %q", rd.Tag, tag)
			}
			r.AddItem(it)
		}
		for _, sp := range rd.Monsters {
			def, ok := defs.Species[sp.Species]
			if !ok {
				return nil, fmt.Errorf("room %q: unknown monster %q", rd.Tag, sp.Species)
			}
			r.AddMonster(monster.Spawn(def, sp.X, sp.Y, timing))
		}
	}

	// Exits need every room in the arena first.
	for _, rd := range defs.Rooms {
		from, _ := w.ByTag(rd.Tag)
		for dir, tag := range rd.Exits {
			to, ok := w.ByTag(tag)
			if !ok {
				return nil, fmt.Errorf("room %q: exit %q leads to unknown room %q", rd.Tag, dir, tag)
			}
			from.SetExit(dir, to.ID)
		}
	}

	start, ok := w.ByTag(defs.Game.Start)
	if !ok {
		return nil, fmt.Errorf("start room %q not found", defs.Game.Start)
	}
	start.Visited = true

	return &Session{
		ID:        uuid.NewString(),
		World:     w,
		Start:     start.ID,
		Current:   start.ID,
		Inventory: inventory.New(),
		Player: Player{
			Health:     defs.Game.Player.Health,
			BaseAttack: defs.Game.Player.Attack,
			BaseArmor:  defs.Game.Player.Armor,
			X:          StartX,
			Y:          StartY,
		},
	}, nil
}

// Room returns the room the player is in.
func (s *Session) Room() *world.Room {
	return s.World.Room(s.Current)
}

// TotalAttack is base attack plus the equipped weapon bonus.
func (s *Session) TotalAttack() int {
	return s.Inventory.TotalAttack(s.Player.BaseAttack)
}

// TotalArmor is base armor plus the equipped armor bonus.
func (s *Session) TotalArmor() int {
	return s.Inventory.TotalArmor(s.Player.BaseArmor)
}

// Revealed reports whether the map shows a room: the start room or any room
// an exit leads into.
func (s *Session) Revealed(id world.RoomID) bool {
	return id == s.Start || s.World.Reachable(id)
}

// InEnding reports whether normal play is suspended by the ending sequence.
func (s *Session) InEnding() bool {
	return s.Flags.GameEnding || s.Ending.Active()
}
