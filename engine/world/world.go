// Package world implements the room graph: an arena of uniquely named rooms
// connected by directed, named exits, each owning its items and monsters.
package world

import (
	"sort"
	"strings"

	"github.com/nathoo/retrodungeon/engine/monster"
	"github.com/nathoo/retrodungeon/types"
)

// Room grid dimensions, in tiles. The outer ring is wall.
const (
	GridWidth  = 24
	GridHeight = 18
)

// RoomID indexes a room in its world's arena.
type RoomID int

// NoRoom is returned by lookups that find nothing.
const NoRoom RoomID = -1

// Room is a node of the world graph.
type Room struct {
	ID          RoomID
	Tag         string
	Name        string
	Description string
	Visited     bool
	MapX, MapY  int

	exits     map[string]RoomID
	items     []types.Item
	monsters  []*monster.Monster
	furniture []types.Rect
}

// World owns every room for the lifetime of a session.
type World struct {
	rooms  []*Room
	byTag  map[string]RoomID
	byName map[string]RoomID
}

// New creates an empty world.
func New() *World {
	return &World{
		byTag:  map[string]RoomID{},
		byName: map[string]RoomID{},
	}
}

// AddRoom appends a room to the arena and returns it.
func (w *World) AddRoom(tag, name, description string) *Room {
	r := &Room{
		ID:          RoomID(len(w.rooms)),
		Tag:         tag,
		Name:        name,
		Description: description,
		exits:       map[string]RoomID{},
	}
	w.rooms = append(w.rooms, r)
	w.byTag[tag] = r.ID
	w.byName[strings.ToLower(name)] = r.ID
	return r
}

// Room returns the room with the given id, or nil.
func (w *World) Room(id RoomID) *Room {
	if id < 0 || int(id) >= len(w.rooms) {
		return nil
	}
	return w.rooms[id]
}

// ByTag returns the room with the given content tag.
func (w *World) ByTag(tag string) (*Room, bool) {
	id, ok := w.byTag[tag]
	if !ok {
		return nil, false
	}
	return w.rooms[id], true
}

// ByName returns the room with the given display name, case-insensitively.
func (w *World) ByName(name string) (*Room, bool) {
	id, ok := w.byName[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return w.rooms[id], true
}

// Rooms returns every room in arena order.
func (w *World) Rooms() []*Room {
	return w.rooms
}

// Reachable reports whether any room has an exit into id.
func (w *World) Reachable(id RoomID) bool {
	for _, r := range w.rooms {
		for _, target := range r.exits {
			if target == id {
				return true
			}
		}
	}
	return false
}

// SetExit inserts or overwrites the directed edge direction → target.
func (r *Room) SetExit(direction string, target RoomID) {
	r.exits[direction] = target
}

// Exit returns the room reached by going direction, if any.
func (r *Room) Exit(direction string) (RoomID, bool) {
	id, ok := r.exits[direction]
	if !ok {
		return NoRoom, false
	}
	return id, true
}

// Exits returns the exit directions in sorted order.
func (r *Room) Exits() []string {
	dirs := make([]string, 0, len(r.exits))
	for dir := range r.exits {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// AddItem appends a copy of item to the room.
func (r *Room) AddItem(item types.Item) {
	r.items = append(r.items, item)
}

// FindItem returns the first takeable item matching name.
func (r *Room) FindItem(name string) (types.Item, bool) {
	for _, it := range r.items {
		if it.Takeable && strings.EqualFold(it.Name, name) {
			return it, true
		}
	}
	return types.Item{}, false
}

// RemoveItem removes the first takeable item matching name.
func (r *Room) RemoveItem(name string) (types.Item, bool) {
	for i, it := range r.items {
		if it.Takeable && strings.EqualFold(it.Name, name) {
			r.items = append(r.items[:i:i], r.items[i+1:]...)
			return it, true
		}
	}
	return types.Item{}, false
}

// Items returns a copy of the room's items in insertion order.
func (r *Room) Items() []types.Item {
	out := make([]types.Item, len(r.items))
	copy(out, r.items)
	return out
}

// AddMonster appends a monster to the room.
func (r *Room) AddMonster(m *monster.Monster) {
	r.monsters = append(r.monsters, m)
}

// Monsters returns the room's monsters, dead ones included.
func (r *Room) Monsters() []*monster.Monster {
	return r.monsters
}

// AddFurniture blocks the tiles covered by rect.
func (r *Room) AddFurniture(rect types.Rect) {
	r.furniture = append(r.furniture, rect)
}

// Furniture returns the room's blocked rectangles.
func (r *Room) Furniture() []types.Rect {
	return r.furniture
}

// Walkable reports whether a tile is off the wall ring and clear of furniture.
func (r *Room) Walkable(tileX, tileY int) bool {
	if tileX <= 0 || tileX >= GridWidth-1 || tileY <= 0 || tileY >= GridHeight-1 {
		return false
	}
	for _, f := range r.furniture {
		if f.Contains(tileX, tileY) {
			return false
		}
	}
	return true
}

// Inner bounds for continuous positions.
const (
	MinCoord = 1.5
	MaxX     = GridWidth - 2.5
	MaxY     = GridHeight - 2.5
)

// Contains reports whether a continuous position lies inside the inner bounds.
func (r *Room) Contains(x, y float64) bool {
	return x >= MinCoord && x <= MaxX && y >= MinCoord && y <= MaxY
}

// Describe composes the static text with the visible items and the
// living creatures. Each part is its own line.
func (r *Room) Describe() []string {
	lines := []string{r.Description}

	if len(r.items) > 0 {
		names := make([]string, len(r.items))
		for i, it := range r.items {
			names[i] = it.Name
		}
		lines = append(lines, "You see: "+strings.Join(names, ", "))
	}

	var alive []string
	for _, m := range r.monsters {
		if m.Alive {
			alive = append(alive, m.Name)
		}
	}
	if len(alive) > 0 {
		lines = append(lines, "Creatures: "+strings.Join(alive, ", "))
	}

	return lines
}
