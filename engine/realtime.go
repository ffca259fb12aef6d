package engine

import (
	"github.com/nathoo/retrodungeon/engine/quest"
	"github.com/nathoo/retrodungeon/engine/state"
	"github.com/nathoo/retrodungeon/engine/world"
	"github.com/nathoo/retrodungeon/types"
)

// Update advances the simulation by dt seconds: the ending sequence, then the
// monsters of the current room. Rooms the player is not in stay frozen.
func (e *Engine) Update(dt float64) types.Result {
	var r types.Result
	if dt <= 0 {
		return r
	}

	s := e.Session
	if s.Ending.Active() {
		if s.Ending.Update(dt, e.Timing.PhaseDuration) {
			emit(&r, "ending_advanced", map[string]any{"phase": s.Ending.Phase.String()})
			e.log.Info("ending advanced", "phase", s.Ending.Phase.String())
			if s.Ending.Phase == quest.GameOver {
				say(&r, "The world has ended. Type 'quit' to exit.")
			}
		}
		return r
	}
	// Waiting for continue suspends the room as well.
	if s.InEnding() {
		return r
	}

	room := e.Room()
	px, py := s.Player.X, s.Player.Y
	for _, m := range room.Monsters() {
		m.Update(dt, px, py, room, e.RNG, e.Timing.Monster)
	}
	for _, m := range room.Monsters() {
		if m.ReadyToStrike(dt, px, py, e.Timing.Monster) {
			e.strike(&r, m)
		}
	}
	return r
}

// MovePlayer steps the player by (dx, dy) tiles inside the current room.
// Each axis is committed only onto a walkable tile.
func (e *Engine) MovePlayer(dx, dy int) {
	p := &e.Session.Player
	room := e.Room()

	nx, ny := p.X+float64(dx), p.Y+float64(dy)
	if room.Walkable(int(nx), int(p.Y)) {
		p.X = nx
	}
	if room.Walkable(int(p.X), int(ny)) {
		p.Y = ny
	}

	p.X = clamp(p.X, world.MinCoord, world.MaxX)
	p.Y = clamp(p.Y, world.MinCoord, world.MaxY)
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

// Teleport moves the player to a visited room picked on the map.
func (e *Engine) Teleport(id world.RoomID) types.Result {
	var r types.Result
	s := e.Session

	switch {
	case s.Ending.Active() || s.Flags.GameEnding:
		return r
	case !s.Flags.HasTeleport:
		say(&r, "You don't know how to teleport.")
		return r
	case !s.MapView:
		say(&r, "Open the map to choose where to teleport.")
		return r
	}

	target := s.World.Room(id)
	if target == nil || !target.Visited || !s.Revealed(id) {
		say(&r, "You can only teleport to rooms you have explored.")
		return r
	}

	from := e.Room()
	s.Current = id
	s.Player.X, s.Player.Y = state.StartX, state.StartY
	s.MapView = false

	say(&r, "*Magical energy swirls around you*", "You teleport to the "+target.Name+"!")
	say(&r, e.describeRoom(target)...)
	emit(&r, "room_entered", map[string]any{"room": target.Tag, "from": from.Tag, "teleport": true})
	e.log.Info("teleported", "room", target.Tag, "from", from.Tag)
	return r
}

// TeleportTo looks a room up by its display name and teleports there.
func (e *Engine) TeleportTo(name string) types.Result {
	room, ok := e.Session.World.ByName(name)
	if !ok {
		var r types.Result
		say(&r, "There is no place called "+name+".")
		return r
	}
	return e.Teleport(room.ID)
}
