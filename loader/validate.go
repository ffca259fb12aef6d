package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/retrodungeon/engine/state"
	"github.com/nathoo/retrodungeon/engine/world"
	"github.com/nathoo/retrodungeon/types"
)

// ValidationError collects all validation errors.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) add(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

var validDirections = map[string]bool{
	"north": true, "south": true, "east": true,
	"west": true, "up": true, "down": true,
}

var reverseDirection = map[string]string{
	"north": "south", "south": "north",
	"east": "west", "west": "east",
	"up": "down", "down": "up",
}

// validate checks the compiled defs for referential integrity and
// consistency. Warnings never fail loading.
func validate(defs *state.Defs) (warnings []string, err error) {
	ve := &ValidationError{}
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	if defs.Game.Title == "" {
		ve.add("Game.title is required")
	}
	if p := defs.Game.Player; p.Health < 1 || p.Health > state.MaxHealth {
		ve.add("Game.player.health must be between 1 and %d, got %d", state.MaxHealth, p.Health)
	}

	rooms := map[string]types.RoomDef{}
	for _, r := range defs.Rooms {
		rooms[r.Tag] = r
	}
	if defs.Game.Start == "" {
		ve.add("Game.start is required")
	} else if _, ok := rooms[defs.Game.Start]; !ok {
		ve.add("start room %q not found in defined rooms", defs.Game.Start)
	}

	for _, tag := range sortedKeys(defs.Items) {
		it := defs.Items[tag]
		if it.Damage < 0 || it.Armor < 0 {
			ve.add("item %q has a negative bonus", tag)
		}
		switch {
		case it.Kind == types.KindWeapon && it.Damage == 0:
			warn("item %q is a weapon with no damage", tag)
		case it.Kind == types.KindArmor && it.Armor == 0:
			warn("item %q is armor with no protection", tag)
		}
	}

	for _, tag := range sortedKeys(defs.Species) {
		m := defs.Species[tag]
		if m.Health <= 0 {
			ve.add("monster %q must have positive health", tag)
		}
		if m.Attack < 0 {
			ve.add("monster %q has negative attack", tag)
		}
		if m.MaxHealth < m.Health {
			ve.add("monster %q max_health %d is below health %d", tag, m.MaxHealth, m.Health)
		}
	}

	names := map[string]string{}
	cells := map[[2]int]string{}
	for _, r := range defs.Rooms {
		if r.Name == "" {
			ve.add("room %q has no name", r.Tag)
		} else if other, dup := names[strings.ToLower(r.Name)]; dup {
			ve.add("rooms %q and %q share the name %q", other, r.Tag, r.Name)
		} else {
			names[strings.ToLower(r.Name)] = r.Tag
		}

		cell := [2]int{r.MapX, r.MapY}
		if other, dup := cells[cell]; dup {
			warn("rooms %q and %q share map position (%d, %d)", other, r.Tag, r.MapX, r.MapY)
		} else {
			cells[cell] = r.Tag
		}

		for _, dir := range sortedKeys(r.Exits) {
			target := r.Exits[dir]
			if !validDirections[dir] {
				ve.add("room %q has unknown exit direction %q", r.Tag, dir)
			}
			to, ok := rooms[target]
			if !ok {
				ve.add("room %q exit %q points to undefined room %q", r.Tag, dir, target)
				continue
			}
			if to.Exits[reverseDirection[dir]] != r.Tag {
				warn("room %q exit %q to %q is one-way", r.Tag, dir, target)
			}
		}

		for _, tag := range r.Items {
			if _, ok := defs.Items[tag]; !ok {
				ve.add("room %q references undefined item %q", r.Tag, tag)
			}
		}

		for _, f := range r.Furniture {
			if f.X1 > f.X2 || f.Y1 > f.Y2 ||
				f.X1 < 0 || f.Y1 < 0 || f.X2 >= world.GridWidth || f.Y2 >= world.GridHeight {
				ve.add("room %q furniture %v is outside the %dx%d grid or inverted",
					r.Tag, f, world.GridWidth, world.GridHeight)
			}
		}

		for _, sp := range r.Monsters {
			if _, ok := defs.Species[sp.Species]; !ok {
				ve.add("room %q spawns undefined monster %q", r.Tag, sp.Species)
			}
			if sp.X < world.MinCoord || sp.X > world.MaxX || sp.Y < world.MinCoord || sp.Y > world.MaxY {
				ve.add("room %q spawns %q at (%g, %g), outside the room", r.Tag, sp.Species, sp.X, sp.Y)
				continue
			}
			for _, f := range r.Furniture {
				if f.Contains(int(sp.X), int(sp.Y)) {
					warn("room %q spawns %q on furniture at (%g, %g)", r.Tag, sp.Species, sp.X, sp.Y)
				}
			}
		}
	}

	if len(ve.Errors) > 0 {
		return warnings, ve
	}
	return warnings, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
