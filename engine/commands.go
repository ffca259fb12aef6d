package engine

import (
	"strings"

	"github.com/nathoo/retrodungeon/engine/parser"
	"github.com/nathoo/retrodungeon/engine/state"
	"github.com/nathoo/retrodungeon/types"
)

var helpText = []string{
	"=== COMMAND HELP ===",
	"",
	"MOVEMENT:",
	"  go [direction] - Move to another room (north, south, east, west, up, down)",
	"  Arrow Keys - Move character within room",
	"",
	"EXPLORATION:",
	"  look - Examine current room and see exits",
	"  take [item] - Pick up an item from the room",
	"  inventory (or inv) - View your carried items",
	"  use [item] - Use an item from your inventory",
	"  map - Toggle the dungeon map (requires scroll)",
	"",
	"EQUIPMENT:",
	"  equip [item] - Equip any item (weapons give attack, armor gives protection)",
	"  equip [item] weapon|armor - Choose the slot for items that fit both",
	"  drop [item] - Drop an item from inventory to current room",
	"  stats [item] - View detailed item statistics and bonuses",
	"",
	"COMBAT:",
	"  DELETE - Attack nearby monsters",
	"  Get close to monsters (within 3 tiles) to attack them",
	"",
	"CHARACTER:",
	"  male - Set character as male",
	"  female - Set character as female",
	"",
	"INTERFACE:",
	"  Page Up/Page Down - Scroll through chat history",
	"  Mouse Wheel - Scroll through chat history",
	"  help - Show this help screen",
	"  quit - Exit the game",
}

// Step processes one player command and returns the result.
func (e *Engine) Step(input string) types.Result {
	var r types.Result

	intent := parser.Parse(input)
	if intent.Verb == "" {
		return r
	}

	s := e.Session
	if s.InEnding() && intent.Verb != "quit" {
		switch {
		case s.Flags.WaitingForContinue && intent.Verb == "continue":
		case s.Flags.WaitingForContinue:
			say(&r, "Type 'continue' to continue...")
			return r
		default:
			say(&r, "There is nothing left to do. Type 'quit' to exit.")
			return r
		}
	}

	switch intent.Verb {
	case "help":
		say(&r, helpText...)
	case "male":
		s.Player.Female = false
		say(&r, "You are now a male character.")
	case "female":
		s.Player.Female = true
		say(&r, "You are now a female character.")
	case "look":
		say(&r, e.describeRoom(e.Room())...)
	case "go":
		e.cmdGo(&r, intent.Object)
	case "take":
		e.cmdTake(&r, intent.Object)
	case "inventory":
		e.cmdInventory(&r)
	case "equip":
		e.cmdEquip(&r, intent.Object, intent.Target)
	case "drop":
		e.cmdDrop(&r, intent.Object)
	case "stats":
		e.cmdStats(&r, intent.Object)
	case "use":
		e.cmdUse(&r, intent.Object)
	case "map":
		e.cmdMap(&r)
	case "combine":
		e.cmdCombine(&r)
	case "continue":
		e.cmdContinue(&r)
	case "quit":
		say(&r, "Thanks for playing!")
		s.ShouldQuit = true
	default:
		say(&r, "I don't understand that command.")
	}

	e.log.Debug("command", "input", input, "verb", intent.Verb, "object", intent.Object, "room", e.Room().Tag)
	return r
}

func (e *Engine) cmdGo(r *types.Result, direction string) {
	if direction == "" {
		say(r, "Go where?")
		return
	}

	s := e.Session
	from := e.Room()
	if d, ok := findLockedDoor(from.Tag, direction); ok && !d.unlocked(&s.Flags) {
		say(r, d.refusal...)
		return
	}

	id, ok := from.Exit(direction)
	if !ok {
		say(r, "You can't go that way.")
		return
	}

	s.Current = id
	to := e.Room()
	to.Visited = true
	s.Player.X, s.Player.Y = state.EntryX, state.EntryY

	say(r, "You go "+direction+".")
	say(r, e.describeRoom(to)...)
	emit(r, "room_entered", map[string]any{"room": to.Tag, "from": from.Tag})
	e.log.Info("room entered", "room", to.Tag, "from", from.Tag)

	e.enterTrigger(r, to)
}

func (e *Engine) cmdTake(r *types.Result, name string) {
	if name == "" {
		say(r, "Take what?")
		return
	}

	room := e.Room()
	it, ok := room.RemoveItem(name)
	if !ok {
		say(r, "You can't take that.")
		return
	}
	e.Session.Inventory.Add(it)
	emit(r, "item_taken", map[string]any{"item": it.Tag, "room": room.Tag})

	e.takeTrigger(r, it)

	if e.hasAllParts() && !e.Session.Flags.StaffComplete {
		say(r,
			"",
			"The four artifacts resonate with each other in your inventory!",
			"The staff parts seem to be calling out to be reunited...",
			"You sense you can now 'combine' them to restore the ancient staff!",
		)
		return
	}
	say(r, "You take the "+it.Name+".")
}

func (e *Engine) cmdInventory(r *types.Result) {
	inv := e.Session.Inventory
	if inv.Len() == 0 {
		say(r, "Your inventory is empty.")
		return
	}
	say(r, "You are carrying: "+strings.Join(inv.Names(), ", "))
}

func (e *Engine) cmdMap(r *types.Result) {
	s := e.Session
	if !s.Flags.MapUnlocked {
		say(r, "You need to take a better look in the library.")
		return
	}
	if s.MapView {
		s.MapView = false
		say(r, "Closing map view.")
		return
	}
	s.MapView = true
	if s.Flags.HasTeleport {
		say(r, "Opening map view... Press ESC to exit. Click on any explored room to teleport there!")
	} else {
		say(r, "Opening map view... Press ESC to exit.")
	}
}

func (e *Engine) cmdCombine(r *types.Result) {
	s := e.Session
	switch {
	case s.Flags.StaffComplete:
		say(r, "The staff is already complete and pulsing with power.")
	case e.hasAllParts():
		for _, tag := range staffParts {
			s.Inventory.RemoveTag(tag)
		}
		staff := e.Defs.Items[itemAncientStaff]
		s.Inventory.Add(staff)
		s.Flags.StaffComplete = true
		emit(r, "staff_combined", map[string]any{"item": staff.Tag})
		say(r,
			"The staff parts resonate with ancient power as you bring them together!",
			"The diamond, emerald, and opal float from your hands and embed themselves into the staff head.",
			"Light erupts from the completed staff as its true power is unleashed!",
			"You now hold the Ancient Staff of Power! (equip it for +25 attack)",
			"The way forward is now clear...",
		)
		e.fired("combine")
	default:
		say(r,
			"You need to collect all the staff parts first:",
			"- The wooden staff",
			"- The diamond gem",
			"- The emerald gem",
			"- The opal gem",
		)
	}
}

func (e *Engine) cmdContinue(r *types.Result) {
	s := e.Session
	if !s.Flags.WaitingForContinue {
		say(r, "I don't understand that command.")
		return
	}
	s.Flags.WaitingForContinue = false
	s.Ending.Start()
	emit(r, "ending_advanced", map[string]any{"phase": s.Ending.Phase.String()})
	say(r, "The world begins to change...")
	e.log.Info("ending started")
}
