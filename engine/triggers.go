package engine

import (
	"github.com/nathoo/retrodungeon/engine/quest"
	"github.com/nathoo/retrodungeon/engine/world"
	"github.com/nathoo/retrodungeon/types"
)

// Content tags the interpreter switches on. Player-facing names live in the
// content files.
const (
	roomArmory    = "armory"
	roomTreasure  = "treasure_chamber"
	roomLibrary   = "library"
	roomKitchen   = "kitchen"
	roomBasement  = "basement"
	roomThrone    = "throne_room"
	roomInfirmary = "infirmary"
	roomMeadow    = "sunlit_meadow"
	roomDark      = "dark_room"
	roomChapel    = "chapel"
	roomSleeping  = "sleeping_quarters"

	itemBook         = "book"
	itemScroll       = "scroll"
	itemKey          = "key"
	itemGem          = "gem"
	itemGold         = "gold"
	itemNote         = "note"
	itemPlaster      = "plaster"
	itemStaff        = "staff"
	itemDiamond      = "diamond"
	itemEmerald      = "emerald"
	itemOpal         = "opal"
	itemAncientStaff = "ancient_staff"
)

var requiredRooms = []string{
	roomArmory, roomTreasure, roomLibrary, roomKitchen, roomBasement, roomThrone,
	roomInfirmary, roomMeadow, roomDark, roomChapel, roomSleeping,
}

var requiredItems = []string{
	itemStaff, itemDiamond, itemEmerald, itemOpal, itemAncientStaff,
}

// staffParts are consumed by combine.
var staffParts = []string{itemStaff, itemDiamond, itemEmerald, itemOpal}

// noteSpawns places the staff parts when the note is read.
var noteSpawns = []struct {
	item, room string
}{
	{itemStaff, roomKitchen},
	{itemEmerald, roomBasement},
	{itemDiamond, roomChapel},
	{itemOpal, roomSleeping},
}

// lockedDoor is an exit that does not exist until a flag is set. The
// interpreter refuses movement with its message and annotates the exits line.
type lockedDoor struct {
	room      string
	direction string
	unlocked  func(*quest.Flags) bool
	refusal   []string
}

var lockedDoors = []lockedDoor{
	{
		room:      roomArmory,
		direction: "east",
		unlocked:  func(f *quest.Flags) bool { return f.HasKey },
		refusal: []string{
			"The door to the east is locked with a heavy iron lock.",
			"You need a key to open it.",
		},
	},
}

func findLockedDoor(room, direction string) (lockedDoor, bool) {
	for _, d := range lockedDoors {
		if d.room == room && d.direction == direction {
			return d, true
		}
	}
	return lockedDoor{}, false
}

// link adds a pair of exits between two rooms.
func (e *Engine) link(r *types.Result, from, dir, to, back string) {
	a, b := e.room(from), e.room(to)
	a.SetExit(dir, b.ID)
	b.SetExit(back, a.ID)
	emit(r, "exit_opened", map[string]any{"room": from, "direction": dir, "target": to})
	emit(r, "exit_opened", map[string]any{"room": to, "direction": back, "target": from})
}

func (e *Engine) fired(trigger string) {
	e.log.Info("trigger fired", "trigger", trigger, "room", e.Room().Tag)
}

// takeTrigger runs the narrative attached to picking up an item.
func (e *Engine) takeTrigger(r *types.Result, it types.Item) {
	f := &e.Session.Flags
	switch it.Tag {
	case itemBook:
		quest.Fire(&f.BookTaken, func() {
			say(r,
				"You take the ancient tome. As you lift it, you notice a hidden lever behind it!",
				"You pull the lever and hear a rumbling sound from somewhere nearby...",
				"A secret passage has opened in the library! You can now go 'south' to the Infirmary.",
			)
			e.link(r, roomLibrary, "south", roomInfirmary, "north")
			f.InfirmaryRevealed = true
			e.fired("book")
		})
	case itemScroll:
		quest.Fire(&f.ScrollTaken, func() {
			say(r,
				"You take the mysterious scroll. As you unroll it, ancient symbols glow briefly!",
				"The scroll contains a map enchantment! You have learned the 'map' command.",
				"Use 'map' to view the entire dungeon layout.",
			)
			f.MapUnlocked = true
			e.fired("scroll")
		})
	case itemKey:
		quest.Fire(&f.HasKey, func() {
			say(r,
				"You take the rusty old key. It feels heavy and important in your hand.",
				"This key looks like it might unlock something significant...",
			)
			// One-way: the treasure chamber already leads back west.
			armory, treasure := e.room(roomArmory), e.room(roomTreasure)
			armory.SetExit("east", treasure.ID)
			emit(r, "exit_opened", map[string]any{"room": roomArmory, "direction": "east", "target": roomTreasure})
			say(r,
				"You hear a distant clicking sound from somewhere in the dungeon!",
				"The armory door to the east has been unlocked!",
			)
			e.fired("key")
		})
	case itemGem:
		say(r,
			"You take the sparkling ruby. Its inner light pulses mysteriously.",
			"This gem seems special... perhaps it belongs somewhere significant like a throne room?",
		)
	case itemStaff:
		say(r,
			"You take the ancient wooden staff. The runes along its surface begin to glow faintly.",
			"This feels like an incredibly powerful artifact. You sense it was once whole...",
		)
		f.HasStaff = true
	case itemDiamond:
		say(r,
			"You take the flawless diamond. It resonates with pure, brilliant energy.",
			"This diamond seems to be part of something greater...",
		)
		f.HasDiamond = true
	case itemEmerald:
		say(r,
			"You take the brilliant emerald. It pulses with vibrant green light.",
			"You feel nature's power flowing through this gem...",
		)
		f.HasEmerald = true
	case itemOpal:
		say(r,
			"You take the shimmering opal. It shifts through all colors of the rainbow.",
			"This opal seems to contain the essence of all elements...",
		)
		f.HasOpal = true
	}
}

// hasAllParts checks the inventory itself, not the pickup flags, so a dropped
// part no longer counts.
func (e *Engine) hasAllParts() bool {
	for _, tag := range staffParts {
		if !e.Session.Inventory.Has(tag) {
			return false
		}
	}
	return true
}

// enterTrigger runs the narrative attached to arriving in a room.
func (e *Engine) enterTrigger(r *types.Result, room *world.Room) {
	f := &e.Session.Flags
	switch room.Tag {
	case roomMeadow:
		quest.Fire(&f.Escaped, func() {
			say(r,
				"After what feels like an eternity in the dark dungeon, you finally breathe fresh air!",
				"The nightmare is over. You have escaped the Retro Dungeon!",
				"",
				"=== GAME OVER. YOU WIN! ===",
				"...or do you?",
				"",
				"Thank you for playing! You may continue exploring...",
			)
			emit(r, "escaped", nil)
			e.fired("escape")
		})
	case roomDark:
		if f.StrangerMet {
			return
		}
		say(r,
			"A mysterious figure emerges from the shadows...",
			"'Welcome, traveler,' whispers a hooded stranger with glowing eyes.",
			"'I seek gold... in exchange for something truly special.'",
		)
		switch {
		case e.Session.Inventory.Has(itemGold):
			say(r, "'I see you carry gold... use it here if you wish to trade.'")
		case f.HasKey:
			say(r, "'You seek gold? Take a look in the treasure chamber...'")
		default:
			say(r, "'You seek gold? Maybe you can find a key in the basement to unlock another room...'")
		}
	}
}

// readNote reveals the chapel and the sleeping quarters and hides the staff
// parts around the dungeon.
func (e *Engine) readNote(r *types.Result) {
	f := &e.Session.Flags
	if !quest.Fire(&f.NoteRead, func() {
		say(r,
			"You carefully unfold the ancient, weathered parchment and read:",
			"",
			"'To whoever finds this cursed record...'",
			"'I have done something terrible. The Ancient Staff of [text torn]'",
			"'...possessed unimaginable power. In my hubris, I tried to control it.'",
			"'The magic was too strong. It nearly destroyed everything.'",
			"",
			"'I have broken the staff into four parts and hidden them:'",
			"'- The Staff itself, where meals are prepared'",
			"'- The Diamond, in a place of prayer and reverence'",
			"'- The Emerald, where wine sleeps in darkness'",
			"'- The Opal, where the weary rest their heads'",
			"",
			"'I have sealed these places with guardians and creatures.'",
			"'The staff must never be whole again, for its true power is...'",
			"[The rest of the note is torn and unreadable]",
			"",
			"You feel a strange energy pulse through the dungeon...",
		)

		e.link(r, roomMeadow, "east", roomChapel, "west")
		e.link(r, roomThrone, "north", roomSleeping, "south")

		for _, sp := range noteSpawns {
			e.room(sp.room).AddItem(e.Defs.Items[sp.item])
			emit(r, "item_spawned", map[string]any{"item": sp.item, "room": sp.room})
		}

		say(r,
			"You hear distant rumbling and shifting sounds throughout the dungeon...",
			"New paths have opened!",
		)
		e.fired("note")
	}) {
		say(r, "You read the note again, but its torn words hold nothing new.")
	}
}
