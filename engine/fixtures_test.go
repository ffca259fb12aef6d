package engine

import (
	"strings"
	"testing"

	"github.com/nathoo/retrodungeon/engine/state"
	"github.com/nathoo/retrodungeon/types"
)

func item(tag, desc string) types.Item {
	return types.Item{Tag: tag, Name: tag, Description: desc, Takeable: true}
}

func weapon(tag string, dmg int) types.Item {
	it := item(tag, "A "+tag+".")
	it.Kind, it.Damage = types.KindWeapon, dmg
	return it
}

func armor(tag string, bonus int) types.Item {
	it := item(tag, "A "+tag+".")
	it.Kind, it.Armor = types.KindArmor, bonus
	return it
}

func species(tag string, health, attack int) types.MonsterDef {
	name := strings.ReplaceAll(tag, "_", " ")
	return types.MonsterDef{Tag: tag, Name: name, Health: health, MaxHealth: health, Attack: attack}
}

// testDefs builds the full fifteen-room dungeon with short descriptions.
// Item and monster names are the same as their tags.
func testDefs() *state.Defs {
	items := map[string]types.Item{}
	for _, it := range []types.Item{
		weapon("sword", 5),
		armor("shield", 3),
		item("gold", "A handful of gleaming gold coins."),
		item("gem", "A sparkling ruby."),
		item("book", "An ancient tome."),
		item("scroll", "A mysterious scroll."),
		item("pot", "A cast iron pot."),
		weapon("knife", 2),
		item("wine", "A bottle of aged wine."),
		item("key", "A rusty old key."),
		armor("crown", 2),
		item("herbs", "A bundle of herbs."),
		item("seeds", "A pouch of seeds."),
		item("plaster", "A magical healing plaster."),
		item("note", "A weathered piece of parchment."),
		item("staff", "An ancient wooden staff."),
		item("emerald", "A brilliant green emerald."),
		item("diamond", "A flawless diamond."),
		item("opal", "A shimmering opal."),
		{Tag: "ancient_staff", Name: "?????", Description: "The Ancient Staff of Power.", Takeable: true, Kind: types.KindWeapon, Damage: 25},
		{Tag: "statue", Name: "statue", Description: "A stone knight."},
	} {
		items[it.Tag] = it
	}

	monsters := map[string]types.MonsterDef{}
	for _, m := range []types.MonsterDef{
		species("skeleton", 20, 8),
		species("goblin", 15, 5),
		species("rat", 8, 3),
		species("ghost", 50, 12),
		species("guardian_spirit", 35, 10),
		species("nightmare_wraith", 30, 9),
	} {
		monsters[m.Tag] = m
	}

	spawn := func(tag string, x, y float64) []types.SpawnDef {
		return []types.SpawnDef{{Species: tag, X: x, Y: y}}
	}

	return &state.Defs{
		Game: types.GameDef{
			Title:  "Test Dungeon",
			Start:  "entrance_hall",
			Player: types.PlayerDef{Health: 100, Attack: 3, Armor: 1},
		},
		Rooms: []types.RoomDef{
			{
				Tag: "entrance_hall", Name: "Entrance Hall", Description: "A dimly lit stone hall.",
				Exits: map[string]string{"north": "dark_corridor", "east": "armory", "west": "library", "south": "kitchen"},
				Furniture: []types.Rect{
					{X1: 3, Y1: 3, X2: 3, Y2: 5},
					{X1: 9, Y1: 3, X2: 9, Y2: 5},
					{X1: 15, Y1: 3, X2: 15, Y2: 5},
				},
				MapX: 1, MapY: 3,
			},
			{
				Tag: "armory", Name: "Armory", Description: "Rusted sword racks line the walls.",
				Exits: map[string]string{"west": "entrance_hall", "south": "garden"},
				Items: []string{"sword", "shield"},
				MapX:  2, MapY: 3,
			},
			{
				Tag: "treasure_chamber", Name: "Treasure Chamber", Description: "Gold coins are scattered across the floor.",
				Exits: map[string]string{"west": "armory", "east": "throne_room"},
				Items: []string{"gold", "gem"},
				MapX:  3, MapY: 3,
			},
			{
				Tag: "dark_corridor", Name: "Dark Corridor", Description: "A narrow, winding passage.",
				Exits:    map[string]string{"south": "entrance_hall", "north": "monster_lair"},
				Monsters: spawn("skeleton", 15, 8),
				MapX:     1, MapY: 2,
			},
			{
				Tag: "monster_lair", Name: "Monster Lair", Description: "Bones and debris cover the floor.",
				Exits:    map[string]string{"south": "dark_corridor", "west": "basement"},
				Monsters: spawn("goblin", 8, 10),
				MapX:     1, MapY: 1,
			},
			{
				Tag: "library", Name: "Library", Description: "Ancient books fill wooden shelves.",
				Exits: map[string]string{"east": "entrance_hall", "north": "basement"},
				Items: []string{"book", "scroll"},
				MapX:  0, MapY: 3,
			},
			{
				Tag: "kitchen", Name: "Kitchen", Description: "A medieval kitchen.",
				Exits: map[string]string{"north": "entrance_hall", "east": "garden"},
				Items: []string{"pot", "knife"},
				MapX:  1, MapY: 4,
			},
			{
				Tag: "basement", Name: "Basement", Description: "A damp storage room.",
				Exits:    map[string]string{"south": "library", "east": "monster_lair"},
				Items:    []string{"wine", "key"},
				Monsters: spawn("rat", 6, 12),
				MapX:     0, MapY: 2,
			},
			{
				Tag: "throne_room", Name: "Throne Room", Description: "A massive stone throne.",
				Exits:    map[string]string{"west": "treasure_chamber"},
				Items:    []string{"crown"},
				Monsters: spawn("ghost", 18, 6),
				MapX:     4, MapY: 3,
			},
			{
				Tag: "garden", Name: "Garden", Description: "A small indoor garden.",
				Exits: map[string]string{"west": "kitchen", "north": "armory", "down": "dark_room"},
				Items: []string{"herbs", "seeds", "statue"},
				MapX:  2, MapY: 4,
			},
			{
				Tag: "infirmary", Name: "Infirmary", Description: "A small medical room.",
				Items: []string{"plaster"},
				MapX:  0, MapY: 4,
			},
			{
				Tag: "sunlit_meadow", Name: "Sunlit Meadow", Description: "A beautiful meadow.",
				Items: []string{"note"},
				MapX:  4, MapY: 4,
			},
			{
				Tag: "dark_room", Name: "Dark Room", Description: "A pitch-black chamber.",
				Exits: map[string]string{"up": "garden"},
				MapX:  2, MapY: 5,
			},
			{
				Tag: "chapel", Name: "Chapel", Description: "A small, sacred chamber.",
				Monsters: spawn("guardian_spirit", 12, 6),
				MapX:     5, MapY: 4,
			},
			{
				Tag: "sleeping_quarters", Name: "Sleeping Quarters", Description: "Simple stone beds.",
				Monsters: spawn("nightmare_wraith", 8, 10),
				MapX:     4, MapY: 2,
			},
		},
		Items:   items,
		Species: monsters,
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(testDefs(), WithSeed(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

// run executes commands in order and returns the last result.
func run(e *Engine, cmds ...string) types.Result {
	var r types.Result
	for _, c := range cmds {
		r = e.Step(c)
	}
	return r
}

// give puts content items straight into the inventory.
func give(e *Engine, tags ...string) {
	for _, tag := range tags {
		e.Session.Inventory.Add(e.Defs.Items[tag])
	}
}

// moveTo places the player in a room without walking there.
func moveTo(t *testing.T, e *Engine, tag string) {
	t.Helper()
	r, ok := e.Session.World.ByTag(tag)
	if !ok {
		t.Fatalf("no room %q", tag)
	}
	e.Session.Current = r.ID
	r.Visited = true
}

func outputContains(output []string, substr string) bool {
	for _, line := range output {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func hasEvent(r types.Result, typ string) bool {
	for _, ev := range r.Events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}
