package engine

import (
	"reflect"
	"testing"
)

func TestNew_MissingRequiredContent(t *testing.T) {
	defs := testDefs()
	defs.Rooms = defs.Rooms[:len(defs.Rooms)-1] // drop sleeping_quarters
	if _, err := New(defs); err == nil {
		t.Error("expected error for missing room")
	}

	defs = testDefs()
	delete(defs.Items, "ancient_staff")
	if _, err := New(defs); err == nil {
		t.Error("expected error for missing item")
	}
}

func TestStep_EmptyInputIsSilent(t *testing.T) {
	e := newTestEngine(t)
	for _, in := range []string{"", "   "} {
		r := e.Step(in)
		if len(r.Output) != 0 || len(r.Events) != 0 {
			t.Errorf("Step(%q) = %+v, want nothing", in, r)
		}
	}
}

func TestStep_UnknownVerb(t *testing.T) {
	e := newTestEngine(t)
	r := e.Step("dance")
	if !reflect.DeepEqual(r.Output, []string{"I don't understand that command."}) {
		t.Errorf("got %v", r.Output)
	}
}

func TestStep_MissingArguments(t *testing.T) {
	e := newTestEngine(t)
	tests := map[string]string{
		"go":    "Go where?",
		"take":  "Take what?",
		"drop":  "Drop what?",
		"equip": "Equip what?",
		"use":   "Use what?",
	}
	for in, want := range tests {
		r := e.Step(in)
		if !reflect.DeepEqual(r.Output, []string{want}) {
			t.Errorf("Step(%q) = %v, want %q", in, r.Output, want)
		}
	}
}

func TestStep_Look(t *testing.T) {
	e := newTestEngine(t)
	r := e.Step("look")
	want := []string{
		"Entrance Hall",
		"A dimly lit stone hall.",
		"Exits: east, north, south, west",
	}
	if !reflect.DeepEqual(r.Output, want) {
		t.Errorf("look = %q, want %q", r.Output, want)
	}
}

func TestStep_LookShowsLockedDoor(t *testing.T) {
	e := newTestEngine(t)
	moveTo(t, e, "armory")

	r := e.Step("l")
	want := []string{
		"Armory",
		"Rusted sword racks line the walls.",
		"You see: sword, shield",
		"Exits: south, west, east (locked)",
	}
	if !reflect.DeepEqual(r.Output, want) {
		t.Errorf("look = %q, want %q", r.Output, want)
	}

	e.Session.Flags.HasKey = true
	e.room("armory").SetExit("east", e.room("treasure_chamber").ID)
	r = e.Step("look")
	if got := r.Output[len(r.Output)-1]; got != "Exits: east, south, west" {
		t.Errorf("exits after unlock = %q", got)
	}
}

func TestStep_GoNorth_MovesPlayer(t *testing.T) {
	e := newTestEngine(t)
	r := e.Step("go north")

	if e.Room().Tag != "dark_corridor" {
		t.Fatalf("expected player in dark_corridor, got %q", e.Room().Tag)
	}
	want := []string{
		"You go north.",
		"Dark Corridor",
		"A narrow, winding passage.",
		"Creatures: skeleton",
		"Exits: north, south",
	}
	if !reflect.DeepEqual(r.Output, want) {
		t.Errorf("go north = %q, want %q", r.Output, want)
	}
	if !e.Room().Visited {
		t.Error("room should be marked visited")
	}
	if e.Session.Player.X != 10 || e.Session.Player.Y != 8 {
		t.Errorf("expected entry position (10,8), got (%v,%v)", e.Session.Player.X, e.Session.Player.Y)
	}
	if !hasEvent(r, "room_entered") {
		t.Error("expected room_entered event")
	}
}

func TestStep_GoInvalidDirection(t *testing.T) {
	e := newTestEngine(t)
	moveTo(t, e, "throne_room")
	r := e.Step("go south")

	if e.Room().Tag != "throne_room" {
		t.Errorf("expected player still in throne_room, got %q", e.Room().Tag)
	}
	if !outputContains(r.Output, "You can't go that way.") {
		t.Errorf("got %v", r.Output)
	}
}

func TestStep_DirectionShortcut(t *testing.T) {
	e := newTestEngine(t)
	e.Step("s")
	if e.Room().Tag != "kitchen" {
		t.Errorf("expected kitchen, got %q", e.Room().Tag)
	}
	e.Step("e")
	e.Step("d")
	if e.Room().Tag != "dark_room" {
		t.Errorf("expected dark_room, got %q", e.Room().Tag)
	}
}

func TestStep_TakeMonsterFails(t *testing.T) {
	e := newTestEngine(t)
	r := run(e, "go north", "go north", "take skeleton")

	if !reflect.DeepEqual(r.Output, []string{"You can't take that."}) {
		t.Errorf("got %v", r.Output)
	}
	if e.Session.Inventory.Len() != 0 {
		t.Error("inventory should be empty")
	}
}

func TestStep_TakeEquipSword(t *testing.T) {
	e := newTestEngine(t)
	base := e.Session.Player.BaseAttack
	r := run(e, "go east", "take sword", "equip sword")

	if got := e.Session.TotalAttack(); got != base+5 {
		t.Errorf("total attack = %d, want %d", got, base+5)
	}
	if !reflect.DeepEqual(r.Output, []string{"You equip the sword as a weapon. (+5 attack)"}) {
		t.Errorf("got %v", r.Output)
	}
}

func TestStep_TakeItem(t *testing.T) {
	e := newTestEngine(t)
	r := run(e, "go east", "take SWORD")

	if !reflect.DeepEqual(r.Output, []string{"You take the sword."}) {
		t.Errorf("got %v", r.Output)
	}
	if _, ok := e.Room().FindItem("sword"); ok {
		t.Error("sword should have left the room")
	}
	if !hasEvent(r, "item_taken") {
		t.Error("expected item_taken event")
	}
}

func TestStep_TakeScenery(t *testing.T) {
	e := newTestEngine(t)
	moveTo(t, e, "garden")
	r := e.Step("take statue")

	if !outputContains(r.Output, "You can't take that.") {
		t.Errorf("got %v", r.Output)
	}
	if len(e.Room().Items()) != 3 {
		t.Error("statue must stay in the garden")
	}
}

func TestStep_Inventory(t *testing.T) {
	e := newTestEngine(t)
	r := e.Step("inventory")
	if !reflect.DeepEqual(r.Output, []string{"Your inventory is empty."}) {
		t.Errorf("got %v", r.Output)
	}

	give(e, "sword", "gold")
	r = e.Step("i")
	if !reflect.DeepEqual(r.Output, []string{"You are carrying: sword, gold"}) {
		t.Errorf("got %v", r.Output)
	}
}

func TestStep_Gender(t *testing.T) {
	e := newTestEngine(t)
	e.Step("female")
	if !e.Session.Player.Female {
		t.Error("expected female")
	}
	r := e.Step("male")
	if e.Session.Player.Female || !outputContains(r.Output, "male character") {
		t.Errorf("expected male, got %v", r.Output)
	}
}

func TestStep_Help(t *testing.T) {
	e := newTestEngine(t)
	r := e.Step("help")
	if len(r.Output) == 0 || r.Output[0] != "=== COMMAND HELP ===" {
		t.Errorf("got %v", r.Output)
	}
}

func TestStep_Quit(t *testing.T) {
	e := newTestEngine(t)
	r := e.Step("quit")
	if !e.Session.ShouldQuit {
		t.Error("expected ShouldQuit")
	}
	if !outputContains(r.Output, "Thanks for playing!") {
		t.Errorf("got %v", r.Output)
	}
}

func TestStep_MapRequiresScroll(t *testing.T) {
	e := newTestEngine(t)
	r := e.Step("map")
	if !outputContains(r.Output, "You need to take a better look in the library.") {
		t.Errorf("got %v", r.Output)
	}

	run(e, "go west", "take scroll")
	if !e.Session.Flags.MapUnlocked {
		t.Fatal("scroll should unlock the map")
	}

	r = e.Step("map")
	if !e.Session.MapView {
		t.Error("map should be open")
	}
	if !outputContains(r.Output, "Opening map view") {
		t.Errorf("got %v", r.Output)
	}

	e.Step("map")
	if e.Session.MapView {
		t.Error("second map should close the view")
	}
}

func TestStep_ContinueOutsideEnding(t *testing.T) {
	e := newTestEngine(t)
	r := e.Step("continue")
	if !outputContains(r.Output, "I don't understand that command.") {
		t.Errorf("got %v", r.Output)
	}
}
