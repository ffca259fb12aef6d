package state

import (
	"testing"

	"github.com/nathoo/retrodungeon/engine/monster"
	"github.com/nathoo/retrodungeon/types"
)

func testDefs() *Defs {
	return &Defs{
		Game: types.GameDef{
			Title:  "Test Game",
			Start:  "entrance",
			Player: types.PlayerDef{Health: 100, Attack: 3, Armor: 1},
		},
		Rooms: []types.RoomDef{
			{
				Tag:         "entrance",
				Name:        "Entrance",
				Description: "The entrance.",
				Exits:       map[string]string{"north": "hall"},
				Items:       []string{"lamp"},
			},
			{
				Tag:         "hall",
				Name:        "Hall",
				Description: "A grand hall.",
				Exits:       map[string]string{"south": "entrance"},
				Monsters:    []types.SpawnDef{{Species: "rat", X: 6, Y: 12}},
				Furniture:   []types.Rect{{X1: 2, Y1: 2, X2: 3, Y2: 3}},
			},
			{
				Tag:         "vault",
				Name:        "Vault",
				Description: "Sealed.",
			},
		},
		Items: map[string]types.Item{
			"lamp": {Tag: "lamp", Name: "lamp", Takeable: true},
		},
		Species: map[string]types.MonsterDef{
			"rat":   {Tag: "rat", Name: "rat", Health: 8, MaxHealth: 8, Attack: 3},
			"ghost": {Tag: "ghost", Name: "ghost", Health: 50, Attack: 12},
		},
	}
}

func TestNewSession_StartsAtStartRoom(t *testing.T) {
	s, err := NewSession(testDefs(), monster.DefaultTiming())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	if s.Room().Tag != "entrance" {
		t.Errorf("expected player at entrance, got %q", s.Room().Tag)
	}
	if !s.Room().Visited {
		t.Error("start room should be visited")
	}
	if s.Player.X != StartX || s.Player.Y != StartY {
		t.Errorf("expected start position, got (%v, %v)", s.Player.X, s.Player.Y)
	}
	if s.ID == "" {
		t.Error("expected a session id")
	}
}

func TestNewSession_PlayerStats(t *testing.T) {
	s, _ := NewSession(testDefs(), monster.DefaultTiming())

	if s.Player.Health != 100 {
		t.Errorf("health = %d", s.Player.Health)
	}
	if s.TotalAttack() != 3 || s.TotalArmor() != 1 {
		t.Errorf("totals = %d/%d, want 3/1", s.TotalAttack(), s.TotalArmor())
	}
	if s.Inventory.Len() != 0 {
		t.Errorf("expected empty inventory")
	}
}

func TestNewSession_PopulatesRooms(t *testing.T) {
	s, _ := NewSession(testDefs(), monster.DefaultTiming())

	hall, ok := s.World.ByTag("hall")
	if !ok {
		t.Fatal("hall missing")
	}
	if got := len(hall.Monsters()); got != 1 {
		t.Fatalf("expected 1 monster, got %d", got)
	}
	if m := hall.Monsters()[0]; m.X != 6 || m.Y != 12 || !m.Alive {
		t.Errorf("unexpected monster %+v", m)
	}
	if hall.Walkable(2, 2) {
		t.Error("furniture should block (2,2)")
	}

	id, ok := hall.Exit("south")
	if !ok || id != s.Start {
		t.Errorf("hall south = %v, %v", id, ok)
	}

	entrance := s.Room()
	if _, ok := entrance.FindItem("lamp"); !ok {
		t.Error("lamp should be in the entrance")
	}
}

func TestNewSession_UnknownReferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Defs)
	}{
		{"start", func(d *Defs) { d.Game.Start = "nowhere" }},
		{"item", func(d *Defs) { d.Rooms[0].Items = []string{"sword"} }},
		{"monster", func(d *Defs) { d.Rooms[1].Monsters = []types.SpawnDef{{Species: "dragon"}} }},
		{"exit", func(d *Defs) { d.Rooms[0].Exits["east"] = "garden" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs := testDefs()
			tt.mutate(defs)
			if _, err := NewSession(defs, monster.DefaultTiming()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSession_Revealed(t *testing.T) {
	s, _ := NewSession(testDefs(), monster.DefaultTiming())
	vault, _ := s.World.ByTag("vault")
	hall, _ := s.World.ByTag("hall")

	if !s.Revealed(s.Start) || !s.Revealed(hall.ID) {
		t.Error("start and hall should be revealed")
	}
	if s.Revealed(vault.ID) {
		t.Error("vault has no way in yet")
	}
	hall.SetExit("east", vault.ID)
	if !s.Revealed(vault.ID) {
		t.Error("vault should be revealed once an exit leads there")
	}
}

func TestDefs_MaxHealth(t *testing.T) {
	defs := testDefs()
	if got := defs.MaxHealth("rat"); got != 8 {
		t.Errorf("rat max = %d", got)
	}
	if got := defs.MaxHealth("ghost"); got != 50 {
		t.Errorf("ghost max falls back to health, got %d", got)
	}
	if got := defs.MaxHealth("dragon"); got != 0 {
		t.Errorf("unknown species = %d", got)
	}
}

func TestSession_InEnding(t *testing.T) {
	s, _ := NewSession(testDefs(), monster.DefaultTiming())
	if s.InEnding() {
		t.Error("fresh session is not ending")
	}
	s.Flags.GameEnding = true
	if !s.InEnding() {
		t.Error("expected ending")
	}
}
