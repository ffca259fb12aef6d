package engine

import (
	"testing"

	"github.com/nathoo/retrodungeon/engine/monster"
)

func TestDamageCalc_JitterWithinBounds(t *testing.T) {
	tests := []struct {
		name           string
		attack, defend int
		lo, hi         int
		minDmg, maxDmg int
	}{
		{"monster vs armor", 8, 1, 0, 4, 7, 11},
		{"player unarmed", 3, 0, -1, 1, 2, 4},
		{"player with staff", 28, 0, -1, 1, 27, 29},
		{"floored at one", 0, 20, 0, 4, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := NewRNG(7)
			for i := 0; i < 200; i++ {
				dmg, jitter := DamageCalc(tt.attack, tt.defend, tt.lo, tt.hi, rng)
				if jitter < tt.lo || jitter > tt.hi {
					t.Fatalf("jitter %d outside [%d, %d]", jitter, tt.lo, tt.hi)
				}
				if dmg < tt.minDmg || dmg > tt.maxDmg {
					t.Fatalf("damage %d outside [%d, %d]", dmg, tt.minDmg, tt.maxDmg)
				}
			}
		})
	}
}

func TestDamageCalc_Deterministic(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 20; i++ {
		d1, j1 := DamageCalc(8, 1, 0, 4, a)
		d2, j2 := DamageCalc(8, 1, 0, 4, b)
		if d1 != d2 || j1 != j2 {
			t.Fatalf("step %d: (%d,%d) != (%d,%d)", i, d1, j1, d2, j2)
		}
	}
}

// corridorSkeleton puts the player in the dark corridor and returns its skeleton.
func corridorSkeleton(t *testing.T, e *Engine) *monster.Monster {
	t.Helper()
	moveTo(t, e, "dark_corridor")
	ms := e.Room().Monsters()
	if len(ms) != 1 {
		t.Fatalf("expected one monster, got %d", len(ms))
	}
	return ms[0]
}

func TestAttack_NothingInRange(t *testing.T) {
	e := newTestEngine(t)
	r := e.Attack()
	if len(r.Output) != 1 || r.Output[0] != "No monsters nearby to attack." {
		t.Errorf("got %v", r.Output)
	}

	m := corridorSkeleton(t, e)
	e.Session.Player.X, e.Session.Player.Y = 12, 8
	m.X, m.Y = 15, 9 // about 3.16 away
	r = e.Attack()
	if !outputContains(r.Output, "No monsters nearby to attack.") {
		t.Errorf("got %v", r.Output)
	}
	if m.Health != 20 {
		t.Errorf("skeleton should be untouched, health %d", m.Health)
	}
}

func TestAttack_DamagesNearest(t *testing.T) {
	e := newTestEngine(t)
	m := corridorSkeleton(t, e)
	e.Session.Player.X, e.Session.Player.Y = 12, 8
	m.X, m.Y = 13, 9

	r := e.Attack()
	if len(r.Output) != 2 {
		t.Fatalf("got %v", r.Output)
	}
	if m.Health < 16 || m.Health > 18 {
		t.Errorf("skeleton health %d, want 16..18", m.Health)
	}
	if !m.Aggro {
		t.Error("a hit monster becomes aggressive")
	}
	if !outputContains(r.Output, "HP left.") {
		t.Errorf("got %v", r.Output)
	}
}

func TestAttack_UsesEquippedWeapon(t *testing.T) {
	e := newTestEngine(t)
	give(e, "sword")
	e.Step("equip sword")

	m := corridorSkeleton(t, e)
	e.Session.Player.X, e.Session.Player.Y = 12, 8
	m.X, m.Y = 13, 8

	e.Attack()
	// 3 base + 5 sword, jitter -1..1.
	if m.Health < 11 || m.Health > 13 {
		t.Errorf("skeleton health %d, want 11..13", m.Health)
	}
}

func TestAttack_Defeat(t *testing.T) {
	e := newTestEngine(t)
	m := corridorSkeleton(t, e)
	e.Session.Player.X, e.Session.Player.Y = 12, 8
	m.X, m.Y = 13, 8
	m.Health = 1

	r := e.Attack()
	if !outputContains(r.Output, "The skeleton is defeated!") {
		t.Errorf("got %v", r.Output)
	}
	if !hasEvent(r, "monster_defeated") {
		t.Error("expected monster_defeated event")
	}
	if m.Alive {
		t.Fatal("skeleton should be dead")
	}

	// Corpses are not targets and drop out of the room description.
	r = e.Attack()
	if !outputContains(r.Output, "No monsters nearby to attack.") {
		t.Errorf("got %v", r.Output)
	}
	r = e.Step("look")
	if outputContains(r.Output, "Creatures:") {
		t.Errorf("dead monster listed: %v", r.Output)
	}
}

func TestAttack_IgnoredDuringEnding(t *testing.T) {
	e := newTestEngine(t)
	m := corridorSkeleton(t, e)
	e.Session.Player.X, e.Session.Player.Y = 12, 8
	m.X, m.Y = 13, 8
	e.Session.Ending.Start()

	r := e.Attack()
	if len(r.Output) != 0 || m.Health != 20 {
		t.Errorf("attack during ending: %v, health %d", r.Output, m.Health)
	}
}
