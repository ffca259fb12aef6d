package monster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/retrodungeon/types"
)

// openFloor is a 24x18 room with no furniture.
type openFloor struct {
	blocked map[[2]int]bool
}

func (f openFloor) Walkable(x, y int) bool {
	if x <= 0 || x >= 23 || y <= 0 || y >= 17 {
		return false
	}
	return !f.blocked[[2]int{x, y}]
}

func (f openFloor) Contains(x, y float64) bool {
	return x >= 1.5 && x <= 21.5 && y >= 1.5 && y <= 15.5
}

// fixedRoller always returns the same face.
type fixedRoller int

func (r fixedRoller) Roll(int) int { return int(r) }

var rat = types.MonsterDef{Tag: "rat", Name: "rat", Health: 8, MaxHealth: 8, Attack: 3}

func TestSpawn_Defaults(t *testing.T) {
	m := Spawn(rat, 6, 12, DefaultTiming())

	assert.True(t, m.Alive)
	assert.False(t, m.Aggro)
	assert.Equal(t, DefaultAggroRange, m.AggroRange)
	assert.Equal(t, 8, m.Health)
	assert.Equal(t, 6.0, m.TargetX)
}

func TestUpdate_AggroIsSticky(t *testing.T) {
	timing := DefaultTiming()
	m := Spawn(rat, 10, 10, timing)
	floor := openFloor{}

	// Player far away, then within range, then far again.
	distances := []struct {
		px, py float64
		want   bool
	}{
		{20, 10, false},
		{19, 10, false},
		{13, 10, true},
		{20, 15, true},
		{2, 2, true},
	}
	for i, d := range distances {
		m.Update(0.01, d.px, d.py, floor, fixedRoller(5), timing)
		assert.Equal(t, d.want, m.Aggro, "step %d", i)
	}
}

func TestUpdate_WaitsForMoveInterval(t *testing.T) {
	timing := DefaultTiming()
	m := Spawn(rat, 10, 10, timing)

	m.Update(0.1, 20, 10, openFloor{}, fixedRoller(2), timing)
	assert.Equal(t, 10.0, m.X)

	m.Update(0.25, 20, 10, openFloor{}, fixedRoller(2), timing)
	assert.Equal(t, 11.0, m.X, "wander east after cooldown")
	assert.Equal(t, 0.0, m.MoveTimer)
}

func TestUpdate_WanderStay(t *testing.T) {
	timing := DefaultTiming()
	m := Spawn(rat, 10, 10, timing)

	m.Update(0.5, 20, 10, openFloor{}, fixedRoller(5), timing)
	assert.Equal(t, 10.0, m.X)
	assert.Equal(t, 10.0, m.Y)
}

func TestUpdate_WanderRespectsBounds(t *testing.T) {
	timing := DefaultTiming()
	m := Spawn(rat, 2, 2, timing)

	// Roll 1 = west, would leave the inner bounds.
	m.Update(0.5, 20, 15, openFloor{}, fixedRoller(1), timing)
	assert.Equal(t, 2.0, m.X)
}

func TestUpdate_PursueAlongLargerAxis(t *testing.T) {
	timing := DefaultTiming()
	m := Spawn(rat, 10, 10, timing)

	m.Update(0.5, 13, 11, openFloor{}, fixedRoller(5), timing)
	require.True(t, m.Aggro)
	assert.Equal(t, 11.0, m.X)
	assert.Equal(t, 10.0, m.Y)

	m.Update(0.5, 11, 13, openFloor{}, fixedRoller(5), timing)
	assert.Equal(t, 11.0, m.X)
	assert.Equal(t, 11.0, m.Y)
}

func TestUpdate_PursueBlockedByFurniture(t *testing.T) {
	timing := DefaultTiming()
	m := Spawn(rat, 10, 10, timing)
	floor := openFloor{blocked: map[[2]int]bool{{11, 10}: true}}

	m.Update(0.5, 13, 10, floor, fixedRoller(5), timing)
	assert.Equal(t, 10.0, m.X)
	assert.Equal(t, 11.0, m.TargetX)
}

func TestUpdate_PursueStopsAdjacent(t *testing.T) {
	timing := DefaultTiming()
	m := Spawn(rat, 10, 10, timing)

	m.Update(0.5, 11, 10, openFloor{}, fixedRoller(5), timing)
	assert.Equal(t, 10.0, m.X)
}

func TestUpdate_DeadMonsterFrozen(t *testing.T) {
	timing := DefaultTiming()
	m := Spawn(rat, 10, 10, timing)
	m.Alive = false

	m.Update(1, 11, 10, openFloor{}, fixedRoller(2), timing)
	assert.False(t, m.Aggro)
	assert.Equal(t, 10.0, m.X)
}

func TestReadyToStrike_PerMonsterCooldown(t *testing.T) {
	timing := DefaultTiming()
	a := Spawn(rat, 10, 10, timing)
	b := Spawn(rat, 11, 11, timing)
	a.Aggro, b.Aggro = true, true

	assert.True(t, a.ReadyToStrike(0.016, 10.5, 10.5, timing), "first strike is immediate")
	assert.True(t, b.ReadyToStrike(0.016, 10.5, 10.5, timing), "another monster is not gated by a's timer")
	assert.False(t, a.ReadyToStrike(1.0, 10.5, 10.5, timing))
	assert.True(t, a.ReadyToStrike(1.0, 10.5, 10.5, timing))
}

func TestReadyToStrike_RequiresAggroAndRange(t *testing.T) {
	timing := DefaultTiming()
	m := Spawn(rat, 10, 10, timing)

	assert.False(t, m.ReadyToStrike(3, 10.5, 10.5, timing), "not aggressive")
	m.Aggro = true
	assert.False(t, m.ReadyToStrike(3, 14, 10, timing), "out of melee range")
	assert.True(t, m.ReadyToStrike(0, 11.5, 10, timing))
}

func TestTakeDamage(t *testing.T) {
	m := Spawn(rat, 10, 10, DefaultTiming())

	assert.False(t, m.TakeDamage(5))
	assert.True(t, m.Aggro)
	assert.Equal(t, 3, m.Health)

	assert.True(t, m.TakeDamage(5))
	assert.False(t, m.Alive)
	assert.Equal(t, 0, m.Health)

	assert.False(t, m.TakeDamage(5), "already dead")
}
