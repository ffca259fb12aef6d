// Package monster implements the per-room monster agents: a sticky
// wander/pursue state machine stepping on a tile grid, and a per-monster
// melee cooldown.
package monster

import (
	"math"

	"github.com/nathoo/retrodungeon/types"
)

const (
	// MeleeRange is the distance at which an aggressive monster strikes.
	MeleeRange = 1.5
	// pursueStop keeps a pursuing monster from stepping onto the player.
	pursueStop = 1.0
	// DefaultAggroRange applies when a species does not set one.
	DefaultAggroRange = 4.0
)

// Timing holds the real-time cooldowns, in seconds.
type Timing struct {
	MoveInterval   float64
	AttackInterval float64
}

// DefaultTiming returns the standard pacing.
func DefaultTiming() Timing {
	return Timing{MoveInterval: 0.3, AttackInterval: 2.0}
}

// Terrain answers walkability questions for the monster's room.
type Terrain interface {
	Walkable(tileX, tileY int) bool
	Contains(x, y float64) bool
}

// Roller is the random source used for wandering.
type Roller interface {
	Roll(sides int) int
}

// Monster is a mutable agent owned by its room.
type Monster struct {
	Species     string
	Name        string
	Description string
	Health      int
	Attack      int
	Alive       bool

	X, Y             float64
	TargetX, TargetY float64
	MoveTimer        float64
	AttackTimer      float64
	AggroRange       float64
	Aggro            bool // sticky: never reset once set
}

// Spawn creates a living monster of the given species at (x, y).
func Spawn(def types.MonsterDef, x, y float64, timing Timing) *Monster {
	aggro := def.AggroRange
	if aggro <= 0 {
		aggro = DefaultAggroRange
	}
	return &Monster{
		Species:     def.Tag,
		Name:        def.Name,
		Description: def.Description,
		Health:      def.Health,
		Attack:      def.Attack,
		Alive:       true,
		X:           x,
		Y:           y,
		TargetX:     x,
		TargetY:     y,
		AggroRange:  aggro,
		// The first strike lands as soon as the monster reaches the player.
		AttackTimer: timing.AttackInterval,
	}
}

// Distance returns the Euclidean distance from the monster to (x, y).
func (m *Monster) Distance(x, y float64) float64 {
	return math.Hypot(x-m.X, y-m.Y)
}

// Update advances the monster by dt seconds relative to a player at (px, py).
// Dead monsters are skipped.
func (m *Monster) Update(dt, px, py float64, terrain Terrain, rng Roller, timing Timing) {
	if !m.Alive {
		return
	}
	m.MoveTimer += dt

	dist := m.Distance(px, py)
	if dist <= m.AggroRange {
		m.Aggro = true
	}

	if m.MoveTimer < timing.MoveInterval {
		return
	}
	m.MoveTimer = 0

	if m.Aggro {
		if dist > pursueStop {
			m.pursue(px, py, terrain)
		}
		return
	}
	m.wander(terrain, rng)
}

// pursue steps one tile along the axis with the larger delta.
func (m *Monster) pursue(px, py float64, terrain Terrain) {
	dx := px - m.X
	dy := py - m.Y
	if math.Abs(dx) > math.Abs(dy) {
		m.TargetX = m.X + sign(dx)
		m.TargetY = m.Y
	} else {
		m.TargetX = m.X
		m.TargetY = m.Y + sign(dy)
	}
	if terrain.Walkable(int(m.TargetX), int(m.TargetY)) {
		m.X, m.Y = m.TargetX, m.TargetY
	}
}

// wander picks one of four cardinal steps or staying put, uniformly.
func (m *Monster) wander(terrain Terrain, rng Roller) {
	switch rng.Roll(5) {
	case 1:
		m.TargetX, m.TargetY = m.X-1, m.Y
	case 2:
		m.TargetX, m.TargetY = m.X+1, m.Y
	case 3:
		m.TargetX, m.TargetY = m.X, m.Y-1
	case 4:
		m.TargetX, m.TargetY = m.X, m.Y+1
	default:
		return
	}
	if terrain.Contains(m.TargetX, m.TargetY) && terrain.Walkable(int(m.TargetX), int(m.TargetY)) {
		m.X, m.Y = m.TargetX, m.TargetY
	}
}

// ReadyToStrike advances the monster's own attack cooldown and reports
// whether it strikes a player at (px, py) this frame.
func (m *Monster) ReadyToStrike(dt, px, py float64, timing Timing) bool {
	if !m.Alive {
		return false
	}
	m.AttackTimer += dt
	if !m.Aggro || m.Distance(px, py) > MeleeRange {
		return false
	}
	if m.AttackTimer < timing.AttackInterval {
		return false
	}
	m.AttackTimer = 0
	return true
}

// TakeDamage reduces health and marks the monster dead at zero.
// It returns true when this hit defeated the monster.
func (m *Monster) TakeDamage(n int) bool {
	if !m.Alive || n <= 0 {
		return false
	}
	m.Aggro = true
	m.Health -= n
	if m.Health <= 0 {
		m.Health = 0
		m.Alive = false
		return true
	}
	return false
}

func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	return -1
}
