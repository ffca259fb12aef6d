package engine

import (
	"fmt"

	"github.com/nathoo/retrodungeon/engine/monster"
	"github.com/nathoo/retrodungeon/types"
)

// attackRange is how close a monster must be for the player to hit it.
const attackRange = 3.0

// Damage jitter bounds, added to the attacker's attack.
const (
	monsterJitterLo, monsterJitterHi = 0, 4
	playerJitterLo, playerJitterHi   = -1, 1
)

// DamageCalc computes max(1, attack + jitter - defense) where jitter is
// uniform in [lo, hi]. Returns (damage, jitter).
func DamageCalc(attack, defense, lo, hi int, rng *RNG) (damage, jitter int) {
	jitter = rng.Between(lo, hi)
	damage = attack + jitter - defense
	if damage < 1 {
		damage = 1
	}
	return damage, jitter
}

// Attack strikes the nearest living monster within reach.
func (e *Engine) Attack() types.Result {
	var r types.Result
	s := e.Session
	if s.InEnding() {
		return r
	}

	var target *monster.Monster
	best := attackRange
	for _, m := range e.Room().Monsters() {
		if !m.Alive {
			continue
		}
		if d := m.Distance(s.Player.X, s.Player.Y); d < best {
			best, target = d, m
		}
	}
	if target == nil {
		say(&r, "No monsters nearby to attack.")
		return r
	}

	damage, _ := DamageCalc(s.TotalAttack(), 0, playerJitterLo, playerJitterHi, e.RNG)
	defeated := target.TakeDamage(damage)
	say(&r, fmt.Sprintf("You attack the %s for %d damage!", target.Name, damage))

	if defeated {
		say(&r, fmt.Sprintf("The %s is defeated!", target.Name))
		emit(&r, "monster_defeated", map[string]any{"monster": target.Species, "room": e.Room().Tag})
		e.log.Info("monster defeated", "monster", target.Species, "room", e.Room().Tag)
		return r
	}
	say(&r, fmt.Sprintf("The %s has %d HP left.", target.Name, target.Health))
	return r
}

// strike applies one monster hit to the player. Reaching zero health is
// reported but does not stop play.
func (e *Engine) strike(r *types.Result, m *monster.Monster) {
	p := &e.Session.Player
	damage, _ := DamageCalc(m.Attack, e.Session.TotalArmor(), monsterJitterLo, monsterJitterHi, e.RNG)
	p.Health -= damage
	if p.Health < 0 {
		p.Health = 0
	}

	say(r, fmt.Sprintf("The %s attacks you for %d damage!", m.Name, damage))
	emit(r, "player_damaged", map[string]any{"monster": m.Species, "damage": damage, "health": p.Health})
	e.log.Debug("player hit", "monster", m.Species, "damage", damage, "health", p.Health)

	if p.Health == 0 {
		say(r, "You have been defeated! Game Over.")
		e.log.Info("player defeated", "monster", m.Species, "room", e.Room().Tag)
	}
}
