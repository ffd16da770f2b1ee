package engine

import (
	"math"

	"github.com/dev-rohith/pokemon-simulator/internal/game"
)

// Fixed battle formula constants. Type effectiveness is an upstream concern;
// the modifier stays neutral here.
const (
	level        = 50
	basePower    = 60
	typeModifier = 1.0
)

// CalculateDamage computes the damage one attack deals, floored and clamped
// to a minimum of 1 so every exchange makes progress. The caller must ensure
// the defender's defense stat is positive.
func CalculateDamage(attacker, defender game.Combatant) int {
	damage := int(math.Floor(
		((2*level + 10) / 250.0) *
			(float64(attacker.Stats.Attack) / float64(defender.Stats.Defense)) *
			basePower *
			typeModifier,
	))
	if damage < 1 {
		damage = 1
	}
	return damage
}

// Resolve runs a deterministic battle between two combatants and returns the
// structured outcome. The first argument always strikes first; turns then
// alternate strictly until one side reaches 0 HP. Speed is informational
// only and never decides turn order.
//
// A combatant entering with CurrentHP <= 0 loses immediately with zero
// rounds and an empty log; a is checked before b, so a loses if both are
// already fainted.
func Resolve(a, b game.Combatant) game.Outcome {
	if a.CurrentHP <= 0 {
		return faintedOutcome(b, a)
	}
	if b.CurrentHP <= 0 {
		return faintedOutcome(a, b)
	}

	attacker, defender := &a, &b
	log := make([]game.LogEntry, 0, 8)
	round := 0

	for a.CurrentHP > 0 && b.CurrentHP > 0 {
		round++

		damage := CalculateDamage(*attacker, *defender)
		defender.CurrentHP -= damage
		if defender.CurrentHP < 0 {
			defender.CurrentHP = 0
		}

		log = append(log, game.LogEntry{
			Round:           round,
			Attacker:        attacker.Name,
			Defender:        defender.Name,
			Damage:          damage,
			DefenderHPAfter: defender.CurrentHP,
		})

		if defender.CurrentHP <= 0 {
			break
		}
		attacker, defender = defender, attacker
	}

	winner, loser := a, b
	if a.CurrentHP <= 0 {
		winner, loser = b, a
	}

	return game.Outcome{
		Winner: game.FighterResult{ID: winner.ID, Name: winner.Name, RemainingHP: winner.CurrentHP},
		Loser:  game.FighterResult{ID: loser.ID, Name: loser.Name},
		Rounds: round,
		Log:    log,
	}
}

// faintedOutcome covers the pre-check path: the fight never starts and the
// survivor keeps its unchanged HP.
func faintedOutcome(winner, loser game.Combatant) game.Outcome {
	return game.Outcome{
		Winner: game.FighterResult{ID: winner.ID, Name: winner.Name, RemainingHP: winner.CurrentHP},
		Loser:  game.FighterResult{ID: loser.ID, Name: loser.Name},
		Rounds: 0,
		Log:    []game.LogEntry{},
	}
}
