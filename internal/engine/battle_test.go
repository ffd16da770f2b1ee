package engine

import (
	"testing"

	"github.com/dev-rohith/pokemon-simulator/internal/game"
)

func fighter(id int, name string, hp, attack, defense, speed int) game.Combatant {
	return game.NewCombatant(game.Pokemon{
		ID:   id,
		Name: name,
		Stats: game.BaseStats{
			HP:      hp,
			Attack:  attack,
			Defense: defense,
			Speed:   speed,
		},
	}, hp)
}

func TestCalculateDamage_FloorsUpToOne(t *testing.T) {
	weak := fighter(1, "weedle", 40, 1, 30, 50)
	tank := fighter(2, "shuckle", 20, 10, 99999, 5)

	if got := CalculateDamage(weak, tank); got != 1 {
		t.Fatalf("expected minimum damage 1, got %d", got)
	}
}

func TestCalculateDamage_EqualAttackDefense(t *testing.T) {
	a := fighter(1, "a", 10, 10, 10, 10)
	b := fighter(2, "b", 10, 10, 10, 5)

	// (2*50+10)/250 * 1 * 60 = 26.4 -> 26
	if got := CalculateDamage(a, b); got != 26 {
		t.Fatalf("expected 26 damage, got %d", got)
	}
}

func TestResolve_FirstArgumentStrikesFirst(t *testing.T) {
	a := fighter(1, "fast", 10, 10, 10, 10)
	b := fighter(2, "slow", 10, 10, 10, 5)

	out := Resolve(a, b)

	if len(out.Log) == 0 {
		t.Fatal("expected a non-empty battle log")
	}
	if out.Log[0].Attacker != "fast" {
		t.Fatalf("expected first positional combatant to attack first, got %q", out.Log[0].Attacker)
	}
	// Equal stats, so the first striker one-shots and wins in a single round.
	if out.Winner.Name != "fast" {
		t.Fatalf("expected fast to win, got %q", out.Winner.Name)
	}
	if out.Rounds != 1 {
		t.Fatalf("expected 1 round, got %d", out.Rounds)
	}
}

func TestResolve_RoundsMatchLog(t *testing.T) {
	a := fighter(25, "pikachu", 35, 55, 40, 90)
	b := fighter(1, "bulbasaur", 45, 49, 49, 45)

	out := Resolve(a, b)

	if out.Rounds != len(out.Log) {
		t.Fatalf("rounds=%d but log has %d entries", out.Rounds, len(out.Log))
	}
	for i, entry := range out.Log {
		if entry.Round != i+1 {
			t.Fatalf("log[%d].Round = %d, want %d", i, entry.Round, i+1)
		}
		if entry.Damage < 1 {
			t.Fatalf("log[%d] damage below floor: %d", i, entry.Damage)
		}
	}
}

func TestResolve_ExactlyOneWinner(t *testing.T) {
	a := fighter(4, "charmander", 39, 52, 43, 65)
	b := fighter(7, "squirtle", 44, 48, 65, 43)

	out := Resolve(a, b)

	if out.Winner.Name == out.Loser.Name {
		t.Fatalf("winner and loser are the same: %q", out.Winner.Name)
	}
	if out.Winner.Name != a.Name && out.Winner.Name != b.Name {
		t.Fatalf("winner %q is neither combatant", out.Winner.Name)
	}
	if out.Winner.RemainingHP <= 0 {
		t.Fatalf("winner should retain HP, got %d", out.Winner.RemainingHP)
	}
}

func TestResolve_DefenderHPMonotonicallyDecreases(t *testing.T) {
	a := fighter(25, "pikachu", 120, 30, 80, 90)
	b := fighter(133, "eevee", 110, 25, 70, 55)

	out := Resolve(a, b)

	last := map[string]int{}
	for _, entry := range out.Log {
		if prev, ok := last[entry.Defender]; ok && entry.DefenderHPAfter > prev {
			t.Fatalf("defender %q HP increased from %d to %d", entry.Defender, prev, entry.DefenderHPAfter)
		}
		last[entry.Defender] = entry.DefenderHPAfter
	}
}

func TestResolve_FaintedEntrantLosesImmediately(t *testing.T) {
	a := fighter(25, "pikachu", 35, 55, 40, 90)
	a.CurrentHP = 0
	b := fighter(1, "bulbasaur", 45, 49, 49, 45)
	b.CurrentHP = 12

	out := Resolve(a, b)

	if out.Rounds != 0 || len(out.Log) != 0 {
		t.Fatalf("expected no rounds for fainted entrant, got rounds=%d log=%d", out.Rounds, len(out.Log))
	}
	if out.Winner.Name != "bulbasaur" {
		t.Fatalf("expected bulbasaur to win by default, got %q", out.Winner.Name)
	}
	if out.Winner.RemainingHP != 12 {
		t.Fatalf("winner HP should be unchanged, got %d", out.Winner.RemainingHP)
	}
}

func TestResolve_BothFainted_FirstArgumentLoses(t *testing.T) {
	a := fighter(1, "a", 10, 10, 10, 10)
	a.CurrentHP = 0
	b := fighter(2, "b", 10, 10, 10, 10)
	b.CurrentHP = 0

	out := Resolve(a, b)

	if out.Loser.Name != "a" {
		t.Fatalf("expected first combatant to lose the tie-break, got %q", out.Loser.Name)
	}
	if out.Rounds != 0 {
		t.Fatalf("expected 0 rounds, got %d", out.Rounds)
	}
}

func TestResolve_FinalHPNeverNegative(t *testing.T) {
	a := fighter(1, "strong", 200, 300, 10, 50)
	b := fighter(2, "frail", 15, 10, 10, 40)

	out := Resolve(a, b)

	for _, entry := range out.Log {
		if entry.DefenderHPAfter < 0 {
			t.Fatalf("defender HP went negative: %d", entry.DefenderHPAfter)
		}
	}
	if out.Log[len(out.Log)-1].DefenderHPAfter != 0 {
		t.Fatalf("loser should end at exactly 0 HP, got %d", out.Log[len(out.Log)-1].DefenderHPAfter)
	}
}
