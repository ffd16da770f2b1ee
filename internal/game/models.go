package game

import (
	"time"

	"gorm.io/gorm"
)

// TournamentStatus is a string alias for the tournament lifecycle state.
// Using a dedicated type instead of plain string makes code safer and
// self-documenting.
type TournamentStatus string

const (
	StatusLive      TournamentStatus = "live"
	StatusCompleted TournamentStatus = "completed"
)

// Tournament is the stateful aggregate that sequences battles. It owns its
// ordered battle list and the per-pokemon HP carried between battles.
// Status is monotonic: once completed, a tournament never goes live again.
type Tournament struct {
	gorm.Model
	Name   string           `json:"name" gorm:"size:64"`
	UserID uint             `json:"-" gorm:"index"`
	Status TournamentStatus `json:"status"`
	// MaxRounds bounds the number of battles (1-20).
	MaxRounds int `json:"max_rounds"`
	// ActiveTimeMinutes is the configured active window in minutes (1-1440).
	ActiveTimeMinutes int `json:"tournament_active_time"`
	// EndTime is the absolute deadline: creation time plus active time.
	// Expiry is evaluated lazily on the next battle-add attempt, never by
	// a background timer.
	EndTime time.Time `json:"end_time"`
	// Battles holds the ordered, append-only battle records. Its length
	// never exceeds MaxRounds.
	Battles []Battle `json:"rounds" gorm:"foreignKey:TournamentID"`
	// HPState maps a pokemon key ("{id}-{name}") to its last-known
	// remaining HP. A pokemon without an entry has never fought in this
	// tournament and enters its first battle at full base HP.
	HPState map[string]int `json:"hp_state" gorm:"serializer:json"`
}

// Battle is the durable record of one resolved battle. Records are created
// once and never mutated or deleted. TournamentID is nil for ad-hoc battles
// resolved outside any tournament.
type Battle struct {
	gorm.Model
	TournamentID *uint `json:"tournament_id"`
	UserID       uint  `json:"-" gorm:"index"`
	// BattleNumber is the 1-based sequence number within the owning
	// tournament (0 for ad-hoc battles).
	BattleNumber      int    `json:"battle_number"`
	Attacker1ID       int    `json:"attacker1_id"`
	Attacker1Name     string `json:"attacker1_name"`
	Attacker2ID       int    `json:"attacker2_id"`
	Attacker2Name     string `json:"attacker2_name"`
	WinnerName        string `json:"winner_name"`
	WinnerRemainingHP int    `json:"winner_remaining_hp"`
}

// User stores account identity for authentication.
type User struct {
	gorm.Model
	Username     string `json:"username" gorm:"uniqueIndex;size:30"`
	PasswordHash string `json:"-"`
}

// TableName overrides the default GORM table name so the persisted table is
// `accounts` instead of the default `users`.
func (User) TableName() string { return "accounts" }

// BaseStats is the immutable stat block fetched from the upstream pokemon
// data provider.
type BaseStats struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"special_attack"`
	SpecialDefense int `json:"special_defense"`
	Speed          int `json:"speed"`
	Total          int `json:"total"`
}

// Pokemon is the upstream-provided identity plus stat block. It is never
// persisted; battle records store only the identity fields they need.
type Pokemon struct {
	ID    int       `json:"id"`
	Name  string    `json:"name"`
	Stats BaseStats `json:"stats"`
	Types []string  `json:"types"`
}

// Combatant is the ephemeral engine input: a pokemon snapshot with the HP it
// carries into this battle. Callers default CurrentHP to Stats.HP when the
// pokemon has no prior HP state.
type Combatant struct {
	Pokemon
	CurrentHP int `json:"current_hp"`
}

// NewCombatant builds an engine input from a pokemon and its resolved
// current HP.
func NewCombatant(p Pokemon, currentHP int) Combatant {
	return Combatant{Pokemon: p, CurrentHP: currentHP}
}

// LogEntry describes one attack exchange inside a battle.
type LogEntry struct {
	Round           int    `json:"round"`
	Attacker        string `json:"attacker"`
	Defender        string `json:"defender"`
	Damage          int    `json:"damage"`
	DefenderHPAfter int    `json:"defender_hp_after"`
}

// FighterResult identifies one side of a resolved battle. RemainingHP is
// meaningful for the winner; a fighter defeated in combat is always at zero.
type FighterResult struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	RemainingHP int    `json:"remaining_hp"`
}

// Outcome is the structured result of one engine invocation: exactly one
// winner, one loser, and a log with one entry per exchanged attack.
type Outcome struct {
	Winner FighterResult `json:"winner"`
	Loser  FighterResult `json:"loser"`
	Rounds int           `json:"rounds"`
	Log    []LogEntry    `json:"battle_log"`
}
