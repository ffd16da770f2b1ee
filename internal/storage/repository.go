package storage

import (
	"github.com/dev-rohith/pokemon-simulator/internal/game"
)

// Repository abstracts durable storage for the tournament, battle and user
// aggregates. A successful update is visible to the next read; the service
// layer's lifecycle logic depends on that.
type Repository interface {
	// Users
	CreateUser(u *game.User) error
	GetUserByUsername(username string) (*game.User, error)
	GetUserByID(id uint) (*game.User, error)

	// Tournaments
	CreateTournament(t *game.Tournament) error
	GetTournamentByID(id uint) (*game.Tournament, error)
	UpdateTournament(t *game.Tournament) error
	ListTournamentsByStatus(status game.TournamentStatus) ([]game.Tournament, error)

	// Battles (append-only; records are never updated or deleted)
	CreateBattle(b *game.Battle) error
	ListBattlesByUser(userID uint) ([]game.Battle, error)
}
