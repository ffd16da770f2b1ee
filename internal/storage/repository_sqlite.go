package storage

import (
	"strings"

	"gorm.io/gorm"

	"github.com/dev-rohith/pokemon-simulator/internal/game"
)

type sqliteRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository wraps a gorm DB handle in the Repository interface.
func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateUser(u *game.User) error {
	return r.db.Create(u).Error
}

func (r *sqliteRepository) GetUserByUsername(username string) (*game.User, error) {
	var u game.User
	if err := r.db.Where("lower(username) = ?", strings.ToLower(username)).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) GetUserByID(id uint) (*game.User, error) {
	var u game.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) CreateTournament(t *game.Tournament) error {
	return r.db.Create(t).Error
}

func (r *sqliteRepository) GetTournamentByID(id uint) (*game.Tournament, error) {
	var t game.Tournament
	err := r.db.Preload("Battles", func(db *gorm.DB) *gorm.DB {
		return db.Order("battle_number ASC")
	}).First(&t, id).Error
	if err != nil {
		return nil, err
	}
	if t.HPState == nil {
		t.HPState = make(map[string]int)
	}
	return &t, nil
}

func (r *sqliteRepository) UpdateTournament(t *game.Tournament) error {
	// Battle records are append-only and persisted separately; saving the
	// association here would rewrite them.
	return r.db.Omit("Battles").Save(t).Error
}

func (r *sqliteRepository) ListTournamentsByStatus(status game.TournamentStatus) ([]game.Tournament, error) {
	var tournaments []game.Tournament
	err := r.db.Preload("Battles", func(db *gorm.DB) *gorm.DB {
		return db.Order("battle_number ASC")
	}).Where("status = ?", status).Order("created_at DESC").Find(&tournaments).Error
	if err != nil {
		return nil, err
	}
	for i := range tournaments {
		if tournaments[i].HPState == nil {
			tournaments[i].HPState = make(map[string]int)
		}
	}
	return tournaments, nil
}

func (r *sqliteRepository) CreateBattle(b *game.Battle) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) ListBattlesByUser(userID uint) ([]game.Battle, error) {
	var battles []game.Battle
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&battles).Error; err != nil {
		return nil, err
	}
	return battles, nil
}
