package service

import (
	"fmt"

	"github.com/dev-rohith/pokemon-simulator/internal/engine"
	"github.com/dev-rohith/pokemon-simulator/internal/game"
)

// SimulateBattle resolves an ad-hoc battle between two caller-supplied
// combatants, outside any tournament, and persists a standalone record for
// the requesting user. Combatants enter at full base HP.
func (s *Service) SimulateBattle(userID uint, a, b game.Combatant) (*game.Battle, *game.Outcome, error) {
	if a.Name == b.Name {
		return nil, nil, ErrSamePokemon
	}

	outcome := engine.Resolve(a, b)

	battle := &game.Battle{
		UserID:            userID,
		Attacker1ID:       a.ID,
		Attacker1Name:     a.Name,
		Attacker2ID:       b.ID,
		Attacker2Name:     b.Name,
		WinnerName:        outcome.Winner.Name,
		WinnerRemainingHP: outcome.Winner.RemainingHP,
	}
	if err := s.repo.CreateBattle(battle); err != nil {
		return nil, nil, fmt.Errorf("persist battle record: %w", err)
	}
	return battle, &outcome, nil
}

// ListBattles returns the user's battle records, newest first.
func (s *Service) ListBattles(userID uint) ([]game.Battle, error) {
	battles, err := s.repo.ListBattlesByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list battles: %w", err)
	}
	return battles, nil
}
