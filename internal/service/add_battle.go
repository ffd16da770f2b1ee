package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/dev-rohith/pokemon-simulator/internal/constants"
	"github.com/dev-rohith/pokemon-simulator/internal/engine"
	"github.com/dev-rohith/pokemon-simulator/internal/game"
	"github.com/dev-rohith/pokemon-simulator/internal/keys"
	"github.com/dev-rohith/pokemon-simulator/internal/logging"
)

// AddBattle resolves one battle inside a tournament: it fetches both
// pokemon's stat blocks, reconstructs their current HP from the tournament's
// HP state, runs the engine, persists the battle record and carries the
// resulting HP forward. The tournament completes as a side effect when it
// reaches its round limit or its deadline has passed.
//
// Calls against the same tournament are serialized; the two stat fetches are
// the only concurrent part, and a failure in either aborts the operation
// before anything is persisted.
func (s *Service) AddBattle(ctx context.Context, tournamentID uint, attacker, defender string) (*game.Battle, error) {
	lock := s.tournamentLock(tournamentID)
	lock.Lock()
	defer lock.Unlock()

	t, err := s.repo.GetTournamentByID(tournamentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("read tournament: %w", err)
	}

	// Lazy lifecycle check, before validating the new battle: a tournament
	// that just expired or filled up reports completion instead of
	// accepting one more battle.
	if t.Status == game.StatusLive {
		switch {
		case s.now().After(t.EndTime):
			t.Status = game.StatusCompleted
			if err := s.repo.UpdateTournament(t); err != nil {
				return nil, fmt.Errorf("persist tournament completion: %w", err)
			}
		case len(t.Battles) >= t.MaxRounds:
			t.Status = game.StatusCompleted
			if err := s.repo.UpdateTournament(t); err != nil {
				return nil, fmt.Errorf("persist tournament completion: %w", err)
			}
		}
	}

	if t.Status != game.StatusLive {
		// Time takes priority over the round count when both apply.
		switch {
		case s.now().After(t.EndTime):
			return nil, ErrTournamentEnded
		case len(t.Battles) >= t.MaxRounds:
			return nil, ErrRoundLimitReached
		default:
			return nil, ErrTournamentNotLive
		}
	}

	if attacker == defender {
		return nil, ErrSamePokemon
	}

	var p1, p2 *game.Pokemon
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p1, err = s.provider.GetPokemon(gctx, attacker)
		return err
	})
	g.Go(func() error {
		var err error
		p2, err = s.provider.GetPokemon(gctx, defender)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch pokemon stats: %w", err)
	}

	c1 := game.NewCombatant(*p1, s.currentHP(t, *p1))
	c2 := game.NewCombatant(*p2, s.currentHP(t, *p2))

	outcome := engine.Resolve(c1, c2)

	battle := &game.Battle{
		TournamentID:      &t.ID,
		UserID:            t.UserID,
		BattleNumber:      len(t.Battles) + 1,
		Attacker1ID:       p1.ID,
		Attacker1Name:     p1.Name,
		Attacker2ID:       p2.ID,
		Attacker2Name:     p2.Name,
		WinnerName:        outcome.Winner.Name,
		WinnerRemainingHP: outcome.Winner.RemainingHP,
	}
	if err := s.repo.CreateBattle(battle); err != nil {
		return nil, fmt.Errorf("persist battle record: %w", err)
	}

	// The winner carries its remaining HP forward; the loser is always
	// recorded at zero, whether it fainted in combat or entered fainted.
	s.setHP(t, *p1, outcome, *p2)
	t.Battles = append(t.Battles, *battle)

	if err := s.repo.UpdateTournament(t); err != nil {
		// The battle record is durable but not yet reflected in the
		// tournament. Surface the failure; reconciliation is out of band.
		logging.Error("tournament update failed after battle creation", err,
			logging.Fields{constants.LogFieldTournamentID: t.ID, constants.LogFieldBattleID: battle.ID})
		return nil, fmt.Errorf("persist tournament state: %w", err)
	}

	if len(t.Battles) >= t.MaxRounds {
		t.Status = game.StatusCompleted
		if err := s.repo.UpdateTournament(t); err != nil {
			return nil, fmt.Errorf("persist tournament completion: %w", err)
		}
	}

	return battle, nil
}

// currentHP resolves the HP a pokemon carries into this battle: its last
// recorded value in the tournament, or full base HP on first appearance.
func (s *Service) currentHP(t *game.Tournament, p game.Pokemon) int {
	if hp, ok := t.HPState[keys.CombatantKey(p.ID, p.Name)]; ok {
		return hp
	}
	return p.Stats.HP
}

// setHP writes both fighters' post-battle HP into the tournament state.
func (s *Service) setHP(t *game.Tournament, p1 game.Pokemon, outcome game.Outcome, p2 game.Pokemon) {
	for _, p := range []game.Pokemon{p1, p2} {
		hp := 0
		if outcome.Winner.ID == p.ID && strings.EqualFold(outcome.Winner.Name, p.Name) {
			hp = outcome.Winner.RemainingHP
		}
		t.HPState[keys.CombatantKey(p.ID, p.Name)] = hp
	}
}
