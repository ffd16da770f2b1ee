package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/dev-rohith/pokemon-simulator/internal/game"
)

const (
	minRounds        = 1
	maxRounds        = 20
	minActiveMinutes = 1
	maxActiveMinutes = 1440
)

// CreateTournament creates a live tournament whose end time is the current
// time plus the active window.
func (s *Service) CreateTournament(userID uint, name string, rounds, activeTimeMinutes int) (*game.Tournament, error) {
	if rounds < minRounds || rounds > maxRounds {
		return nil, ErrInvalidMaxRounds
	}
	if activeTimeMinutes < minActiveMinutes || activeTimeMinutes > maxActiveMinutes {
		return nil, ErrInvalidActiveTime
	}

	t := &game.Tournament{
		Name:              name,
		UserID:            userID,
		Status:            game.StatusLive,
		MaxRounds:         rounds,
		ActiveTimeMinutes: activeTimeMinutes,
		EndTime:           s.now().Add(time.Duration(activeTimeMinutes) * time.Minute),
		HPState:           make(map[string]int),
	}
	if err := s.repo.CreateTournament(t); err != nil {
		return nil, fmt.Errorf("create tournament: %w", err)
	}
	return t, nil
}

// GetResults returns the tournament with its ordered battle records.
func (s *Service) GetResults(tournamentID uint) (*game.Tournament, error) {
	t, err := s.repo.GetTournamentByID(tournamentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("read tournament: %w", err)
	}
	return t, nil
}

// ListByStatus returns tournaments with the given stored status, newest
// first. Status transitions are evaluated lazily on battle-add, never here;
// a tournament past its end time stays listed as live until the next add
// attempt flips it.
func (s *Service) ListByStatus(status game.TournamentStatus) ([]game.Tournament, error) {
	tournaments, err := s.repo.ListTournamentsByStatus(status)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	return tournaments, nil
}

// EndsIn reports how long until the tournament's deadline, clamped at zero.
func (s *Service) EndsIn(t *game.Tournament) time.Duration {
	d := t.EndTime.Sub(s.now())
	if d < 0 {
		return 0
	}
	return d
}
