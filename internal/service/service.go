// Package service implements the tournament orchestrator: lifecycle rules,
// per-pokemon HP continuity between battles, and the sequencing of stat
// fetches, battle resolution and persistence.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dev-rohith/pokemon-simulator/internal/game"
	"github.com/dev-rohith/pokemon-simulator/internal/storage"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTournamentEnded    = errors.New("tournament has ended")
	ErrRoundLimitReached  = errors.New("tournament round limit reached")
	ErrTournamentNotLive  = errors.New("tournament is not live")
	ErrSamePokemon        = errors.New("cannot battle the same pokemon")
	ErrInvalidMaxRounds   = errors.New("max rounds must be between 1 and 20")
	ErrInvalidActiveTime  = errors.New("tournament active time must be between 1 and 1440 minutes")
)

// StatsProvider is the external capability that resolves a pokemon name or
// id into a stat block. Implementations report unknown pokemon with a
// distinguishable error; any provider failure aborts the calling operation.
type StatsProvider interface {
	GetPokemon(ctx context.Context, nameOrID string) (*game.Pokemon, error)
}

// Service owns tournament orchestration. Battle-adds against the same
// tournament are serialized by a per-tournament mutex so the multi-step
// read-modify-write cannot interleave and lose updates.
type Service struct {
	repo     storage.Repository
	provider StatsProvider

	// now is the injected time source used for lazy expiry checks; tests
	// override it to simulate elapsed time.
	now func() time.Time

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// New creates a Service using the wall clock.
func New(repo storage.Repository, provider StatsProvider) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		now:      time.Now,
		locks:    make(map[uint]*sync.Mutex),
	}
}

// tournamentLock returns the mutex serializing operations on one tournament,
// creating it on first use. Locks are never removed; tournaments are never
// deleted and the per-entry cost is one mutex.
func (s *Service) tournamentLock(id uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}
