package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/dev-rohith/pokemon-simulator/internal/game"
)

type mockRepo struct {
	tournaments map[uint]*game.Tournament
	battles     []*game.Battle
	nextID      uint
	updates     int
	failUpdate  bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{tournaments: map[uint]*game.Tournament{}, nextID: 1}
}

func (m *mockRepo) CreateUser(u *game.User) error                      { return nil }
func (m *mockRepo) GetUserByUsername(string) (*game.User, error)       { return nil, gorm.ErrRecordNotFound }
func (m *mockRepo) GetUserByID(uint) (*game.User, error)               { return nil, gorm.ErrRecordNotFound }

func (m *mockRepo) CreateTournament(t *game.Tournament) error {
	t.ID = m.nextID
	m.nextID++
	m.tournaments[t.ID] = t
	return nil
}

func (m *mockRepo) GetTournamentByID(id uint) (*game.Tournament, error) {
	t, ok := m.tournaments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (m *mockRepo) UpdateTournament(t *game.Tournament) error {
	if m.failUpdate {
		return errors.New("disk full")
	}
	m.updates++
	m.tournaments[t.ID] = t
	return nil
}

func (m *mockRepo) ListTournamentsByStatus(status game.TournamentStatus) ([]game.Tournament, error) {
	var out []game.Tournament
	for _, t := range m.tournaments {
		if t.Status == status {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *mockRepo) CreateBattle(b *game.Battle) error {
	b.ID = m.nextID
	m.nextID++
	m.battles = append(m.battles, b)
	return nil
}

func (m *mockRepo) ListBattlesByUser(userID uint) ([]game.Battle, error) {
	var out []game.Battle
	for _, b := range m.battles {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

type mockProvider struct {
	pokemon map[string]game.Pokemon
	err     error
}

func (m *mockProvider) GetPokemon(_ context.Context, name string) (*game.Pokemon, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.pokemon[name]
	if !ok {
		return nil, errors.New("pokemon not found")
	}
	return &p, nil
}

func kantoProvider() *mockProvider {
	return &mockProvider{pokemon: map[string]game.Pokemon{
		"pikachu":    {ID: 25, Name: "pikachu", Stats: game.BaseStats{HP: 35, Attack: 55, Defense: 40, Speed: 90}},
		"bulbasaur":  {ID: 1, Name: "bulbasaur", Stats: game.BaseStats{HP: 45, Attack: 49, Defense: 49, Speed: 45}},
		"charmander": {ID: 4, Name: "charmander", Stats: game.BaseStats{HP: 39, Attack: 52, Defense: 43, Speed: 65}},
		"squirtle":   {ID: 7, Name: "squirtle", Stats: game.BaseStats{HP: 44, Attack: 48, Defense: 65, Speed: 43}},
	}}
}

func newTestService(repo *mockRepo, provider StatsProvider, start time.Time) (*Service, *time.Time) {
	now := start
	svc := New(repo, provider)
	svc.now = func() time.Time { return now }
	return svc, &now
}

func TestAddBattle_HPPersistsAcrossBattles(t *testing.T) {
	repo := newMockRepo()
	svc, _ := newTestService(repo, kantoProvider(), time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	tr, err := svc.CreateTournament(1, "HP Test Cup", 3, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b1, err := svc.AddBattle(context.Background(), tr.ID, "pikachu", "bulbasaur")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b1.WinnerName != "pikachu" {
		t.Fatalf("expected pikachu to win the opener, got %q", b1.WinnerName)
	}
	if b1.WinnerRemainingHP <= 0 || b1.WinnerRemainingHP >= 35 {
		t.Fatalf("winner should have taken damage, remaining=%d", b1.WinnerRemainingHP)
	}
	if b1.BattleNumber != 1 {
		t.Fatalf("expected battle number 1, got %d", b1.BattleNumber)
	}

	if got := tr.HPState["25-pikachu"]; got != b1.WinnerRemainingHP {
		t.Fatalf("winner HP state = %d, want %d", got, b1.WinnerRemainingHP)
	}
	if got := tr.HPState["1-bulbasaur"]; got != 0 {
		t.Fatalf("loser HP state = %d, want 0", got)
	}

	// Pikachu enters the next battle with its carried-over HP and loses to
	// a fresh charmander.
	b2, err := svc.AddBattle(context.Background(), tr.ID, "pikachu", "charmander")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b2.BattleNumber != 2 {
		t.Fatalf("expected battle number 2, got %d", b2.BattleNumber)
	}
	if b2.WinnerName != "charmander" {
		t.Fatalf("expected weakened pikachu to lose, winner=%q", b2.WinnerName)
	}
	if got := tr.HPState["25-pikachu"]; got != 0 {
		t.Fatalf("defeated pikachu HP state = %d, want 0", got)
	}
}

func TestAddBattle_FaintedPokemonLosesWithoutFighting(t *testing.T) {
	repo := newMockRepo()
	svc, _ := newTestService(repo, kantoProvider(), time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	tr, _ := svc.CreateTournament(1, "Faint Cup", 3, 30)
	if _, err := svc.AddBattle(context.Background(), tr.ID, "pikachu", "bulbasaur"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Bulbasaur lost the opener and is at 0 HP; it loses immediately.
	b, err := svc.AddBattle(context.Background(), tr.ID, "bulbasaur", "charmander")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.WinnerName != "charmander" {
		t.Fatalf("expected charmander to win by default, got %q", b.WinnerName)
	}
	if b.WinnerRemainingHP != 39 {
		t.Fatalf("winner of a no-contest keeps full HP, got %d", b.WinnerRemainingHP)
	}
}

func TestAddBattle_RoundLimitCompletesTournament(t *testing.T) {
	repo := newMockRepo()
	svc, _ := newTestService(repo, kantoProvider(), time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	tr, _ := svc.CreateTournament(1, "One Round Cup", 1, 30)
	if _, err := svc.AddBattle(context.Background(), tr.ID, "pikachu", "bulbasaur"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Status != game.StatusCompleted {
		t.Fatalf("expected tournament completed after final round, got %q", tr.Status)
	}

	_, err := svc.AddBattle(context.Background(), tr.ID, "charmander", "squirtle")
	if !errors.Is(err, ErrRoundLimitReached) {
		t.Fatalf("expected ErrRoundLimitReached, got %v", err)
	}
	if n := len(tr.Battles); n != 1 {
		t.Fatalf("rounds must never exceed max, got %d", n)
	}
}

func TestAddBattle_LazyExpiry(t *testing.T) {
	repo := newMockRepo()
	svc, now := newTestService(repo, kantoProvider(), time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	tr, _ := svc.CreateTournament(1, "Expiring Cup", 5, 30)

	*now = now.Add(31 * time.Minute)
	_, err := svc.AddBattle(context.Background(), tr.ID, "pikachu", "bulbasaur")
	if !errors.Is(err, ErrTournamentEnded) {
		t.Fatalf("expected ErrTournamentEnded, got %v", err)
	}
	if tr.Status != game.StatusCompleted {
		t.Fatalf("expiry should flip status to completed, got %q", tr.Status)
	}
	if repo.updates == 0 {
		t.Fatal("expiry transition must be persisted")
	}
}

func TestAddBattle_ExpiryTakesPriorityOverRoundLimit(t *testing.T) {
	repo := newMockRepo()
	svc, now := newTestService(repo, kantoProvider(), time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	tr, _ := svc.CreateTournament(1, "Double Done Cup", 1, 30)
	if _, err := svc.AddBattle(context.Background(), tr.ID, "pikachu", "bulbasaur"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	*now = now.Add(31 * time.Minute)
	_, err := svc.AddBattle(context.Background(), tr.ID, "charmander", "squirtle")
	if !errors.Is(err, ErrTournamentEnded) {
		t.Fatalf("time reason outranks round limit, got %v", err)
	}
}

func TestAddBattle_SamePokemonRejected(t *testing.T) {
	repo := newMockRepo()
	svc, _ := newTestService(repo, kantoProvider(), time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	tr, _ := svc.CreateTournament(1, "Mirror Cup", 3, 30)
	_, err := svc.AddBattle(context.Background(), tr.ID, "pikachu", "pikachu")
	if !errors.Is(err, ErrSamePokemon) {
		t.Fatalf("expected ErrSamePokemon, got %v", err)
	}
	if len(repo.battles) != 0 {
		t.Fatal("rejection must not persist a battle record")
	}
}

func TestAddBattle_TournamentNotFound(t *testing.T) {
	repo := newMockRepo()
	svc, _ := newTestService(repo, kantoProvider(), time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	_, err := svc.AddBattle(context.Background(), 99, "pikachu", "bulbasaur")
	if !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("expected ErrTournamentNotFound, got %v", err)
	}
}

func TestAddBattle_TournamentSaveFailureKeepsBattleRecord(t *testing.T) {
	repo := newMockRepo()
	svc, _ := newTestService(repo, kantoProvider(), time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	tr, _ := svc.CreateTournament(1, "Flaky Disk Cup", 3, 30)
	repo.failUpdate = true

	b, err := svc.AddBattle(context.Background(), tr.ID, "pikachu", "bulbasaur")
	if err == nil {
		t.Fatal("expected tournament save failure to propagate")
	}
	if b != nil {
		t.Fatal("failed add must not return a battle")
	}
	// The battle row is already durable when the tournament save fails;
	// the orphaned record stays and the failure is surfaced to the caller.
	if len(repo.battles) != 1 {
		t.Fatalf("expected the orphaned battle record to remain, got %d", len(repo.battles))
	}
	if repo.updates != 0 {
		t.Fatalf("failed save must not count as a persisted update, got %d", repo.updates)
	}
	if tr.Status != game.StatusLive {
		t.Fatalf("tournament must stay live after a failed save, got %q", tr.Status)
	}
}

func TestAddBattle_ProviderFailureLeavesNoSideEffects(t *testing.T) {
	repo := newMockRepo()
	provider := kantoProvider()
	svc, _ := newTestService(repo, provider, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	tr, _ := svc.CreateTournament(1, "Offline Cup", 3, 30)
	updatesBefore := repo.updates

	provider.err = errors.New("upstream timeout")
	_, err := svc.AddBattle(context.Background(), tr.ID, "pikachu", "bulbasaur")
	if err == nil {
		t.Fatal("expected fetch failure to propagate")
	}
	if len(repo.battles) != 0 {
		t.Fatal("fetch failure must not persist a battle record")
	}
	if len(tr.HPState) != 0 {
		t.Fatal("fetch failure must not mutate HP state")
	}
	if repo.updates != updatesBefore {
		t.Fatal("fetch failure must not persist the tournament")
	}
}
