// Package pokeapi implements the upstream pokemon stats provider on top of
// the public PokeAPI REST endpoints. Responses are cached with a TTL and
// concurrent fetches for the same pokemon are deduplicated so only one
// upstream request is in flight per key.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dev-rohith/pokemon-simulator/internal/cache"
	"github.com/dev-rohith/pokemon-simulator/internal/game"
)

// ErrNotFound indicates the provider has no pokemon with the given name or id.
var ErrNotFound = errors.New("pokemon not found")

// Client fetches pokemon stat blocks from PokeAPI.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *cache.Store
	group      singleflight.Group
}

// New creates a Client against baseURL, caching results in store.
func New(baseURL string, store *cache.Store) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		store:      store,
	}
}

// pokeAPIResponse mirrors the subset of the PokeAPI pokemon payload we need.
type pokeAPIResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`
	Types []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
}

// GetPokemon returns the stat block for the pokemon with the given name or
// numeric id. Lookups are case-insensitive. The result is cached; concurrent
// callers for the same key share one upstream request.
func (c *Client) GetPokemon(ctx context.Context, nameOrID string) (*game.Pokemon, error) {
	key := strings.ToLower(strings.TrimSpace(nameOrID))
	if key == "" {
		return nil, ErrNotFound
	}

	if v, ok := c.store.Get("pokemon:" + key); ok {
		p := v.(game.Pokemon)
		return &p, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		return c.fetch(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	p := v.(game.Pokemon)
	c.store.Set("pokemon:"+key, p)
	return &p, nil
}

func (c *Client) fetch(ctx context.Context, key string) (game.Pokemon, error) {
	url := fmt.Sprintf("%s/pokemon/%s", c.baseURL, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return game.Pokemon{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return game.Pokemon{}, fmt.Errorf("pokeapi request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return game.Pokemon{}, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return game.Pokemon{}, fmt.Errorf("pokeapi returned status %d", resp.StatusCode)
	}

	var out pokeAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return game.Pokemon{}, fmt.Errorf("failed to decode pokeapi response: %w", err)
	}
	return toPokemon(out), nil
}

func toPokemon(r pokeAPIResponse) game.Pokemon {
	p := game.Pokemon{ID: r.ID, Name: r.Name}
	for _, s := range r.Stats {
		switch s.Stat.Name {
		case "hp":
			p.Stats.HP = s.BaseStat
		case "attack":
			p.Stats.Attack = s.BaseStat
		case "defense":
			p.Stats.Defense = s.BaseStat
		case "special-attack":
			p.Stats.SpecialAttack = s.BaseStat
		case "special-defense":
			p.Stats.SpecialDefense = s.BaseStat
		case "speed":
			p.Stats.Speed = s.BaseStat
		}
		p.Stats.Total += s.BaseStat
	}
	for _, t := range r.Types {
		p.Types = append(p.Types, t.Type.Name)
	}
	return p
}
