package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ListItem is one entry of the paginated pokemon index.
type ListItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// PokemonList is a page of the pokemon index.
type PokemonList struct {
	Count  int        `json:"count"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
	Items  []ListItem `json:"data"`
}

type listResponse struct {
	Count   int `json:"count"`
	Results []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"results"`
}

// List returns one page of the pokemon index. The boolean reports whether
// the page was served from cache.
func (c *Client) List(ctx context.Context, limit, offset int) (*PokemonList, bool, error) {
	cacheKey := fmt.Sprintf("pokemon-list:%d:%d", limit, offset)
	if v, ok := c.store.Get(cacheKey); ok {
		list := v.(PokemonList)
		return &list, true, nil
	}

	url := fmt.Sprintf("%s/pokemon?limit=%d&offset=%d", c.baseURL, limit, offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("pokeapi request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("pokeapi returned status %d", resp.StatusCode)
	}
	var out listResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, false, fmt.Errorf("failed to decode pokeapi response: %w", err)
	}

	list := PokemonList{Count: out.Count, Limit: limit, Offset: offset, Items: make([]ListItem, 0, len(out.Results))}
	for _, r := range out.Results {
		list.Items = append(list.Items, ListItem{ID: idFromResourceURL(r.URL), Name: r.Name})
	}
	c.store.Set(cacheKey, list)
	return &list, false, nil
}

// idFromResourceURL extracts the trailing numeric id from a PokeAPI resource
// URL such as "https://pokeapi.co/api/v2/pokemon/25/". Returns 0 when the
// URL does not carry one.
func idFromResourceURL(url string) int {
	parts := strings.Split(strings.TrimRight(url, "/"), "/")
	if len(parts) == 0 {
		return 0
	}
	id, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return id
}
