package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dev-rohith/pokemon-simulator/internal/constants"
	"github.com/dev-rohith/pokemon-simulator/internal/logging"
	"github.com/dev-rohith/pokemon-simulator/internal/pokeapi"
)

// ListPokemon proxies one page of the upstream pokemon index. The response
// carries a `cached` flag so clients can tell a cache hit from a fresh fetch.
func (h *Handler) ListPokemon(c *gin.Context) {
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)
	if limit < 1 || limit > 100 || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyMessage: constants.ErrInvalidRequest})
		return
	}

	list, cached, err := h.poke.List(c.Request.Context(), limit, offset)
	if err != nil {
		logging.Error("failed to list pokemon", err, nil)
		c.JSON(http.StatusBadGateway, gin.H{constants.JSONKeyMessage: constants.ErrUpstreamUnavailable})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   list.Items,
		"count":  list.Count,
		"limit":  list.Limit,
		"offset": list.Offset,
		"cached": cached,
	})
}

// GetPokemon returns one pokemon's stat block by name or id.
func (h *Handler) GetPokemon(c *gin.Context) {
	p, err := h.poke.GetPokemon(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, pokeapi.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyMessage: constants.ErrPokemonNotFound})
			return
		}
		logging.Error("failed to fetch pokemon", err, nil)
		c.JSON(http.StatusBadGateway, gin.H{constants.JSONKeyMessage: constants.ErrUpstreamUnavailable})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pokemon": p})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v := c.Query(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}
