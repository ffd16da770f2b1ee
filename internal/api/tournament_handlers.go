package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dev-rohith/pokemon-simulator/internal/constants"
	"github.com/dev-rohith/pokemon-simulator/internal/game"
	"github.com/dev-rohith/pokemon-simulator/internal/logging"
	"github.com/dev-rohith/pokemon-simulator/internal/pokeapi"
	"github.com/dev-rohith/pokemon-simulator/internal/service"
)

type createTournamentPayload struct {
	Name      string `json:"name" binding:"required,max=64"`
	MaxRounds int    `json:"max_rounds" binding:"required,min=1,max=20"`
	// ActiveTime defaults to an hour when the client omits it.
	ActiveTime int `json:"tournament_active_time" binding:"omitempty,min=1,max=1440"`
}

// CreateTournament creates a live tournament for the authenticated user.
func (h *Handler) CreateTournament(c *gin.Context) {
	var req createTournamentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyMessage: constants.ErrInvalidRequest})
		return
	}
	if req.ActiveTime == 0 {
		req.ActiveTime = 60
	}

	t, err := h.svc.CreateTournament(currentUserID(c), req.Name, req.MaxRounds, req.ActiveTime)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMaxRounds), errors.Is(err, service.ErrInvalidActiveTime):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyMessage: err.Error()})
		default:
			logging.Error("failed to create tournament", err, nil)
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyMessage: constants.ErrInternal})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tournament": gin.H{
		"id":                     t.ID,
		"name":                   t.Name,
		"status":                 t.Status,
		"max_rounds":             t.MaxRounds,
		"tournament_active_time": t.ActiveTimeMinutes,
		"end_time":               t.EndTime,
		"created_at":             t.CreatedAt,
	}})
}

type addBattlePayload struct {
	Attacker string `json:"attacker" binding:"required"`
	Defender string `json:"defender" binding:"required"`
}

// AddBattle resolves one battle inside a tournament.
func (h *Handler) AddBattle(c *gin.Context) {
	id, ok := tournamentID(c)
	if !ok {
		return
	}
	var req addBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyMessage: constants.ErrInvalidRequest})
		return
	}

	battle, err := h.svc.AddBattle(c.Request.Context(), id, req.Attacker, req.Defender)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTournamentNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyMessage: constants.ErrTournamentNotFound})
		case errors.Is(err, service.ErrTournamentEnded):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyMessage: constants.ErrTournamentEnded})
		case errors.Is(err, service.ErrRoundLimitReached):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyMessage: constants.ErrRoundLimitReached})
		case errors.Is(err, service.ErrTournamentNotLive):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyMessage: constants.ErrTournamentNotLive})
		case errors.Is(err, service.ErrSamePokemon):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyMessage: constants.ErrSamePokemon})
		case errors.Is(err, pokeapi.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyMessage: constants.ErrPokemonNotFound})
		default:
			logging.Error("failed to add battle", err, logging.Fields{constants.LogFieldTournamentID: id})
			c.JSON(http.StatusBadGateway, gin.H{constants.JSONKeyMessage: constants.ErrUpstreamUnavailable})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"battle": gin.H{
		"id":                  battle.ID,
		"tournament_id":       battle.TournamentID,
		"battle_number":       battle.BattleNumber,
		"attacker1_id":        battle.Attacker1ID,
		"attacker1_name":      battle.Attacker1Name,
		"attacker2_id":        battle.Attacker2ID,
		"attacker2_name":      battle.Attacker2Name,
		"winner_name":         battle.WinnerName,
		"winner_remaining_hp": battle.WinnerRemainingHP,
		"created_at":          battle.CreatedAt,
	}})
}

// GetResults returns a tournament with its battle history and per-pokemon
// remaining HP.
func (h *Handler) GetResults(c *gin.Context) {
	id, ok := tournamentID(c)
	if !ok {
		return
	}

	t, err := h.svc.GetResults(id)
	if err != nil {
		if errors.Is(err, service.ErrTournamentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyMessage: constants.ErrTournamentNotFound})
			return
		}
		logging.Error("failed to read tournament results", err, logging.Fields{constants.LogFieldTournamentID: id})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyMessage: constants.ErrInternal})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tournament": gin.H{
		"id":         t.ID,
		"name":       t.Name,
		"status":     t.Status,
		"max_rounds": t.MaxRounds,
		"end_time":   t.EndTime,
		"rounds":     t.Battles,
		"hp_state":   t.HPState,
	}})
}

// ListLive returns live tournaments, with the extra in-progress fields
// (next round, time remaining) completed tournaments do not carry.
func (h *Handler) ListLive(c *gin.Context) {
	tournaments, err := h.svc.ListByStatus(game.StatusLive)
	if err != nil {
		logging.Error("failed to list live tournaments", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyMessage: constants.ErrInternal})
		return
	}

	out := make([]gin.H, 0, len(tournaments))
	for i := range tournaments {
		t := &tournaments[i]
		out = append(out, gin.H{
			"id":                  t.ID,
			"name":                t.Name,
			"status":              t.Status,
			"max_rounds":          t.MaxRounds,
			"next_round":          len(t.Battles) + 1,
			"tournament_ends_in":  h.svc.EndsIn(t).Round(time.Second).String(),
			"created_at":          t.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"tournaments": out})
}

// ListCompleted returns completed tournaments without the live-only fields.
func (h *Handler) ListCompleted(c *gin.Context) {
	tournaments, err := h.svc.ListByStatus(game.StatusCompleted)
	if err != nil {
		logging.Error("failed to list completed tournaments", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyMessage: constants.ErrInternal})
		return
	}

	out := make([]gin.H, 0, len(tournaments))
	for i := range tournaments {
		t := &tournaments[i]
		out = append(out, gin.H{
			"id":           t.ID,
			"name":         t.Name,
			"status":       t.Status,
			"total_rounds": len(t.Battles),
			"created_at":   t.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"tournaments": out})
}

// tournamentID parses the :id path parameter, writing the error response on
// failure.
func tournamentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyMessage: constants.ErrInvalidRequest})
		return 0, false
	}
	return uint(id), true
}
