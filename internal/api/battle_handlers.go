package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-rohith/pokemon-simulator/internal/constants"
	"github.com/dev-rohith/pokemon-simulator/internal/game"
	"github.com/dev-rohith/pokemon-simulator/internal/logging"
	"github.com/dev-rohith/pokemon-simulator/internal/service"
)

type combatantPayload struct {
	ID    int    `json:"id"`
	Name  string `json:"name" binding:"required"`
	Stats struct {
		HP             int `json:"hp" binding:"required,gt=0"`
		Attack         int `json:"attack" binding:"required,gt=0"`
		Defense        int `json:"defense" binding:"required,gt=0"`
		SpecialAttack  int `json:"special_attack"`
		SpecialDefense int `json:"special_defense"`
		Speed          int `json:"speed"`
		Total          int `json:"total"`
	} `json:"stats" binding:"required"`
}

func (p combatantPayload) toCombatant() game.Combatant {
	pk := game.Pokemon{
		ID:   p.ID,
		Name: p.Name,
		Stats: game.BaseStats{
			HP:             p.Stats.HP,
			Attack:         p.Stats.Attack,
			Defense:        p.Stats.Defense,
			SpecialAttack:  p.Stats.SpecialAttack,
			SpecialDefense: p.Stats.SpecialDefense,
			Speed:          p.Stats.Speed,
			Total:          p.Stats.Total,
		},
	}
	return game.NewCombatant(pk, p.Stats.HP)
}

type simulateBattlePayload struct {
	Attacker1 combatantPayload `json:"attacker1" binding:"required"`
	Attacker2 combatantPayload `json:"attacker2" binding:"required"`
}

// SimulateBattle resolves an ad-hoc battle from caller-supplied stat blocks
// and records the result for the authenticated user.
func (h *Handler) SimulateBattle(c *gin.Context) {
	var req simulateBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyMessage: constants.ErrInvalidRequest})
		return
	}

	battle, outcome, err := h.svc.SimulateBattle(currentUserID(c), req.Attacker1.toCombatant(), req.Attacker2.toCombatant())
	if err != nil {
		if errors.Is(err, service.ErrSamePokemon) {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyMessage: constants.ErrSamePokemon})
			return
		}
		logging.Error("failed to simulate battle", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyMessage: constants.ErrInternal})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Battle completed successfully",
		"battle": gin.H{
			"id":         battle.ID,
			"attacker1":  battle.Attacker1Name,
			"attacker2":  battle.Attacker2Name,
			"winner":     battle.WinnerName,
			"created_at": battle.CreatedAt,
		},
		"result": outcome,
	})
}

// ListBattles returns the authenticated user's battle history.
func (h *Handler) ListBattles(c *gin.Context) {
	battles, err := h.svc.ListBattles(currentUserID(c))
	if err != nil {
		logging.Error("failed to list battles", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyMessage: constants.ErrInternal})
		return
	}
	c.JSON(http.StatusOK, gin.H{"battles": battles})
}
