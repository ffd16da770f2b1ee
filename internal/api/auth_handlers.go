package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dev-rohith/pokemon-simulator/internal/constants"
	"github.com/dev-rohith/pokemon-simulator/internal/game"
	"github.com/dev-rohith/pokemon-simulator/internal/logging"
)

type registerPayload struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register creates a new account with a bcrypt-hashed password.
func (h *Handler) Register(c *gin.Context) {
	var req registerPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyMessage: constants.ErrInvalidRequest})
		return
	}

	if _, err := h.repo.GetUserByUsername(req.Username); err == nil {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyMessage: constants.ErrUsernameTaken})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyMessage: constants.ErrInternal})
		return
	}

	hash, err := h.authSvc.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyMessage: constants.ErrInternal})
		return
	}

	user := &game.User{Username: req.Username, PasswordHash: hash}
	if err := h.repo.CreateUser(user); err != nil {
		logging.Error("failed to create user", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyMessage: constants.ErrInternal})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"created_at": user.CreatedAt,
	}})
}

type loginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns a signed access token.
func (h *Handler) Login(c *gin.Context) {
	var req loginPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyMessage: constants.ErrInvalidRequest})
		return
	}

	user, err := h.repo.GetUserByUsername(req.Username)
	if err != nil || !h.authSvc.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyMessage: constants.ErrInvalidCredentials})
		return
	}

	token, err := h.authSvc.GenerateToken(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyMessage: constants.ErrInternal})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"id": user.ID, "username": user.Username},
	})
}
