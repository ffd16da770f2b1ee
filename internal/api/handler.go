package api

import (
	"github.com/dev-rohith/pokemon-simulator/internal/auth"
	"github.com/dev-rohith/pokemon-simulator/internal/pokeapi"
	"github.com/dev-rohith/pokemon-simulator/internal/service"
	"github.com/dev-rohith/pokemon-simulator/internal/storage"
)

// Handler groups all HTTP handlers and their dependencies.
type Handler struct {
	svc     *service.Service
	authSvc *auth.Service
	repo    storage.Repository
	poke    *pokeapi.Client
}

// NewHandler creates a Handler wired to the given services.
func NewHandler(svc *service.Service, authSvc *auth.Service, repo storage.Repository, poke *pokeapi.Client) *Handler {
	return &Handler{svc: svc, authSvc: authSvc, repo: repo, poke: poke}
}
