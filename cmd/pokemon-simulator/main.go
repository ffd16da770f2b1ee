package main

import (
	"github.com/gin-gonic/gin"

	"github.com/dev-rohith/pokemon-simulator/internal/api"
	"github.com/dev-rohith/pokemon-simulator/internal/auth"
	"github.com/dev-rohith/pokemon-simulator/internal/cache"
	"github.com/dev-rohith/pokemon-simulator/internal/constants"
	"github.com/dev-rohith/pokemon-simulator/internal/logging"
	"github.com/dev-rohith/pokemon-simulator/internal/pokeapi"
	"github.com/dev-rohith/pokemon-simulator/internal/ratelimit"
	"github.com/dev-rohith/pokemon-simulator/internal/service"
)

func main() {
	cfg := loadConfigOrExit()
	repo := createRepositoryOrExit(cfg.DatabasePath)

	store := cache.New(cfg.CacheTTL)
	poke := pokeapi.New(cfg.PokeAPIBaseURL, store)
	svc := service.New(repo, poke)
	authSvc := auth.NewService(cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)
	limiter := ratelimit.New(cfg.RateLimitMax, cfg.RateLimitWindow)

	handler := api.NewHandler(svc, authSvc, repo, poke)

	router := gin.New()
	router.Use(api.RequestLogger(), gin.Recovery())

	router.GET(constants.RouteHealth, api.Health)

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.POST(constants.RouteAuthRegister, handler.Register)
		apiRoutes.POST(constants.RouteAuthLogin, handler.Login)

		// Authenticated, rate-limited endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired(authSvc), api.RateLimit(limiter))

		protected.GET(constants.RoutePokemonList, handler.ListPokemon)
		protected.GET(constants.RoutePokemonByName, handler.GetPokemon)

		protected.POST(constants.RouteBattles, handler.SimulateBattle)
		protected.GET(constants.RouteBattles, handler.ListBattles)

		protected.POST(constants.RouteTournaments, handler.CreateTournament)
		protected.GET(constants.RouteTournamentsLive, handler.ListLive)
		protected.GET(constants.RouteTournamentsCompleted, handler.ListCompleted)
		protected.POST(constants.RouteTournamentBattle, handler.AddBattle)
		protected.GET(constants.RouteTournamentResults, handler.GetResults)
	}

	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: cfg.ServerAddress})
	if err := router.Run(cfg.ServerAddress); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
