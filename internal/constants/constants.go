// Package constants centralizes env keys, headers, routes and JSON keys used
// across the backend.
package constants

const (
	// Environment variable keys
	EnvServerAddress    = "SERVER_ADDRESS"
	EnvDatabasePath     = "DATABASE_PATH"
	EnvJWTSecret        = "JWT_SECRET"
	EnvPokeAPIBaseURL   = "POKEAPI_BASE_URL"
	EnvCacheTTL         = "CACHE_TTL_SECONDS"
	EnvRateLimitWindow  = "RATE_LIMIT_WINDOW_SECONDS"
	EnvRateLimitMax     = "RATE_LIMIT_MAX"
	EnvBcryptCost       = "BCRYPT_COST"
	EnvTokenTTLMinutes  = "TOKEN_TTL_MINUTES"

	// HTTP headers
	HeaderAuthorization      = "Authorization"
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
	HeaderRetryAfter         = "Retry-After"
	HeaderRequestID          = "X-Request-ID"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// Upstream pokemon data provider
	PokeAPIDefaultBaseURL = "https://pokeapi.co/api/v2"

	// JSON keys
	JSONKeyMessage = "message"
)

// Routes used by the backend router
const (
	RouteAPIPrefix            = "/api"
	RouteHealth               = "/health"
	RouteAuthRegister         = "/auth/register"
	RouteAuthLogin            = "/auth/login"
	RoutePokemonList          = "/pokemon/list"
	RoutePokemonByName        = "/pokemon/:name"
	RouteBattles              = "/battles"
	RouteTournaments          = "/tournaments"
	RouteTournamentsLive      = "/tournaments/live"
	RouteTournamentsCompleted = "/tournaments/completed"
	RouteTournamentBattle     = "/tournaments/:id/battle"
	RouteTournamentResults    = "/tournaments/:id/results"
)

// User-facing error messages
const (
	ErrInvalidRequest        = "invalid request"
	ErrAuthRequired          = "authentication required"
	ErrInvalidCredentials    = "invalid credentials"
	ErrUsernameTaken         = "username already exists"
	ErrTournamentNotFound    = "tournament not found"
	ErrTournamentEnded       = "tournament has ended"
	ErrRoundLimitReached     = "tournament round limit reached"
	ErrTournamentNotLive     = "tournament is not live"
	ErrSamePokemon           = "cannot battle the same pokemon"
	ErrPokemonNotFound       = "pokemon not found"
	ErrUpstreamUnavailable   = "pokemon data provider unavailable"
	ErrInternal              = "internal server error"
	ErrTooManyRequests       = "too many requests"
)

// Log field names
const (
	LogFieldAddr         = "addr"
	LogFieldTournamentID = "tournament_id"
	LogFieldBattleID     = "battle_id"
	LogFieldRequestID    = "request_id"
)
