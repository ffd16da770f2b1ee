package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dev-rohith/pokemon-simulator/internal/constants"
)

// Config holds everything the server needs at startup. Values come from the
// environment, optionally seeded from a .env file in the working directory.
type Config struct {
	ServerAddress   string
	DatabasePath    string
	JWTSecret       string
	PokeAPIBaseURL  string
	CacheTTL        time.Duration
	RateLimitWindow time.Duration
	RateLimitMax    int
	BcryptCost      int
	TokenTTL        time.Duration
}

// Load reads configuration from the environment. A missing .env file is not
// an error; a missing JWT secret is.
func Load() (*Config, error) {
	_ = godotenv.Load()

	secret := os.Getenv(constants.EnvJWTSecret)
	if secret == "" {
		return nil, fmt.Errorf("required environment variable %s not set", constants.EnvJWTSecret)
	}

	cfg := &Config{
		ServerAddress:   envOr(constants.EnvServerAddress, ":8080"),
		DatabasePath:    envOr(constants.EnvDatabasePath, "./data/pokemon-simulator.db"),
		JWTSecret:       secret,
		PokeAPIBaseURL:  envOr(constants.EnvPokeAPIBaseURL, constants.PokeAPIDefaultBaseURL),
		CacheTTL:        time.Duration(envIntOr(constants.EnvCacheTTL, 300)) * time.Second,
		RateLimitWindow: time.Duration(envIntOr(constants.EnvRateLimitWindow, 60)) * time.Second,
		RateLimitMax:    envIntOr(constants.EnvRateLimitMax, 100),
		BcryptCost:      envIntOr(constants.EnvBcryptCost, 10),
		TokenTTL:        time.Duration(envIntOr(constants.EnvTokenTTLMinutes, 60)) * time.Minute,
	}

	if cfg.RateLimitMax <= 0 {
		return nil, fmt.Errorf("%s must be positive", constants.EnvRateLimitMax)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
