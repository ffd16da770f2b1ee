package main

import (
	"github.com/dev-rohith/pokemon-simulator/internal/config"
	"github.com/dev-rohith/pokemon-simulator/internal/logging"
	"github.com/dev-rohith/pokemon-simulator/internal/storage"
)

func loadConfigOrExit() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Missing or invalid configuration", err, nil)
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}
