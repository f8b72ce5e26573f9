package main

import (
	"context"

	"github.com/hetulpatel/moviecatalog/internal/config"
	"github.com/hetulpatel/moviecatalog/internal/logging"
	"github.com/hetulpatel/moviecatalog/internal/storage/sqlite"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logging.Fatalf("load config: %v", err)
	}
	logging.Init(cfg.LogLevel)

	store, err := sqlite.Open(cfg.DBPath, sqlite.WithForeignKeys(cfg.ForeignKeys))
	if err != nil {
		logging.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	if err := store.CreateTables(context.Background()); err != nil {
		store.Close()
		logging.Fatalf("create tables: %v", err)
	}
	logging.Infof("SQLite tables created at %s", store.Path())
}
