package bootstrap

import (
	"fmt"
	"log"

	"github.com/go-sessiongate/sessiongate/internal/config"
	"github.com/go-sessiongate/sessiongate/internal/store"
)

// initializeDatabase opens the user store and runs migrations
func initializeDatabase(cfg *config.Config) (*store.Store, error) {
	db, err := store.New(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	log.Printf("Database initialized: driver=%s", cfg.DatabaseDriver)
	return db, nil
}
