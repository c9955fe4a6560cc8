package di

import (
	"fmt"

	"github.com/aristath/productpulse/internal/config"
	"github.com/aristath/productpulse/internal/database"
	"github.com/rs/zerolog"
)

// InitializeDatabases opens client_data.db and applies its schema
func InitializeDatabases(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	// client_data.db - narrator responses and fetched listings, all TTL-bound
	clientDataDB, err := database.New(database.Config{
		Path:    cfg.DatabasePath(),
		Profile: database.ProfileCache,
		Name:    "client_data",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize client data database: %w", err)
	}

	if err := clientDataDB.Migrate(); err != nil {
		clientDataDB.Close()
		return nil, fmt.Errorf("failed to migrate client data database: %w", err)
	}
	container.ClientDataDB = clientDataDB

	log.Info().Str("path", clientDataDB.Path()).Msg("Databases initialized")
	return container, nil
}
