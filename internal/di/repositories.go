package di

import (
	"fmt"

	"github.com/aristath/productpulse/internal/clientdata"
	"github.com/rs/zerolog"
)

// InitializeRepositories creates all repositories and stores them in the container
func InitializeRepositories(container *Container, log zerolog.Logger) error {
	if container == nil {
		return fmt.Errorf("container cannot be nil")
	}

	container.ClientDataRepo = clientdata.NewRepository(container.ClientDataDB.Conn())
	container.NarrativeCache = clientdata.NewNarrativeCache(container.ClientDataRepo)

	log.Debug().Msg("Repositories initialized")
	return nil
}
