package di

import (
	"fmt"

	"github.com/aristath/productpulse/internal/clientdata"
	"github.com/aristath/productpulse/internal/config"
	"github.com/aristath/productpulse/internal/scheduler"
	"github.com/rs/zerolog"
)

// walCheckpointSchedule runs the WAL check every 15 minutes
const walCheckpointSchedule = "0 */15 * * * *"

// RegisterJobs creates the maintenance jobs and registers them with the scheduler
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) (*JobInstances, error) {
	if container == nil {
		return nil, fmt.Errorf("container cannot be nil")
	}

	container.Scheduler = scheduler.New(log)
	instances := &JobInstances{
		CacheCleanup:  clientdata.NewCleanupJob(container.ClientDataRepo, log),
		WALCheckpoint: scheduler.NewWALCheckpointJob(container.ClientDataDB, log),
	}

	if err := container.Scheduler.AddJob(cfg.CacheCleanupSchedule, instances.CacheCleanup); err != nil {
		return nil, fmt.Errorf("failed to register cache cleanup job: %w", err)
	}
	if err := container.Scheduler.AddJob(walCheckpointSchedule, instances.WALCheckpoint); err != nil {
		return nil, fmt.Errorf("failed to register WAL checkpoint job: %w", err)
	}

	return instances, nil
}
