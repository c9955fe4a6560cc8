package clientdata

import (
	"errors"

	"github.com/aristath/productpulse/internal/utils"
	"github.com/rs/zerolog"
)

// CleanupJob purges expired narratives and listings
type CleanupJob struct {
	repo *Repository
	log  zerolog.Logger
}

// NewCleanupJob creates the cache cleanup job
func NewCleanupJob(repo *Repository, log zerolog.Logger) *CleanupJob {
	return &CleanupJob{
		repo: repo,
		log:  log.With().Str("job", "client_data_cleanup").Logger(),
	}
}

// Run deletes expired rows from every cache table. A failing table does not
// stop the others; all failures are returned together.
func (j *CleanupJob) Run() error {
	var (
		errs  []error
		total int64
	)

	for _, table := range AllTables {
		done := utils.MeasureQuery(table, "delete_expired", j.log)
		deleted, err := j.repo.DeleteExpired(table)
		done(deleted)
		if err != nil {
			j.log.Error().Err(err).Str("table", table).Msg("Failed to purge expired entries")
			errs = append(errs, err)
			continue
		}
		total += deleted
	}

	if total > 0 {
		j.log.Info().Int64("deleted", total).Msg("Purged expired cache entries")
	}
	return errors.Join(errs...)
}

// Name returns the scheduler name of the job
func (j *CleanupJob) Name() string {
	return "client_data_cleanup"
}
