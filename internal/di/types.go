/**
 * Package di provides dependency injection type definitions.
 *
 * This package defines the Container type which holds all application dependencies.
 * The Container is the single source of truth for all service instances and is
 * passed to the server for access to services.
 */
package di

import (
	"github.com/aristath/productpulse/internal/clientdata"
	"github.com/aristath/productpulse/internal/database"
	"github.com/aristath/productpulse/internal/domain"
	"github.com/aristath/productpulse/internal/modules/analysis"
	"github.com/aristath/productpulse/internal/modules/narrative"
	"github.com/aristath/productpulse/internal/modules/pipeline"
	"github.com/aristath/productpulse/internal/modules/prediction"
	"github.com/aristath/productpulse/internal/scheduler"
)

// Container holds all dependencies for the application
type Container struct {
	// Databases
	ClientDataDB *database.DB

	// Repositories
	ClientDataRepo *clientdata.Repository
	NarrativeCache *clientdata.NarrativeCache

	// External collaborators; nil when disabled by configuration
	Narrator domain.Narrator
	Fetcher  domain.ListingFetcher

	// Services
	NarrativeRunner *narrative.Runner
	Classifier      prediction.Classifier
	ModelName       string
	Analyzer        *analysis.Analyzer
	Summarizer      *analysis.Summarizer
	Synthesizer     *prediction.Synthesizer
	PipelineService *pipeline.Service

	// Background jobs
	Scheduler *scheduler.Scheduler
}

// JobInstances holds registered jobs for manual triggering via API
type JobInstances struct {
	CacheCleanup  scheduler.Job
	WALCheckpoint scheduler.Job
}

// All returns every registered job
func (j *JobInstances) All() []scheduler.Job {
	if j == nil {
		return nil
	}
	var jobs []scheduler.Job
	for _, job := range []scheduler.Job{j.CacheCleanup, j.WALCheckpoint} {
		if job != nil {
			jobs = append(jobs, job)
		}
	}
	return jobs
}

// Close releases the container's databases
func (c *Container) Close() error {
	if c == nil || c.ClientDataDB == nil {
		return nil
	}
	return c.ClientDataDB.Close()
}
