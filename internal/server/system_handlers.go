package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/productpulse/internal/database"
	"github.com/aristath/productpulse/internal/di"
	"github.com/aristath/productpulse/internal/scheduler"
)

// cpuSampleInterval keeps the status call fast while still giving a usable reading
const cpuSampleInterval = 100 * time.Millisecond

// reachabilityChecker is implemented by narrators that can report whether
// their backend answers
type reachabilityChecker interface {
	Available(ctx context.Context) bool
}

// SystemHandlers serves runtime status and maintenance job triggers
type SystemHandlers struct {
	log         zerolog.Logger
	startupTime time.Time
	container   *di.Container
	jobs        map[string]scheduler.Job
}

// NewSystemHandlers creates system handlers; container may be nil in tests
func NewSystemHandlers(log zerolog.Logger, container *di.Container, jobs []scheduler.Job) *SystemHandlers {
	byName := make(map[string]scheduler.Job, len(jobs))
	for _, job := range jobs {
		byName[job.Name()] = job
	}
	return &SystemHandlers{
		log:         log.With().Str("handler", "system").Logger(),
		startupTime: time.Now(),
		container:   container,
		jobs:        byName,
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandlers) RegisterRoutes(r chi.Router) {
	r.Get("/status", h.HandleSystemStatus)
	r.Get("/jobs", h.HandleListJobs)
	r.Post("/jobs/{name}", h.HandleTriggerJob)
}

// SystemStatusResponse is the body of GET /api/system/status
type SystemStatusResponse struct {
	Status        string          `json:"status"`
	CPUPercent    float64         `json:"cpu_percent"`
	MemoryPercent float64         `json:"memory_percent"`
	UptimeHours   float64         `json:"uptime_hours"`
	Model         string          `json:"model,omitempty"`
	Narrative     bool            `json:"narrative_enabled"`
	Narrator      *bool           `json:"narrator_reachable,omitempty"`
	Search        bool            `json:"search_enabled"`
	Database      *database.Stats `json:"database,omitempty"`
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, memPercent := h.getSystemStats()

	response := SystemStatusResponse{
		Status:        "ok",
		CPUPercent:    cpuPercent,
		MemoryPercent: memPercent,
		UptimeHours:   time.Since(h.startupTime).Hours(),
	}

	if c := h.container; c != nil {
		response.Model = c.ModelName
		response.Narrative = c.NarrativeRunner.Enabled()
		if checker, ok := c.Narrator.(reachabilityChecker); ok {
			reachable := checker.Available(r.Context())
			if !reachable {
				h.log.Warn().Msg("Narrator unreachable, reasoning will use fallback text")
			}
			response.Narrator = &reachable
		}
		response.Search = c.PipelineService != nil && c.PipelineService.SearchEnabled()

		if c.ClientDataDB != nil {
			if err := c.ClientDataDB.QuickCheck(r.Context()); err != nil {
				h.log.Warn().Err(err).Msg("Database health check failed")
				response.Status = "degraded"
			}
			stats, err := c.ClientDataDB.GetStats()
			if err != nil {
				h.log.Warn().Err(err).Msg("Failed to read database stats")
			}
			response.Database = stats
		}
	}

	writeJSON(h.log, w, http.StatusOK, response)
}

// HandleListJobs handles GET /api/system/jobs
func (h *SystemHandlers) HandleListJobs(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(h.jobs))
	for name := range h.jobs {
		names = append(names, name)
	}
	sort.Strings(names)

	writeJSON(h.log, w, http.StatusOK, map[string]interface{}{"jobs": names})
}

// HandleTriggerJob handles POST /api/system/jobs/{name}
func (h *SystemHandlers) HandleTriggerJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	job, ok := h.jobs[name]
	if !ok {
		writeJSON(h.log, w, http.StatusNotFound, map[string]string{"error": "unknown job: " + name})
		return
	}

	start := time.Now()
	var err error
	if h.container != nil && h.container.Scheduler != nil {
		err = h.container.Scheduler.RunNow(job)
	} else {
		err = job.Run()
	}
	if err != nil {
		h.log.Error().Err(err).Str("job", name).Msg("Manual job run failed")
		writeJSON(h.log, w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(h.log, w, http.StatusOK, map[string]interface{}{
		"job":         name,
		"status":      "completed",
		"duration_ms": time.Since(start).Milliseconds(),
	})
}

// getSystemStats returns CPU and RAM usage percentages
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(cpuSampleInterval, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

// writeJSON writes a JSON response
func writeJSON(log zerolog.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
