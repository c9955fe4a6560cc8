package utils

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	// SlowOperationThreshold marks a timed pipeline operation as slow
	SlowOperationThreshold = 30 * time.Second
	// SlowQueryThreshold marks a cache query as slow
	SlowQueryThreshold = 2 * time.Second
)

// Timer measures the duration of a named operation
type Timer struct {
	start time.Time
	name  string
	log   zerolog.Logger
}

// NewTimer starts a timer for the named operation
func NewTimer(name string, log zerolog.Logger) *Timer {
	return &Timer{start: time.Now(), name: name, log: log}
}

// Elapsed returns the time since the timer started without logging
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Stop logs the duration and returns it. Slow operations log at warn level.
func (t *Timer) Stop() time.Duration {
	d := time.Since(t.start)
	logDuration(t.log, d, SlowOperationThreshold).
		Str("operation", t.name).
		Dur("duration", d).
		Msg("Operation timed")
	return d
}

// MeasureQuery starts timing a cache query. Call the returned func with the
// affected row count once the query finishes.
func MeasureQuery(table, query string, log zerolog.Logger) func(rows int64) {
	start := time.Now()
	return func(rows int64) {
		d := time.Since(start)
		logDuration(log, d, SlowQueryThreshold).
			Str("table", table).
			Str("query", query).
			Int64("rows", rows).
			Dur("duration", d).
			Msg("Query timed")
	}
}

func logDuration(log zerolog.Logger, d, slow time.Duration) *zerolog.Event {
	if d > slow {
		return log.Warn().Bool("slow", true)
	}
	return log.Debug()
}
