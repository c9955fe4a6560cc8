package scheduler

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	name  string
	runs  atomic.Int32
	fails bool
}

func (j *countingJob) Run() error {
	j.runs.Add(1)
	if j.fails {
		return errors.New("boom")
	}
	return nil
}

func (j *countingJob) Name() string { return j.name }

func TestAddJob_InvalidSchedule(t *testing.T) {
	s := New(zerolog.Nop())
	err := s.AddJob("not a schedule", &countingJob{name: "x"})
	assert.Error(t, err)
	assert.Empty(t, s.Jobs())
}

func TestAddJob_RequiresSecondsField(t *testing.T) {
	s := New(zerolog.Nop())

	// five-field specs are rejected when seconds are enabled
	assert.Error(t, s.AddJob("0 3 * * *", &countingJob{name: "five"}))
	assert.NoError(t, s.AddJob("0 0 3 * * *", &countingJob{name: "six"}))
	assert.Equal(t, []string{"six"}, s.Jobs())
}

func TestRunNow(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{name: "now"}

	require.NoError(t, s.RunNow(job))
	assert.Equal(t, int32(1), job.runs.Load())

	failing := &countingJob{name: "fail", fails: true}
	assert.EqualError(t, s.RunNow(failing), "boom")
}

func TestScheduler_RunsJobs(t *testing.T) {
	s := New(zerolog.Nop())
	ok := &countingJob{name: "ok"}
	failing := &countingJob{name: "failing", fails: true}

	require.NoError(t, s.AddJob("@every 1s", ok))
	require.NoError(t, s.AddJob("@every 1s", failing))

	s.Start()
	assert.Eventually(t, func() bool {
		return ok.runs.Load() > 0 && failing.runs.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)
	s.Stop()
}
