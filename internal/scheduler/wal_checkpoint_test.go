package scheduler

import (
	"testing"

	testutil "github.com/aristath/productpulse/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWALCheckpointJob_Name(t *testing.T) {
	assert.Equal(t, "wal_checkpoint", NewWALCheckpointJob(nil, zerolog.Nop()).Name())
}

func TestWALCheckpointJob_NilDatabase(t *testing.T) {
	assert.NoError(t, NewWALCheckpointJob(nil, zerolog.Nop()).Run())
}

func TestWALCheckpointJob_Run(t *testing.T) {
	db, cleanup := testutil.NewTestDB(t, "client_data")
	defer cleanup()

	assert.NoError(t, NewWALCheckpointJob(db, zerolog.Nop()).Run())

	// A closed database is reported through the log, not as a job failure
	cleanup()
	assert.NoError(t, NewWALCheckpointJob(db, zerolog.Nop()).Run())
}
