package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasentinel/aquasentinel/internal/query"
	"github.com/aquasentinel/aquasentinel/internal/worker"
)

func TestNewDigestJob_InvalidSchedule(t *testing.T) {
	_, err := worker.NewDigestJob(worker.DigestOptions{Schedule: "every tuesday", Logger: zerolog.Nop()})
	assert.Error(t, err)
}

func TestDigestJob_Run(t *testing.T) {
	h := newHarness(t, nil, worker.SchedulerConfig{})
	h.scheduler.Refresh(context.Background())

	clock := clockwork.NewFakeClockAt(epoch)
	enabled := true
	job, err := worker.NewDigestJob(worker.DigestOptions{
		TopN:    2,
		Query:   query.NewService(query.Config{Fleet: h.fleet, Clock: clock}),
		Enabled: func(context.Context) bool { return enabled },
		Clock:   clock,
		Logger:  zerolog.Nop(),
		Metrics: h.metrics,
	})
	require.NoError(t, err)

	_, ok := job.Last()
	assert.False(t, ok)

	d, ok := job.Run(context.Background())
	require.True(t, ok)
	assert.Equal(t, epoch, d.GeneratedAt)
	assert.Equal(t, 3, d.Summary.TotalStations)
	assert.Equal(t, 3, d.Summary.ReportingStations)
	require.Len(t, d.WorstStations, 2)
	assert.LessOrEqual(t, d.WorstStations[0].WQI, d.WorstStations[1].WQI)

	last, ok := job.Last()
	require.True(t, ok)
	assert.Equal(t, d.GeneratedAt, last.GeneratedAt)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.DigestRuns))

	enabled = false
	_, ok = job.Run(context.Background())
	assert.False(t, ok)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.DigestRuns))
}

func TestDigestJob_StartStop(t *testing.T) {
	job, err := worker.NewDigestJob(worker.DigestOptions{
		Schedule: "*/5 * * * *",
		Query:    query.NewService(query.Config{Fleet: testFleet(t, testStations())}),
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)

	job.Start()
	select {
	case <-job.Stop().Done():
	case <-time.After(time.Second):
		t.Fatal("digest job did not stop")
	}
}
