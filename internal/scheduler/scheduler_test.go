package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/valuescout/backend/pkg/logger"
)

type stubJob struct {
	name     string
	schedule string
	ran      chan struct{}
}

func (j *stubJob) Name() string     { return j.name }
func (j *stubJob) Schedule() string { return j.schedule }
func (j *stubJob) Run(context.Context) error {
	select {
	case j.ran <- struct{}{}:
	default:
	}
	return nil
}

func TestAddJob_RejectsDuplicateAndBadSchedule(t *testing.T) {
	s := New(logger.NewNop())

	job := &stubJob{name: "a", schedule: "@daily", ran: make(chan struct{}, 1)}
	require.NoError(t, s.AddJob(job))
	assert.Error(t, s.AddJob(job), "duplicate name rejected")

	bad := &stubJob{name: "b", schedule: "not a cron expr"}
	assert.Error(t, s.AddJob(bad))
}

func TestRunJob_RecordsHistory(t *testing.T) {
	s := New(logger.NewNop())
	s.retryDelay = time.Millisecond

	job := &stubJob{name: "a", schedule: "@daily", ran: make(chan struct{}, 1)}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJob("a"))
	select {
	case <-job.ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}

	// runJob records history after Run returns; poll briefly.
	deadline := time.Now().Add(2 * time.Second)
	for {
		hist, err := s.History("a")
		require.NoError(t, err)
		if len(hist) == 1 {
			assert.True(t, hist[0].Success)
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("history never recorded")
		}
		time.Sleep(10 * time.Millisecond)
	}

	_, err := s.History("missing")
	assert.Error(t, err)
}

func TestJobHistory_TrimAndRate(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{Success: i%2 == 0})
	}
	assert.Len(t, h.Results, 100)
	assert.InDelta(t, 0.5, h.SuccessRate(), 0.01)
	assert.Len(t, h.LatestResults(10), 10)
	assert.Empty(t, (&JobHistory{}).LatestResults(5))
}
