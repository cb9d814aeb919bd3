package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"crm-dedupe/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingScanner struct {
	calls atomic.Int32
	err   error
}

func (s *countingScanner) Scan(ctx context.Context) (*service.ScanReport, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &service.ScanReport{ID: uuid.New()}, nil
}

func TestSchedulerStart_InvalidSchedule(t *testing.T) {
	s := NewScheduler(&countingScanner{}, "not a schedule")
	err := s.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duplicate scan schedule")
}

func TestSchedulerStart_RegistersJob(t *testing.T) {
	s := NewScheduler(&countingScanner{}, "0 0 3 * * *")
	require.NoError(t, s.Start())
	defer s.Stop()

	entries := s.GetScheduledJobs()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Next.After(time.Now()))
}

func TestSchedulerRunsScan(t *testing.T) {
	scanner := &countingScanner{}
	s := NewScheduler(scanner, "@every 1s")
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return scanner.calls.Load() > 0
	}, 3*time.Second, 50*time.Millisecond)
}

func TestRunScanNow(t *testing.T) {
	scanner := &countingScanner{}
	s := NewScheduler(scanner, "0 0 3 * * *")
	require.NoError(t, s.RunScanNow(context.Background()))
	assert.Equal(t, int32(1), scanner.calls.Load())

	scanner.err = errors.New("db down")
	assert.Error(t, s.RunScanNow(context.Background()))

	// Errors are logged, not propagated, from the scheduled job.
	scanner.err = service.ErrScanInProgress
	s.runScan()
	assert.Equal(t, int32(3), scanner.calls.Load())
}
