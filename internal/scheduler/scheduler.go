package scheduler

import (
	"context"
	"errors"
	"fmt"

	"crm-dedupe/internal/logger"
	"crm-dedupe/internal/service"

	"github.com/robfig/cron/v3"
)

// Scanner runs a store-wide duplicate scan.
type Scanner interface {
	Scan(ctx context.Context) (*service.ScanReport, error)
}

type Scheduler struct {
	cron     *cron.Cron
	scanner  Scanner
	schedule string
}

func NewScheduler(scanner Scanner, schedule string) *Scheduler {
	cronLogger := cronLogger{}
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	return &Scheduler{
		cron:     c,
		scanner:  scanner,
		schedule: schedule,
	}
}

func (s *Scheduler) Start() error {
	logger.Info().Str("schedule", s.schedule).Msg("starting scheduler")

	if _, err := s.cron.AddFunc(s.schedule, s.runScan); err != nil {
		return fmt.Errorf("invalid duplicate scan schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	logger.Info().Msg("scheduler started")

	return nil
}

// Stop halts the scheduler and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	logger.Info().Msg("stopping scheduler")
	<-s.cron.Stop().Done()
	logger.Info().Msg("scheduler stopped")
}

func (s *Scheduler) runScan() {
	if err := s.RunScanNow(context.Background()); err != nil {
		if errors.Is(err, service.ErrScanInProgress) {
			logger.Info().Msg("skipping scheduled duplicate scan, another scan is running")
			return
		}
		logger.Error().Err(err).Msg("scheduled duplicate scan failed")
	}
}

// RunScanNow triggers the duplicate scan job immediately.
func (s *Scheduler) RunScanNow(ctx context.Context) error {
	report, err := s.scanner.Scan(ctx)
	if err != nil {
		return err
	}
	logger.Info().
		Str("scan_id", report.ID.String()).
		Int("pairs", len(report.Pairs)).
		Msg("scheduled duplicate scan finished")
	return nil
}

// GetScheduledJobs returns information about scheduled jobs
func (s *Scheduler) GetScheduledJobs() []cron.Entry {
	return s.cron.Entries()
}

// cronLogger routes cron's own messages through the application logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
