package scheduler

import (
	"time"

	"book-loan-backend/internal/jobs"
	"book-loan-backend/internal/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner.
// Schedules are evaluated in the library's configured time zone so a
// "daily" report lines up with the day borrowings are dated in.
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	loc := time.UTC
	if cfg := jobRunner.Config(); cfg != nil {
		loc = cfg.Location()
	}

	c := cron.New(
		cron.WithLocation(loc),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	_, err := s.cron.AddFunc(cfg.ReportOverdueBorrowings, s.jobs.ReportOverdueBorrowings)
	if err != nil {
		logger.Error("Failed to register ReportOverdueBorrowings job", "error", err)
	}

	_, err = s.cron.AddFunc(cfg.ReportActivePenalties, s.jobs.ReportActivePenalties)
	if err != nil {
		logger.Error("Failed to register ReportActivePenalties job", "error", err)
	}

	logger.Info("Cron jobs registered", "count", len(s.cron.Entries()))
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler has jobs registered
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
