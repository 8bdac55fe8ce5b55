package jobs

import (
	"book-loan-backend/internal/config"
	"book-loan-backend/internal/logger"
	"book-loan-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	reports service.ReportService
	config  *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(reports service.ReportService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		reports: reports,
		config:  cfg,
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every report job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.ReportOverdueBorrowings()
	jr.ReportActivePenalties()
}
