package jobs

import (
	"time"

	"carrental-client/internal/config"
	"carrental-client/internal/logger"
	"carrental-client/internal/query"
)

// SessionExpiry reports when the signed-in session's access token expires.
// A zero time means the token carries no expiry.
type SessionExpiry interface {
	AccessTokenExpiry() (time.Time, error)
}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	cache   *query.Client
	session SessionExpiry
	config  *config.Config
	now     func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(cache *query.Client, session SessionExpiry, cfg *config.Config) *JobRunner {
	return &JobRunner{
		cache:   cache,
		session: session,
		config:  cfg,
		now:     time.Now,
	}
}

// Config returns the configuration the jobs were built with
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

	logger.Debug("Starting job", "job", jobName)
	jobFunc()
	logger.Debug("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.CollectGarbage()
	jr.CheckSessionExpiry()
}
