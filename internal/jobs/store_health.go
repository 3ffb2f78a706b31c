// File: internal/jobs/store_health.go
package jobs

import (
	"context"
	"sync"
	"time"

	"collab_hub_backend/internal/config"
	"collab_hub_backend/internal/platform/database"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const probeTimeout = 5 * time.Second

// StoreProbe reports whether the relational store answers.
type StoreProbe func(ctx context.Context) error

// NewStoreProbe pings the process-wide database handle.
func NewStoreProbe(db *gorm.DB) StoreProbe {
	return func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}
}

// HealthStatus is the outcome of the latest store probe.
type HealthStatus struct {
	Healthy   bool      `json:"healthy"`
	CheckedAt time.Time `json:"checkedAt"`
	Error     string    `json:"error,omitempty"`
}

// StoreHealthJob probes the store on HEALTH_CHECK_SCHEDULE and keeps the
// latest result for the /health endpoint.
type StoreHealthJob struct {
	probe         StoreProbe
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron

	mu        sync.RWMutex
	last      HealthStatus
	scheduled bool
}

// NewStoreHealthJob creates a new StoreHealthJob.
func NewStoreHealthJob(probe StoreProbe, logger *zap.Logger, cfg *config.Config) *StoreHealthJob {
	scheduler := cron.New(
		cron.WithLogger(NewCronLogger(logger.Named("cron"))),
		cron.WithChain(cron.SkipIfStillRunning(NewCronLogger(logger.Named("cron")))),
	)
	return &StoreHealthJob{
		probe:         probe,
		logger:        logger.Named("StoreHealthJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart runs a first probe, then schedules the job.
func (j *StoreHealthJob) SetupAndStart() error {
	j.runJob()

	jobSpec := j.cfg.HealthCheckSchedule
	if jobSpec == "" {
		j.logger.Warn("Store health job schedule not defined (HEALTH_CHECK_SCHEDULE). /health will probe on demand.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule store health job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.mu.Lock()
	j.scheduled = true
	j.mu.Unlock()

	j.logger.Info("Store health job scheduled", zap.String("spec", jobSpec), zap.Int("jobID", int(jobID)))
	j.cronScheduler.Start()
	return nil
}

func (j *StoreHealthJob) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	j.Check(ctx)
}

// Check probes the store now and records the result. State changes are
// logged; steady state is not.
func (j *StoreHealthJob) Check(ctx context.Context) HealthStatus {
	err := j.probe(ctx)
	status := HealthStatus{Healthy: err == nil, CheckedAt: time.Now().UTC()}
	if err != nil {
		status.Error = err.Error()
	}

	j.mu.Lock()
	previous := j.last
	j.last = status
	j.mu.Unlock()

	switch {
	case !status.Healthy && (previous.Healthy || previous.CheckedAt.IsZero()):
		j.logger.Error("Store is unreachable", zap.Error(err))
	case status.Healthy && !previous.Healthy && !previous.CheckedAt.IsZero():
		j.logger.Info("Store is reachable again")
	}
	return status
}

// Status returns the latest result, probing on demand when the job is not
// scheduled.
func (j *StoreHealthJob) Status(ctx context.Context) HealthStatus {
	j.mu.RLock()
	scheduled, last := j.scheduled, j.last
	j.mu.RUnlock()

	if scheduled && !last.CheckedAt.IsZero() {
		return last
	}
	return j.Check(ctx)
}

// Stop gracefully stops the cron scheduler.
func (j *StoreHealthJob) Stop() {
	j.logger.Info("Stopping store health job scheduler...")
	stopCtx := j.cronScheduler.Stop()
	select {
	case <-stopCtx.Done():
		j.logger.Info("Store health job scheduler stopped gracefully.")
	case <-time.After(10 * time.Second):
		j.logger.Warn("Store health job scheduler stop timed out.")
	}
}
