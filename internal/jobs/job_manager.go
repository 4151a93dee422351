package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	fleetReconciliationJob *FleetReconciliationJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(reconciler FleetReconciler, reconcileSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		fleetReconciliationJob: NewFleetReconciliationJob(reconciler, reconcileSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.fleetReconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start fleet reconciliation job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.fleetReconciliationJob.Stop()
}
