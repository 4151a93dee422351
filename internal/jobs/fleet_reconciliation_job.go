package jobs

import (
	"context"
	"log/slog"

	"logistics/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultReconcileSchedule runs the reconciliation at the start of every minute.
const DefaultReconcileSchedule = "0 * * * * *"

// FleetReconciler is implemented by commands.ReconcileFleetCommandHandler.
type FleetReconciler interface {
	Handle(ctx context.Context, command commands.ReconcileFleetCommand) (int, error)
}

// FleetReconciliationJob periodically re-derives vehicle availability from
// active shipments.
type FleetReconciliationJob struct {
	handler  FleetReconciler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewFleetReconciliationJob creates the job. schedule is a six-field cron
// expression (with seconds); empty means DefaultReconcileSchedule.
func NewFleetReconciliationJob(handler FleetReconciler, schedule string, logger *slog.Logger) *FleetReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconcileSchedule
	}
	return &FleetReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "fleet_reconciliation_job"),
	}
}

// Start registers the schedule and starts the scheduler.
func (j *FleetReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Fleet reconciliation job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single reconciliation and logs its outcome.
func (j *FleetReconciliationJob) RunOnce(ctx context.Context) {
	changed, err := j.handler.Handle(ctx, commands.NewReconcileFleetCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Fleet reconciliation job failed", "error", err)
		return
	}
	if changed > 0 {
		j.logger.InfoContext(ctx, "Fleet reconciled", "vehicles_changed", changed)
	}
}

// Stop stops the scheduler and waits for a running reconciliation to finish.
func (j *FleetReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Fleet reconciliation job stopped")
}
