// Package jobs provides scheduled background tasks for the back office.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. FleetReconciliationJob - re-derives vehicle availability from active shipments:
// On Route without an active shipment becomes Available, Available with one becomes
// On Route. Maintenance and Inactive vehicles are left alone.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(reconcileHandler, "0 * * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are six-field cron expressions (seconds first). The default runs once
// a minute. Overlapping runs are skipped.
//
// # Error Handling
//
// Failures are logged and the next scheduled run tries again.
package jobs
