// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the allocation engine.
//
// # Available Jobs
//
// 1. PendingOrderAllocationJob - Runs every ten seconds to re-allocate orders
// that still have line items waiting for a unit
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(allocatePendingOrdersHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The allocation sweep uses the cron expression "*/10 * * * * *": every ten
// seconds is frequent enough to pick up new stock quickly without hammering
// the store with full-table sweeps.
//
// # Error Handling
//
// A failing order inside a sweep does not abort the sweep; the handler joins
// per-order failures into one error which the job logs. The next run retries
// the failed orders, which is safe because allocation passes are idempotent.
package jobs
