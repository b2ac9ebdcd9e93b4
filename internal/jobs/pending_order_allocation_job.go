package jobs

import (
	"context"
	"log/slog"

	"stitchfactory/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PendingOrderAllocationJob periodically re-runs allocation over orders that
// still have unallocated line items. It picks up orders whose earlier pass
// partially failed and orders that can now be satisfied by newly arrived
// stock or production capacity.
type PendingOrderAllocationJob struct {
	handler commands.AllocatePendingOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPendingOrderAllocationJob creates a job that sweeps pending orders on a
// fixed schedule.
func NewPendingOrderAllocationJob(
	handler commands.AllocatePendingOrdersCommandHandler,
	logger *slog.Logger,
) *PendingOrderAllocationJob {
	return &PendingOrderAllocationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "pending_order_allocation_job"),
	}
}

// Start begins the allocation sweep, running every ten seconds.
func (j *PendingOrderAllocationJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewAllocatePendingOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Pending order allocation sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending order allocation job started (running every ten seconds)")
	return nil
}

// Stop stops the allocation sweep.
func (j *PendingOrderAllocationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pending order allocation job stopped")
}
