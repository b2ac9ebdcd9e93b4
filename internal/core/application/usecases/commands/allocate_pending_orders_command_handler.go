package commands

import (
	"context"
	"errors"
	"fmt"

	"stitchfactory/internal/core/domain/model/kernel"
)

// orderProcessor runs one allocation pass over a single order. Satisfied by
// ProcessOrderCommandHandler.
type orderProcessor interface {
	Handle(ctx context.Context, command ProcessOrderCommand) (ProcessOrderResult, error)
}

// AllocatePendingOrdersCommandHandler sweeps every order with unallocated
// line items and runs an allocation pass on each. A failing order does not
// stop the sweep; failures are joined and reported after all orders ran.
type AllocatePendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	processor  orderProcessor
}

// NewAllocatePendingOrdersCommandHandler creates a handler for allocation
// sweeps. The processor runs the per-order allocation pass, each order in
// its own transactions.
func NewAllocatePendingOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	processor orderProcessor,
) AllocatePendingOrdersCommandHandler {
	return AllocatePendingOrdersCommandHandler{
		uowFactory: uowFactory,
		processor:  processor,
	}
}

// Handle finds all orders with line items pending assignment and processes
// each of them.
func (h AllocatePendingOrdersCommandHandler) Handle(ctx context.Context, command AllocatePendingOrdersCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	orderIDs, err := h.pendingOrderIDs(ctx)
	if err != nil {
		return err
	}

	var sweepErr error
	for _, orderID := range orderIDs {
		cmd, cmdErr := NewProcessOrderCommand(orderID)
		if cmdErr != nil {
			sweepErr = errors.Join(sweepErr, fmt.Errorf("order %s: %w", orderID, cmdErr))
			continue
		}

		result, handleErr := h.processor.Handle(ctx, cmd)
		if handleErr != nil {
			sweepErr = errors.Join(sweepErr, fmt.Errorf("order %s: %w", orderID, handleErr))
			continue
		}
		if !result.Success {
			sweepErr = errors.Join(sweepErr, fmt.Errorf("order %s: some line items failed to allocate", orderID))
		}
	}

	return sweepErr
}

// pendingOrderIDs reads the ids of all orders that still have line items
// pending assignment. Read-only, so the transaction is rolled back.
func (h AllocatePendingOrdersCommandHandler) pendingOrderIDs(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetIDsWithPendingItems(ctx)
}
