package commands

import (
	"errors"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/order"
	"stitchfactory/internal/pkg/guard"
)

var ErrProcessOrderCommandIsNotConstructed = errors.New(
	"ProcessOrderCommand must be created via NewProcessOrderCommand constructor",
)

// ProcessOrderCommand triggers an allocation pass over every line item of an
// order: each item either receives an existing physical unit (exact or
// universal match), softly reserves a unit still in production, or queues
// demand for manufacture.
//
// Processing is idempotent: line items that an earlier pass already resolved
// are skipped, so re-running the command on a fully processed order changes
// nothing and creates no duplicate production demand.
//
// Example:
//
//	cmd, _ := NewProcessOrderCommand(orderID)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("Order processing aborted: %v", err)
//	    return
//	}
//	for _, r := range result.LineItemResults {
//	    switch outcome := r.Outcome.(type) {
//	    case DirectAssignment:
//	        log.Printf("item %s got unit %s", r.LineItemID, outcome.UnitID)
//	    case QueuedForProduction:
//	        log.Printf("item %s queued for manufacture", r.LineItemID)
//	    }
//	}
type ProcessOrderCommand struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewProcessOrderCommand creates a command to run an allocation pass over
// the given order.
func NewProcessOrderCommand(orderID kernel.UUID) (ProcessOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ProcessOrderCommand{}, err
	}

	return ProcessOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order to process.
func (c ProcessOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Validate ensures the command was created through the constructor.
func (c ProcessOrderCommand) Validate() error {
	return c.guard.Validate(ErrProcessOrderCommandIsNotConstructed)
}

// ProcessOrderResult is the aggregate outcome of an allocation pass.
// Success is false when any line item failed; successful allocations from
// the same pass are kept regardless, and the order status reflects whatever
// did succeed.
type ProcessOrderResult struct {
	Success         bool
	LineItemResults []LineItemResult
	OrderStatus     order.Status
}
