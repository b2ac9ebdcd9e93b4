package commands

import (
	"errors"

	"stitchfactory/internal/pkg/guard"
)

var ErrAllocatePendingOrdersCommandIsNotConstructed = errors.New(
	"AllocatePendingOrdersCommand must be created via NewAllocatePendingOrdersCommand constructor",
)

// AllocatePendingOrdersCommand triggers an allocation sweep over every order
// that still has line items waiting for assignment. Each such order gets a
// full allocation pass, exactly as if it had been processed individually.
//
// Example:
//
//	cmd := NewAllocatePendingOrdersCommand()
//	handler := NewAllocatePendingOrdersCommandHandler(uowFactory, processHandler)
//
//	// Run periodically to pick up orders left behind by failed passes
//	// and newly arrived stock.
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Allocation sweep failed: %v", err)
//	}
type AllocatePendingOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewAllocatePendingOrdersCommand creates a command to sweep all orders with
// unallocated line items. This is a parameterless command.
func NewAllocatePendingOrdersCommand() AllocatePendingOrdersCommand {
	return AllocatePendingOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c AllocatePendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAllocatePendingOrdersCommandIsNotConstructed)
}
