package commands

import (
	"context"
	"errors"

	"stitchfactory/internal/core/domain/model/order"
	"stitchfactory/internal/pkg/errs"
)

// ErrOrderAlreadyExists is returned when registering an order whose ID is
// already known. Intake is idempotent for retried submissions.
var ErrOrderAlreadyExists = errors.New("order already exists")

// CreateOrderCommandHandler registers new customer orders.
//
// Each requested garment becomes its own line item: an item spec with
// quantity three expands into three independent line items for the same
// variant, each allocated and tracked separately.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{uowFactory: uowFactory}
}

// Handle registers the order in PendingAssignment state for every line item.
// Allocation happens in a separate pass, either on request or by the
// background job picking up pending orders.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	_, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err == nil {
		return ErrOrderAlreadyExists
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	o, err := order.NewOrder(command.OrderID(), command.Items())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
