package commands

import (
	"context"

	"stitchfactory/internal/core/domain/model/unit"
)

// AddInventoryUnitCommandHandler registers physical garments in the
// uncommitted pool where the allocation pass can find them.
type AddInventoryUnitCommandHandler struct {
	uowFactory UnitUoWFactory
}

// NewAddInventoryUnitCommandHandler creates a handler for inventory intake.
func NewAddInventoryUnitCommandHandler(uowFactory UnitUoWFactory) AddInventoryUnitCommandHandler {
	return AddInventoryUnitCommandHandler{uowFactory: uowFactory}
}

// Handle registers the unit as uncommitted stock or production work in
// progress.
func (h AddInventoryUnitCommandHandler) Handle(ctx context.Context, command AddInventoryUnitCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	u, err := unit.NewInventoryUnit(
		command.UnitID(),
		command.Variant(),
		command.PrimaryStatus(),
		command.Location(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UnitRepository().Add(ctx, u); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
