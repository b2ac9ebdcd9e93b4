package commands

import (
	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/sku"
	"stitchfactory/internal/core/domain/model/unit"
	"stitchfactory/internal/pkg/errs"
	"stitchfactory/internal/pkg/guard"
)

// ErrAddInventoryUnitCommandIsNotConstructed is returned when attempting to
// use a command that was not created through its constructor.
var ErrAddInventoryUnitCommandIsNotConstructed = errs.NewValueIsRequiredError("add inventory unit command")

// AddInventoryUnitCommand represents intake of a single physical garment
// into the pool, either as finished stock or as a unit entering the
// production line.
type AddInventoryUnitCommand struct {
	unitID        kernel.UUID
	variant       sku.SKU
	primaryStatus unit.PrimaryStatus
	location      string

	guard guard.ConstructorGuard
}

// NewAddInventoryUnitCommand creates a command to register an inventory
// unit. The SKU code is parsed up front, and only Stock and Production are
// accepted as intake statuses; units never enter the pool mid-wash.
func NewAddInventoryUnitCommand(
	unitID kernel.UUID,
	skuCode string,
	primaryStatus unit.PrimaryStatus,
	location string,
) (AddInventoryUnitCommand, error) {
	if err := unitID.Validate(); err != nil {
		return AddInventoryUnitCommand{}, err
	}

	variant, err := sku.Parse(skuCode)
	if err != nil {
		return AddInventoryUnitCommand{}, err
	}

	if primaryStatus != unit.Stock && primaryStatus != unit.Production {
		return AddInventoryUnitCommand{}, errs.NewValueIsInvalidError("primaryStatus")
	}

	return AddInventoryUnitCommand{
		unitID:        unitID,
		variant:       variant,
		primaryStatus: primaryStatus,
		location:      location,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// UnitID returns the identifier for the new unit.
func (c AddInventoryUnitCommand) UnitID() kernel.UUID {
	return c.unitID
}

// Variant returns the unit's physical SKU.
func (c AddInventoryUnitCommand) Variant() sku.SKU {
	return c.variant
}

// PrimaryStatus returns where the unit physically enters the pipeline.
func (c AddInventoryUnitCommand) PrimaryStatus() unit.PrimaryStatus {
	return c.primaryStatus
}

// Location returns the warehouse location label, if any.
func (c AddInventoryUnitCommand) Location() string {
	return c.location
}

// Validate checks that the command was properly constructed.
func (c AddInventoryUnitCommand) Validate() error {
	return c.guard.Validate(ErrAddInventoryUnitCommandIsNotConstructed)
}
