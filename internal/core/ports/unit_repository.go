// Package ports defines repository and unit-of-work interfaces for the
// fulfillment domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"errors"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/sku"
	"stitchfactory/internal/core/domain/model/unit"
)

// ErrUnitAlreadyReserved is returned by guarded status updates when another
// transaction reserved the unit first. It marks a transient race: callers
// re-run candidate selection excluding the stale unit instead of surfacing
// the error.
var ErrUnitAlreadyReserved = errors.New("unit already reserved")

// UnitRepository defines the persistence contract for inventory unit aggregates.
type UnitRepository interface {
	// Add persists a new inventory unit aggregate to storage.
	Add(ctx context.Context, aggregate *unit.InventoryUnit) error

	// Update persists changes to an existing unit without a status guard.
	// Reservation transitions must go through UpdateIfUncommitted instead.
	Update(ctx context.Context, aggregate *unit.InventoryUnit) error

	// UpdateIfUncommitted persists a reservation transition guarded by the
	// precondition that the stored secondary status is still Uncommitted.
	// If another transaction claimed the unit first the guarded update
	// affects zero rows and ErrUnitAlreadyReserved is returned; nothing is
	// written in that case.
	UpdateIfUncommitted(ctx context.Context, aggregate *unit.InventoryUnit) error

	// Get retrieves a unit aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*unit.InventoryUnit, error)

	// GetUncommittedBySku retrieves all uncommitted stock or production units
	// whose SKU exactly equals the target, ordered oldest first.
	GetUncommittedBySku(ctx context.Context, target sku.SKU) ([]*unit.InventoryUnit, error)

	// GetUncommittedUniversal retrieves all uncommitted stock or production
	// units matching the style/waist/shape prefix with the given universal
	// finish and a length of at least minLength, ordered by length then age.
	GetUncommittedUniversal(
		ctx context.Context,
		style string,
		waist int,
		shape string,
		finish sku.Finish,
		minLength int,
	) ([]*unit.InventoryUnit, error)
}
