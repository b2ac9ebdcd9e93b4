package commands

import (
	"stitchfactory/internal/core/domain/model/kernel"
)

// AllocationOutcome is the tagged result of allocating one order line item.
// It is a sealed variant: the concrete types are DirectAssignment,
// UniversalAssignment, QueuedForProduction and Failed, so callers branching
// with a type switch get exhaustive-match safety instead of comparing
// free-form action strings.
type AllocationOutcome interface {
	isAllocationOutcome()
}

// DirectAssignment means a unit exactly matching the requested variant was
// reserved. For a stock unit the reservation is hard (assigned); for a unit
// still in production it is soft (committed plus a waitlist entry).
type DirectAssignment struct {
	UnitID kernel.UUID
}

func (DirectAssignment) isAllocationOutcome() {}

// UniversalAssignment means a raw universal unit substituting for the
// requested variant was reserved, hard or soft as with DirectAssignment.
type UniversalAssignment struct {
	UnitID kernel.UUID
}

func (UniversalAssignment) isAllocationOutcome() {}

// QueuedForProduction means no unit could satisfy the item and its demand
// was queued with the pending production request for its universal SKU.
type QueuedForProduction struct{}

func (QueuedForProduction) isAllocationOutcome() {}

// Failed means the item's allocation did not complete; nothing was written
// for this item. Err carries the cause.
type Failed struct {
	Err error
}

func (Failed) isAllocationOutcome() {}

// LineItemResult pairs a line item with its allocation outcome.
type LineItemResult struct {
	LineItemID kernel.UUID
	Outcome    AllocationOutcome
}
