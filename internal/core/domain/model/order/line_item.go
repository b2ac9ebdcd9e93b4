package order

import (
	"errors"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/sku"
	"stitchfactory/internal/pkg/errs"
)

// ErrLineItemIsNotConstructed is returned when a LineItem instance was not
// created through the NewLineItem or RestoreLineItem factories.
var ErrLineItemIsNotConstructed = errors.New(
	"LineItem must be created via NewLineItem or RestoreLineItem constructor")

// LineItem is one requested variant within an order. Every line item asks
// for exactly one physical unit; a requested quantity above one is expanded
// into that many line items at order intake.
//
// Invariants:
//   - status is Assigned if and only if assignedUnitID is set
//   - an assigned item references exactly one inventory unit
type LineItem struct {
	id             kernel.UUID
	targetSku      sku.SKU
	status         LineItemStatus
	assignedUnitID *kernel.UUID

	isConstructed bool
}

// NewLineItem creates a line item awaiting allocation for the given variant.
func NewLineItem(id kernel.UUID, targetSku sku.SKU) (*LineItem, error) {
	if err := errors.Join(id.Validate(), targetSku.Validate()); err != nil {
		return nil, err
	}

	return &LineItem{
		id:            id,
		targetSku:     targetSku,
		status:        PendingAssignment,
		isConstructed: true,
	}, nil
}

// RestoreLineItem reconstructs a line item from persistence.
func RestoreLineItem(
	id kernel.UUID,
	targetSku sku.SKU,
	status LineItemStatus,
	assignedUnitID *kernel.UUID,
) (*LineItem, error) {
	if err := errors.Join(id.Validate(), targetSku.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	if (status == Assigned) != (assignedUnitID != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("assignedUnitID",
			errors.New("assigned unit must be set exactly when status is Assigned"))
	}
	if assignedUnitID != nil {
		if err := assignedUnitID.Validate(); err != nil {
			return nil, err
		}
	}

	return &LineItem{
		id:             id,
		targetSku:      targetSku,
		status:         status,
		assignedUnitID: assignedUnitID,
		isConstructed:  true,
	}, nil
}

// Validate ensures the LineItem was properly constructed.
func (li *LineItem) Validate() error {
	if li == nil || !li.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

// ID returns the line item's unique identifier.
func (li *LineItem) ID() kernel.UUID {
	return li.id
}

// TargetSku returns the requested variant.
func (li *LineItem) TargetSku() sku.SKU {
	return li.targetSku
}

// Status returns the allocation state of the line item.
func (li *LineItem) Status() LineItemStatus {
	return li.status
}

// AssignedUnitID returns the inventory unit bound to this item,
// or nil while unassigned.
func (li *LineItem) AssignedUnitID() *kernel.UUID {
	return li.assignedUnitID
}

// IsSettled reports whether an allocation pass already resolved this item.
// Settled items are skipped on reprocessing, which makes order processing
// idempotent: no re-matching and no duplicate production demand.
func (li *LineItem) IsSettled() bool {
	return li.status != PendingAssignment
}

// AssignUnit hard-binds a physical unit to the item.
func (li *LineItem) AssignUnit(unitID kernel.UUID) error {
	if err := errors.Join(li.Validate(), unitID.Validate()); err != nil {
		return err
	}

	newStatus, err := li.status.Assign()
	if err != nil {
		return err
	}

	li.status = newStatus
	li.assignedUnitID = &unitID
	return nil
}

// MarkInProduction records that the item holds a soft reservation on a
// not-yet-manufactured unit. The unit reference lives on the waitlist entry,
// not on the item, so assignedUnitID stays empty.
func (li *LineItem) MarkInProduction() error {
	if err := li.Validate(); err != nil {
		return err
	}

	newStatus, err := li.status.MarkInProduction()
	if err != nil {
		return err
	}

	li.status = newStatus
	return nil
}

// MarkPendingProduction records that demand for the item was queued with a
// production request.
func (li *LineItem) MarkPendingProduction() error {
	if err := li.Validate(); err != nil {
		return err
	}

	newStatus, err := li.status.MarkPendingProduction()
	if err != nil {
		return err
	}

	li.status = newStatus
	return nil
}
