// Package finishing contains the finishing/wash request record the allocation
// engine emits when a physical unit is assigned to an order line item. The
// wash-station workflow consumes these records; the engine only produces them.
package finishing

import (
	"errors"
	"time"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/sku"
)

// ErrRequestIsNotConstructed is returned when a Request instance was not
// created through the NewRequest or RestoreRequest factories.
var ErrRequestIsNotConstructed = errors.New(
	"Request must be created via NewRequest or RestoreRequest constructor")

// Request instructs the wash station to finish an assigned unit for its
// order. IsUniversalMatch distinguishes a raw universal unit, which needs
// the full wash-and-trim treatment to reach TargetFinish, from an exact
// match that only passes through the standard finishing step.
type Request struct {
	id               kernel.UUID
	unitID           kernel.UUID
	orderID          kernel.UUID
	lineItemID       kernel.UUID
	isUniversalMatch bool
	targetFinish     sku.Finish
	createdAt        time.Time

	isConstructed bool
}

// NewRequest creates a finishing request for a freshly assigned unit.
func NewRequest(
	id, unitID, orderID, lineItemID kernel.UUID,
	isUniversalMatch bool,
	targetFinish sku.Finish,
) (*Request, error) {
	if err := errors.Join(
		id.Validate(),
		unitID.Validate(),
		orderID.Validate(),
		lineItemID.Validate(),
		targetFinish.Validate(),
	); err != nil {
		return nil, err
	}

	return &Request{
		id:               id,
		unitID:           unitID,
		orderID:          orderID,
		lineItemID:       lineItemID,
		isUniversalMatch: isUniversalMatch,
		targetFinish:     targetFinish,
		createdAt:        time.Now().UTC(),
		isConstructed:    true,
	}, nil
}

// RestoreRequest reconstructs a finishing request from persistence.
func RestoreRequest(
	id, unitID, orderID, lineItemID kernel.UUID,
	isUniversalMatch bool,
	targetFinish sku.Finish,
	createdAt time.Time,
) (*Request, error) {
	r, err := NewRequest(id, unitID, orderID, lineItemID, isUniversalMatch, targetFinish)
	if err != nil {
		return nil, err
	}
	r.createdAt = createdAt
	return r, nil
}

// Validate ensures the Request was properly constructed.
func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

// ID returns the request's unique identifier.
func (r *Request) ID() kernel.UUID {
	return r.id
}

// UnitID returns the assigned unit to be finished.
func (r *Request) UnitID() kernel.UUID {
	return r.unitID
}

// OrderID returns the order the unit is bound to.
func (r *Request) OrderID() kernel.UUID {
	return r.orderID
}

// LineItemID returns the line item the unit is bound to.
func (r *Request) LineItemID() kernel.UUID {
	return r.lineItemID
}

// IsUniversalMatch reports whether the unit is a raw universal substitute
// rather than the exact ordered variant.
func (r *Request) IsUniversalMatch() bool {
	return r.isUniversalMatch
}

// TargetFinish returns the finish the wash station must produce.
func (r *Request) TargetFinish() sku.Finish {
	return r.targetFinish
}

// CreatedAt returns when the request was emitted.
func (r *Request) CreatedAt() time.Time {
	return r.createdAt
}
