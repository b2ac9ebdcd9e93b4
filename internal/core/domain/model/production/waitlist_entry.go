package production

import (
	"errors"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/pkg/errs"
)

var (
	// ErrWaitlistEntryIsNotConstructed is returned when a WaitlistEntry was not
	// created through one of its factories.
	ErrWaitlistEntryIsNotConstructed = errors.New(
		"WaitlistEntry must be created via NewUnitEntry, NewRequestEntry or RestoreWaitlistEntry constructor")
)

// WaitlistEntry binds a line item's reservation to a future-produced unit.
// Positions come from a single monotonically increasing sequence shared
// across all callers; the first position wins the first produced unit.
//
// An entry references exactly one of:
//   - a committed inventory unit (the item softly reserved a scheduled unit)
//   - a production request (demand queued before any unit was scheduled)
type WaitlistEntry struct {
	id         kernel.UUID
	position   int64
	orderID    kernel.UUID
	lineItemID kernel.UUID
	unitID     *kernel.UUID
	requestID  *kernel.UUID

	isConstructed bool
}

// NewUnitEntry creates a waitlist entry binding a line item to a committed,
// not-yet-manufactured inventory unit.
func NewUnitEntry(
	id kernel.UUID,
	position int64,
	orderID, lineItemID, unitID kernel.UUID,
) (*WaitlistEntry, error) {
	e, err := newEntry(id, position, orderID, lineItemID)
	if err != nil {
		return nil, err
	}
	if err = unitID.Validate(); err != nil {
		return nil, err
	}

	e.unitID = &unitID
	return e, nil
}

// NewRequestEntry creates a waitlist entry binding a line item to the
// production request aggregating its demand.
func NewRequestEntry(
	id kernel.UUID,
	position int64,
	orderID, lineItemID, requestID kernel.UUID,
) (*WaitlistEntry, error) {
	e, err := newEntry(id, position, orderID, lineItemID)
	if err != nil {
		return nil, err
	}
	if err = requestID.Validate(); err != nil {
		return nil, err
	}

	e.requestID = &requestID
	return e, nil
}

// RestoreWaitlistEntry reconstructs a waitlist entry from persistence.
func RestoreWaitlistEntry(
	id kernel.UUID,
	position int64,
	orderID, lineItemID kernel.UUID,
	unitID, requestID *kernel.UUID,
) (*WaitlistEntry, error) {
	e, err := newEntry(id, position, orderID, lineItemID)
	if err != nil {
		return nil, err
	}

	if (unitID == nil) == (requestID == nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("waitlist entry",
			errors.New("entry must reference exactly one of unit or production request"))
	}

	e.unitID = unitID
	e.requestID = requestID
	return e, nil
}

func newEntry(id kernel.UUID, position int64, orderID, lineItemID kernel.UUID) (*WaitlistEntry, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		lineItemID.Validate(),
	); err != nil {
		return nil, err
	}

	if position <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("position",
			errors.New("position must be positive"))
	}

	return &WaitlistEntry{
		id:            id,
		position:      position,
		orderID:       orderID,
		lineItemID:    lineItemID,
		isConstructed: true,
	}, nil
}

// Validate ensures the WaitlistEntry was properly constructed.
func (e *WaitlistEntry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrWaitlistEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *WaitlistEntry) ID() kernel.UUID {
	return e.id
}

// Position returns the globally unique arrival position.
func (e *WaitlistEntry) Position() int64 {
	return e.position
}

// OrderID returns the order waiting for the unit.
func (e *WaitlistEntry) OrderID() kernel.UUID {
	return e.orderID
}

// LineItemID returns the line item waiting for the unit.
func (e *WaitlistEntry) LineItemID() kernel.UUID {
	return e.lineItemID
}

// UnitID returns the committed inventory unit, or nil for request-bound entries.
func (e *WaitlistEntry) UnitID() *kernel.UUID {
	return e.unitID
}

// RequestID returns the production request, or nil for unit-bound entries.
func (e *WaitlistEntry) RequestID() *kernel.UUID {
	return e.requestID
}
