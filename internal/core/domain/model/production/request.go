package production

import (
	"errors"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/sku"
	"stitchfactory/internal/pkg/errs"
)

var (
	// ErrRequestIsNotConstructed is returned when a Request instance was not
	// created through the NewRequest or RestoreRequest factories.
	ErrRequestIsNotConstructed = errors.New(
		"Request must be created via NewRequest or RestoreRequest constructor")

	// ErrRequestNotPending is returned when demand is merged into a request
	// that manufacturing already picked up.
	ErrRequestNotPending = errors.New("production request is not pending")

	// ErrNotUniversalSku is returned when a request is opened for a variant
	// that is not a universal manufacturing SKU.
	ErrNotUniversalSku = errors.New("production request requires a universal sku")
)

// Request is a pending manufacturing order for a universal SKU. It aggregates
// outstanding demand: multiple orders queuing for the same manufactured
// variant merge into one request instead of fragmenting the manufacturing run.
//
// Invariant: at most one Pending request exists per universal SKU at a time;
// the persistence layer enforces this with a partial unique index.
type Request struct {
	id           kernel.UUID
	universalSku sku.SKU
	quantity     int
	status       RequestStatus
	orderIDs     []kernel.UUID
	lineItemIDs  []kernel.UUID

	isConstructed bool
}

// NewRequest opens a pending production request with quantity 1 for the
// first order line item demanding the universal SKU.
func NewRequest(id kernel.UUID, universalSku sku.SKU, orderID, lineItemID kernel.UUID) (*Request, error) {
	if err := errors.Join(
		id.Validate(),
		universalSku.Validate(),
		orderID.Validate(),
		lineItemID.Validate(),
	); err != nil {
		return nil, err
	}

	if !universalSku.IsUniversal() {
		return nil, ErrNotUniversalSku
	}

	return &Request{
		id:            id,
		universalSku:  universalSku,
		quantity:      1,
		status:        Pending,
		orderIDs:      []kernel.UUID{orderID},
		lineItemIDs:   []kernel.UUID{lineItemID},
		isConstructed: true,
	}, nil
}

// RestoreRequest reconstructs a production request from persistence.
func RestoreRequest(
	id kernel.UUID,
	universalSku sku.SKU,
	quantity int,
	status RequestStatus,
	orderIDs, lineItemIDs []kernel.UUID,
) (*Request, error) {
	if err := errors.Join(
		id.Validate(),
		universalSku.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			errors.New("quantity must be positive"))
	}

	return &Request{
		id:            id,
		universalSku:  universalSku,
		quantity:      quantity,
		status:        status,
		orderIDs:      orderIDs,
		lineItemIDs:   lineItemIDs,
		isConstructed: true,
	}, nil
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

// UniversalSku returns the universal manufacturing variant to produce.
func (r *Request) UniversalSku() sku.SKU {
	return r.universalSku
}

// Quantity returns the total outstanding demand.
func (r *Request) Quantity() int {
	return r.quantity
}

// Status returns the lifecycle state of the request.
func (r *Request) Status() RequestStatus {
	return r.status
}

// OrderIDs returns the set of orders whose demand is aggregated here.
func (r *Request) OrderIDs() []kernel.UUID {
	return r.orderIDs
}

// LineItemIDs returns the set of line items whose demand is aggregated here.
func (r *Request) LineItemIDs() []kernel.UUID {
	return r.lineItemIDs
}

// Merge folds one more unit of demand into the pending request: the quantity
// grows by one and both id sets record the new origin. Order ids deduplicate
// so an order with several queued line items appears once.
func (r *Request) Merge(orderID, lineItemID kernel.UUID) error {
	if err := errors.Join(r.Validate(), orderID.Validate(), lineItemID.Validate()); err != nil {
		return err
	}

	if r.status != Pending {
		return ErrRequestNotPending
	}

	r.quantity++
	if !containsID(r.orderIDs, orderID) {
		r.orderIDs = append(r.orderIDs, orderID)
	}
	if !containsID(r.lineItemIDs, lineItemID) {
		r.lineItemIDs = append(r.lineItemIDs, lineItemID)
	}
	return nil
}

func containsID(ids []kernel.UUID, id kernel.UUID) bool {
	for _, existing := range ids {
		if existing.IsEqual(id) {
			return true
		}
	}
	return false
}
