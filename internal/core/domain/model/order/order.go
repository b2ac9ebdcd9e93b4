package order

import (
	"errors"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/sku"
	"stitchfactory/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factories.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrLineItemNotFound is returned when an order does not contain the
	// requested line item.
	ErrLineItemNotFound = errors.New("line item not found")
)

// ItemSpec describes one requested variant with a quantity, as order intake
// receives it before quantity expansion.
type ItemSpec struct {
	Sku      sku.SKU
	Quantity int
}

// Order is the aggregate root for a customer order. It owns its line items;
// the order status is derived from their collective allocation state and is
// only written by the status aggregator.
type Order struct {
	id        kernel.UUID
	lineItems []*LineItem
	status    Status

	isConstructed bool
}

// NewOrder creates an order from item specifications, expanding each
// requested quantity N into N single-unit line items. The allocation engine
// then treats every line item as an independent single-unit request.
func NewOrder(id kernel.UUID, items []ItemSpec) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	o := &Order{
		id:            id,
		status:        Placed,
		isConstructed: true,
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
				errors.New("quantity must be positive"))
		}
		for range item.Quantity {
			lineItem, err := NewLineItem(kernel.NewUUID(), item.Sku)
			if err != nil {
				return nil, err
			}
			o.lineItems = append(o.lineItems, lineItem)
		}
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence.
func RestoreOrder(id kernel.UUID, status Status, lineItems []*LineItem) (*Order, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if len(lineItems) == 0 {
		return nil, errs.NewValueIsRequiredError("lineItems")
	}
	for _, li := range lineItems {
		if err := li.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:            id,
		lineItems:     lineItems,
		status:        status,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Status returns the current derived status of the order.
func (o *Order) Status() Status {
	return o.status
}

// LineItems returns the order's line items in creation order.
func (o *Order) LineItems() []*LineItem {
	return o.lineItems
}

// LineItem returns the line item with the given id, or ErrLineItemNotFound.
func (o *Order) LineItem(id kernel.UUID) (*LineItem, error) {
	for _, li := range o.lineItems {
		if li.ID().IsEqual(id) {
			return li, nil
		}
	}
	return nil, ErrLineItemNotFound
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ApplyStatus writes a derived status onto the order. Only the status
// aggregator calls this; it recomputes the status wholesale from the line
// items after every allocation pass instead of patching it incrementally.
func (o *Order) ApplyStatus(status Status) error {
	if err := errors.Join(o.Validate(), status.Validate()); err != nil {
		return err
	}
	o.status = status
	return nil
}
