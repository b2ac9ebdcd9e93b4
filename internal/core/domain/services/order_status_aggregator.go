package services

import (
	"stitchfactory/internal/core/domain/model/order"
)

// OrderStatusAggregator derives an order's overall status from the
// collective allocation state of its line items. The status is recomputed
// wholesale after every allocation pass rather than patched incrementally,
// so it can never drift from the line items.
//
// Derivation rules:
//   - every resolved item waits on manufacture -> InProduction
//   - at least one item assigned, none waiting on manufacture -> Wash
//   - some assigned, some waiting on manufacture -> Processing
//   - nothing resolved yet -> Placed
//
// Items that are still PendingAssignment (never processed, or their
// allocation failed) do not count toward any bucket; a partially failed
// pass aggregates whatever did succeed.
type OrderStatusAggregator struct{}

// NewOrderStatusAggregator creates a new OrderStatusAggregator instance.
func NewOrderStatusAggregator() OrderStatusAggregator {
	return OrderStatusAggregator{}
}

// Recompute derives the order status from the order's line items and applies
// it to the aggregate.
func (a OrderStatusAggregator) Recompute(o *order.Order) (order.Status, error) {
	if err := o.Validate(); err != nil {
		return 0, err
	}

	var assigned, waitingOnProduction int
	for _, li := range o.LineItems() {
		switch li.Status() {
		case order.Assigned:
			assigned++
		case order.LineItemInProduction, order.PendingProduction:
			waitingOnProduction++
		case order.PendingAssignment, order.UnknownLineItemStatus:
			// unresolved, counts toward neither bucket
		}
	}

	status := a.derive(assigned, waitingOnProduction)
	if err := o.ApplyStatus(status); err != nil {
		return 0, err
	}
	return status, nil
}

func (a OrderStatusAggregator) derive(assigned, waitingOnProduction int) order.Status {
	switch {
	case assigned > 0 && waitingOnProduction == 0:
		return order.Wash
	case assigned == 0 && waitingOnProduction > 0:
		return order.InProduction
	case assigned > 0 && waitingOnProduction > 0:
		return order.Processing
	default:
		return order.Placed
	}
}
