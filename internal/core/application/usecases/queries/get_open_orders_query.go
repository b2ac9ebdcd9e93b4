// Package queries contains read-only operations for the fulfillment system.
// Implements the Query side of the CQRS architecture: handlers read the
// store directly with SQL tuned for each view instead of going through the
// domain aggregates.
package queries

import (
	"errors"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/pkg/guard"
)

var (
	ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
		"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
	)
)

// GetOpenOrdersQuery retrieves all orders that are not fully fulfilled yet:
// at least one line item has no physical unit hard-assigned. Used by
// fulfillment staff to monitor outstanding work.
//
// Example:
//
//	query := NewGetOpenOrdersQuery()
//	handler := NewGetOpenOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get open orders: %w", err)
//	}
//
//	for _, o := range orders {
//	    fmt.Printf("order %s (%s): %d items\n", o.ID, o.Status, len(o.LineItems))
//	}
type GetOpenOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOpenOrdersQuery creates a query to retrieve open orders.
// This is a parameterless query.
func NewGetOpenOrdersQuery() GetOpenOrdersQuery {
	return GetOpenOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

// GetOpenOrdersQueryResponse represents one open order with its line items.
type GetOpenOrdersQueryResponse struct {
	ID        kernel.UUID
	Status    string
	LineItems []OpenOrderLineItemResponse
}

// OpenOrderLineItemResponse represents the allocation state of one line item
// in an open order. AssignedUnitID is set for fulfilled items;
// WaitlistPosition is set for items waiting on manufacture.
type OpenOrderLineItemResponse struct {
	ID               kernel.UUID
	Sku              string
	Status           string
	AssignedUnitID   *kernel.UUID
	WaitlistPosition *int64
}
