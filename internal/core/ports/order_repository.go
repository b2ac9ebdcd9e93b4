package ports

import (
	"context"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including their line items.
type OrderRepository interface {
	// Add persists a new order aggregate with all of its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order and its line items.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, with its
	// line items in creation order.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetIDsWithPendingItems retrieves the ids of orders that still have at
	// least one line item awaiting allocation. Used by the reallocation job.
	GetIDsWithPendingItems(ctx context.Context) ([]kernel.UUID, error)
}
