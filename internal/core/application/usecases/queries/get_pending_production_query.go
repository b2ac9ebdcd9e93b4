package queries

import (
	"errors"
	"time"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/pkg/guard"
)

var (
	ErrGetPendingProductionQueryIsNotConstructed = errors.New(
		"GetPendingProductionQuery must be created via NewGetPendingProductionQuery constructor",
	)
)

// GetPendingProductionQuery retrieves all pending production requests with
// their aggregated demand. Manufacturing planning reads this view to decide
// batch sizes.
//
// Example:
//
//	query := NewGetPendingProductionQuery()
//	handler := NewGetPendingProductionQueryHandler(db)
//
//	requests, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get pending production: %w", err)
//	}
//
//	for _, r := range requests {
//	    fmt.Printf("%s: %d units for %d orders\n", r.Sku, r.Quantity, r.OrderCount)
//	}
type GetPendingProductionQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingProductionQuery creates a query to retrieve pending
// production requests. This is a parameterless query.
func NewGetPendingProductionQuery() GetPendingProductionQuery {
	return GetPendingProductionQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingProductionQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingProductionQueryIsNotConstructed)
}

// GetPendingProductionQueryResponse represents one pending production
// request. Quantity counts garments to manufacture; OrderCount counts the
// distinct orders whose demand merged into the request.
type GetPendingProductionQueryResponse struct {
	ID         kernel.UUID
	Sku        string
	Quantity   int
	OrderCount int
	CreatedAt  time.Time
}
