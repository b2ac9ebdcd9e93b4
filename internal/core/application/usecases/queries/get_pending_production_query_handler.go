package queries

import (
	"context"
	"time"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/production"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingProductionQueryHandler retrieves pending production requests
// from the database, oldest first.
type GetPendingProductionQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingProductionQueryHandler creates a handler for pending
// production queries.
func NewGetPendingProductionQueryHandler(db *gorm.DB) GetPendingProductionQueryHandler {
	return GetPendingProductionQueryHandler{db: db}
}

// Handle executes the query to retrieve all pending production requests.
func (h GetPendingProductionQueryHandler) Handle(
	ctx context.Context,
	query GetPendingProductionQuery,
) ([]GetPendingProductionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			sku,
			quantity,
			cardinality(order_ids),
			created_at
		FROM production_requests
		WHERE status = ?
		ORDER BY created_at
	`, int(production.Pending)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]GetPendingProductionQueryResponse, 0)
	for rows.Next() {
		var (
			rawID      uuid.UUID
			skuCode    string
			quantity   int
			orderCount int
			createdAt  time.Time
		)

		if err = rows.Scan(&rawID, &skuCode, &quantity, &orderCount, &createdAt); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(rawID[:])
		if idErr != nil {
			return nil, idErr
		}

		requests = append(requests, GetPendingProductionQueryResponse{
			ID:         id,
			Sku:        skuCode,
			Quantity:   quantity,
			OrderCount: orderCount,
			CreatedAt:  createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
