package queries

import (
	"context"
	"database/sql"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOpenOrdersQueryHandler retrieves open orders from the database.
// An order is open while any of its line items lacks a hard-assigned unit.
type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenOrdersQueryHandler creates a handler for open order queries.
func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

// Handle executes the query. Line items carry their waitlist position when
// one exists, so the view exposes where production-side items stand in the
// queue. Results are grouped per order, ordered by order id and item
// creation order.
func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]GetOpenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			li.id,
			li.sku,
			li.status,
			li.assigned_unit_id,
			we.position
		FROM orders o
		JOIN line_items li ON li.order_id = o.id
		LEFT JOIN waitlist_entries we ON we.line_item_id = li.id
		WHERE o.id IN (
			SELECT order_id FROM line_items WHERE status != ?
		)
		ORDER BY o.id, li.ordinal
	`, int(order.Assigned)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOpenOrdersQueryResponse, 0)
	var current *GetOpenOrdersQueryResponse

	for rows.Next() {
		var (
			orderID        uuid.UUID
			orderStatus    int
			lineItemID     uuid.UUID
			skuCode        string
			lineItemStatus int
			assignedUnitID *uuid.UUID
			position       sql.NullInt64
		)

		err = rows.Scan(&orderID, &orderStatus, &lineItemID, &skuCode, &lineItemStatus, &assignedUnitID, &position)
		if err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}

		if current == nil || !current.ID.IsEqual(id) {
			orders = append(orders, GetOpenOrdersQueryResponse{
				ID:     id,
				Status: order.Status(orderStatus).String(),
			})
			current = &orders[len(orders)-1]
		}

		item, itemErr := buildLineItemResponse(lineItemID, skuCode, lineItemStatus, assignedUnitID, position)
		if itemErr != nil {
			return nil, itemErr
		}
		current.LineItems = append(current.LineItems, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func buildLineItemResponse(
	rawID uuid.UUID,
	skuCode string,
	status int,
	rawAssignedUnitID *uuid.UUID,
	position sql.NullInt64,
) (OpenOrderLineItemResponse, error) {
	id, err := kernel.UUIDFromBytes(rawID[:])
	if err != nil {
		return OpenOrderLineItemResponse{}, err
	}

	var assignedUnitID *kernel.UUID
	if rawAssignedUnitID != nil {
		unitID, unitErr := kernel.UUIDFromBytes((*rawAssignedUnitID)[:])
		if unitErr != nil {
			return OpenOrderLineItemResponse{}, unitErr
		}
		assignedUnitID = &unitID
	}

	var waitlistPosition *int64
	if position.Valid {
		waitlistPosition = &position.Int64
	}

	return OpenOrderLineItemResponse{
		ID:               id,
		Sku:              skuCode,
		Status:           order.LineItemStatus(status).String(),
		AssignedUnitID:   assignedUnitID,
		WaitlistPosition: waitlistPosition,
	}, nil
}
