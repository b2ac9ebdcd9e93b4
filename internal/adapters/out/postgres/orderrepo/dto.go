// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/order"
	"stitchfactory/internal/core/domain/model/sku"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items are stored in their own table and loaded with the order.
type OrderDTO struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Status    int           `gorm:"index"`
	LineItems []LineItemDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO represents a single line item row. Ordinal preserves the
// creation order of items within their order across round trips.
type LineItemDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID  `gorm:"type:uuid;index"`
	Ordinal        int        `gorm:"type:smallint"`
	Sku            string     `gorm:"type:varchar(20)"`
	Status         int        `gorm:"index"`
	AssignedUnitID *uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for line item entities.
func (LineItemDTO) TableName() string {
	return "line_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]LineItemDTO, 0, len(aggregate.LineItems()))
	for i, li := range aggregate.LineItems() {
		var assignedUnitID *uuid.UUID
		if id := li.AssignedUnitID(); id != nil {
			raw := id.Bytes()
			assignedUnitID = &raw
		}

		items = append(items, LineItemDTO{
			ID:             li.ID().Bytes(),
			OrderID:        aggregate.ID().Bytes(),
			Ordinal:        i,
			Sku:            li.TargetSku().String(),
			Status:         int(li.Status()),
			AssignedUnitID: assignedUnitID,
		})
	}

	return OrderDTO{
		ID:        aggregate.ID().Bytes(),
		Status:    int(aggregate.Status()),
		LineItems: items,
	}
}

// toDomain converts a database DTO to an order aggregate. Line items are
// expected in ordinal order.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*order.LineItem, 0, len(dto.LineItems))
	for _, liDTO := range dto.LineItems {
		li, liErr := lineItemToDomain(liDTO)
		if liErr != nil {
			return nil, liErr
		}
		items = append(items, li)
	}

	return order.RestoreOrder(id, order.Status(dto.Status), items)
}

func lineItemToDomain(dto LineItemDTO) (*order.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	targetSku, err := sku.Parse(dto.Sku)
	if err != nil {
		return nil, err
	}

	var assignedUnitID *kernel.UUID
	if dto.AssignedUnitID != nil {
		unitID, unitErr := kernel.UUIDFromBytes((*dto.AssignedUnitID)[:])
		if unitErr != nil {
			return nil, unitErr
		}
		assignedUnitID = &unitID
	}

	return order.RestoreLineItem(id, targetSku, order.LineItemStatus(dto.Status), assignedUnitID)
}
