// Package unitrepo provides data transfer objects and mapping functions for
// inventory unit persistence, including the guarded reservation update the
// allocation engine relies on under concurrency.
package unitrepo

import (
	"time"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/sku"
	"stitchfactory/internal/core/domain/model/unit"

	"github.com/google/uuid"
)

// InventoryUnitDTO represents the database structure for persisting inventory
// units. The SKU is stored decomposed so candidate queries can filter on
// individual attributes, in particular the length range scan for universal
// substitution.
type InventoryUnitDTO struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Sku             SkuDTO        `gorm:"embedded;embeddedPrefix:sku_"`
	PrimaryStatus   int           `gorm:"index:idx_units_pool"`
	SecondaryStatus int           `gorm:"index:idx_units_pool"`
	Location        string        `gorm:"type:varchar(16)"`
	Commitment      CommitmentDTO `gorm:"embedded;embeddedPrefix:committed_"`
	CreatedAt       time.Time
}

// TableName specifies the database table name for inventory unit entities.
func (InventoryUnitDTO) TableName() string {
	return "inventory_units"
}

// SkuDTO represents the embedded SKU attributes within the unit table.
type SkuDTO struct {
	Style  string `gorm:"type:varchar(3);index:idx_units_variant"`
	Waist  int    `gorm:"type:smallint;index:idx_units_variant"`
	Shape  string `gorm:"type:varchar(3);index:idx_units_variant"`
	Length int    `gorm:"type:smallint;index:idx_units_variant"`
	Finish string `gorm:"type:varchar(3);index:idx_units_variant"`
}

// CommitmentDTO represents the embedded reservation record of a reserved
// unit. All columns are null for uncommitted units.
type CommitmentDTO struct {
	OrderID          *uuid.UUID `gorm:"type:uuid"`
	LineItemID       *uuid.UUID `gorm:"type:uuid"`
	At               *time.Time
	WaitlistPosition *int64
}

// fromDomain converts an inventory unit aggregate to its database representation.
func fromDomain(aggregate *unit.InventoryUnit) InventoryUnitDTO {
	var commitment CommitmentDTO
	if c := aggregate.Commitment(); c != nil {
		orderID := c.OrderID().Bytes()
		lineItemID := c.LineItemID().Bytes()
		at := c.CommittedAt()

		commitment = CommitmentDTO{
			OrderID:          &orderID,
			LineItemID:       &lineItemID,
			At:               &at,
			WaitlistPosition: c.WaitlistPosition(),
		}
	}

	variant := aggregate.SKU()
	return InventoryUnitDTO{
		ID: aggregate.ID().Bytes(),
		Sku: SkuDTO{
			Style:  variant.Style(),
			Waist:  variant.Waist(),
			Shape:  variant.Shape(),
			Length: variant.Length(),
			Finish: string(variant.Finish()),
		},
		PrimaryStatus:   int(aggregate.PrimaryStatus()),
		SecondaryStatus: int(aggregate.SecondaryStatus()),
		Location:        aggregate.Location(),
		Commitment:      commitment,
		CreatedAt:       aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to an inventory unit aggregate.
func toDomain(dto InventoryUnitDTO) (*unit.InventoryUnit, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	variant, err := sku.NewSKU(dto.Sku.Style, dto.Sku.Waist, dto.Sku.Shape, dto.Sku.Length, sku.Finish(dto.Sku.Finish))
	if err != nil {
		return nil, err
	}

	commitment, err := commitmentToDomain(dto.Commitment)
	if err != nil {
		return nil, err
	}

	return unit.RestoreInventoryUnit(
		id,
		variant,
		unit.PrimaryStatus(dto.PrimaryStatus),
		unit.SecondaryStatus(dto.SecondaryStatus),
		dto.Location,
		commitment,
		dto.CreatedAt,
	)
}

func commitmentToDomain(dto CommitmentDTO) (*unit.Commitment, error) {
	if dto.OrderID == nil {
		return nil, nil
	}

	orderID, err := kernel.UUIDFromBytes((*dto.OrderID)[:])
	if err != nil {
		return nil, err
	}
	lineItemID, err := kernel.UUIDFromBytes((*dto.LineItemID)[:])
	if err != nil {
		return nil, err
	}

	var committedAt time.Time
	if dto.At != nil {
		committedAt = *dto.At
	}

	var commitment unit.Commitment
	if dto.WaitlistPosition != nil {
		commitment, err = unit.NewWaitlistedCommitment(orderID, lineItemID, committedAt, *dto.WaitlistPosition)
	} else {
		commitment, err = unit.NewCommitment(orderID, lineItemID, committedAt)
	}
	if err != nil {
		return nil, err
	}

	return &commitment, nil
}
