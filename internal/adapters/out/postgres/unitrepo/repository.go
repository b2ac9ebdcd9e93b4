package unitrepo

import (
	"context"
	"errors"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/sku"
	"stitchfactory/internal/core/domain/model/unit"
	"stitchfactory/internal/core/ports"
	"stitchfactory/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUnitRepository implements UnitRepository using GORM.
type GormUnitRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormUnitRepository creates a new GORM inventory unit repository.
func NewGormUnitRepository(db *gorm.DB, tracker aggregateTracker) *GormUnitRepository {
	return &GormUnitRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new inventory unit to the database.
func (r *GormUnitRepository) Add(ctx context.Context, aggregate *unit.InventoryUnit) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing unit to the database without a status guard.
func (r *GormUnitRepository) Update(ctx context.Context, aggregate *unit.InventoryUnit) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	columns := reservationColumns(dto)
	columns["primary_status"] = dto.PrimaryStatus
	columns["location"] = dto.Location

	result := r.db.WithContext(ctx).Model(&InventoryUnitDTO{}).
		Where("id = ?", dto.ID).
		Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateIfUncommitted persists a reservation transition only when the stored
// row is still uncommitted. The WHERE guard makes the last read-check-write
// step atomic: two transactions racing for the same unit both pass candidate
// selection, but the second guarded update matches zero rows and reports
// ErrUnitAlreadyReserved instead of silently double-booking the unit.
func (r *GormUnitRepository) UpdateIfUncommitted(ctx context.Context, aggregate *unit.InventoryUnit) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&InventoryUnitDTO{}).
		Where("id = ? AND secondary_status = ?", dto.ID, int(unit.Uncommitted)).
		Updates(reservationColumns(dto))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrUnitAlreadyReserved
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// reservationColumns lists the columns a reservation transition touches.
// Explicit map form so nil commitment columns overwrite on unguarded updates.
func reservationColumns(dto InventoryUnitDTO) map[string]any {
	return map[string]any{
		"secondary_status":            dto.SecondaryStatus,
		"committed_order_id":          dto.Commitment.OrderID,
		"committed_line_item_id":      dto.Commitment.LineItemID,
		"committed_at":                dto.Commitment.At,
		"committed_waitlist_position": dto.Commitment.WaitlistPosition,
	}
}

// Get retrieves a unit by ID.
func (r *GormUnitRepository) Get(ctx context.Context, id kernel.UUID) (*unit.InventoryUnit, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto InventoryUnitDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory unit", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetUncommittedBySku retrieves all uncommitted stock or production units
// whose SKU exactly equals the target, oldest first.
func (r *GormUnitRepository) GetUncommittedBySku(
	ctx context.Context,
	target sku.SKU,
) ([]*unit.InventoryUnit, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	var dtos []InventoryUnitDTO
	err := r.uncommittedPool(ctx).
		Where("sku_style = ? AND sku_waist = ? AND sku_shape = ? AND sku_length = ? AND sku_finish = ?",
			target.Style(), target.Waist(), target.Shape(), target.Length(), string(target.Finish())).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return unitsToDomain(dtos)
}

// GetUncommittedUniversal retrieves all uncommitted stock or production units
// usable as universal substitutes for the given variant prefix: same style,
// waist and shape, the wash group's universal finish, and a length of at
// least minLength. Ordered by length then age so the selector wastes as
// little fabric as possible.
func (r *GormUnitRepository) GetUncommittedUniversal(
	ctx context.Context,
	style string,
	waist int,
	shape string,
	finish sku.Finish,
	minLength int,
) ([]*unit.InventoryUnit, error) {
	var dtos []InventoryUnitDTO
	err := r.uncommittedPool(ctx).
		Where("sku_style = ? AND sku_waist = ? AND sku_shape = ? AND sku_finish = ? AND sku_length >= ?",
			style, waist, shape, string(finish), minLength).
		Order("sku_length, created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return unitsToDomain(dtos)
}

func (r *GormUnitRepository) uncommittedPool(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("secondary_status = ?", int(unit.Uncommitted)).
		Where("primary_status IN ?", []int{int(unit.Stock), int(unit.Production)})
}

func unitsToDomain(dtos []InventoryUnitDTO) ([]*unit.InventoryUnit, error) {
	units := make([]*unit.InventoryUnit, 0, len(dtos))
	for _, dto := range dtos {
		u, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}
