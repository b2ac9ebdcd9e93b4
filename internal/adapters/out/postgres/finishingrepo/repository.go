// Package finishingrepo persists the finishing request records the
// allocation engine emits for the wash station. The engine only ever writes
// them; downstream wash tooling reads the table directly.
package finishingrepo

import (
	"context"
	"time"

	"stitchfactory/internal/core/domain/model/finishing"
	"stitchfactory/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestDTO represents a finishing request row.
type RequestDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UnitID           uuid.UUID `gorm:"type:uuid;index"`
	OrderID          uuid.UUID `gorm:"type:uuid;index"`
	LineItemID       uuid.UUID `gorm:"type:uuid"`
	IsUniversalMatch bool
	TargetFinish     string `gorm:"type:varchar(3)"`
	CreatedAt        time.Time
}

// TableName specifies the database table name for finishing request entities.
func (RequestDTO) TableName() string {
	return "finishing_requests"
}

func fromDomain(request *finishing.Request) RequestDTO {
	return RequestDTO{
		ID:               request.ID().Bytes(),
		UnitID:           request.UnitID().Bytes(),
		OrderID:          request.OrderID().Bytes(),
		LineItemID:       request.LineItemID().Bytes(),
		IsUniversalMatch: request.IsUniversalMatch(),
		TargetFinish:     string(request.TargetFinish()),
		CreatedAt:        request.CreatedAt(),
	}
}

// GormFinishingRequestRepository implements FinishingRequestRepository using GORM.
type GormFinishingRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormFinishingRequestRepository creates a new GORM finishing request repository.
func NewGormFinishingRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormFinishingRequestRepository {
	return &GormFinishingRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new finishing request to the database.
func (r *GormFinishingRequestRepository) Add(ctx context.Context, request *finishing.Request) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto := fromDomain(request)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(request.ID(), request)
	return nil
}
