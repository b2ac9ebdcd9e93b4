package productionrepo

import (
	"context"
	"errors"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/production"
	"stitchfactory/internal/core/domain/model/sku"
	"stitchfactory/internal/core/ports"
	"stitchfactory/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// pendingRequestIndex is the partial unique index guarding the
// single-pending-request invariant. Created by Migrate, referenced by Add
// when classifying unique violations.
const pendingRequestIndex = "ux_production_requests_pending_sku"

// Migrate creates the database objects AutoMigrate cannot express: the
// partial unique index on pending requests and the global waitlist position
// sequence. Safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS " + pendingRequestIndex +
			" ON production_requests (sku) WHERE status = 1",
	).Error; err != nil {
		return err
	}

	return db.Exec("CREATE SEQUENCE IF NOT EXISTS waitlist_position_seq").Error
}

// GormProductionRequestRepository implements ProductionRequestRepository using GORM.
type GormProductionRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormProductionRequestRepository creates a new GORM production request repository.
func NewGormProductionRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormProductionRequestRepository {
	return &GormProductionRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new production request to the database. When a pending request
// for the same universal SKU already exists, the partial unique index turns
// the insert into ErrDuplicatePendingRequest so the caller can merge instead.
func (r *GormProductionRequestRepository) Add(ctx context.Context, aggregate *production.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := requestFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == pendingRequestIndex {
			return ports.ErrDuplicatePendingRequest
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing production request to the database.
func (r *GormProductionRequestRepository) Update(ctx context.Context, aggregate *production.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := requestFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RequestDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"quantity":      dto.Quantity,
			"status":        dto.Status,
			"order_ids":     dto.OrderIDs,
			"line_item_ids": dto.LineItemIDs,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetPendingByUniversalSku retrieves the single pending request for the
// universal SKU.
func (r *GormProductionRequestRepository) GetPendingByUniversalSku(
	ctx context.Context,
	universalSku sku.SKU,
) (*production.Request, error) {
	if err := universalSku.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	err := r.db.WithContext(ctx).
		First(&dto, "sku = ? AND status = ?", universalSku.String(), int(production.Pending)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pending production request", universalSku.String())
		}
		return nil, err
	}

	return requestToDomain(dto)
}

// GetAllPending retrieves every pending request, oldest first.
func (r *GormProductionRequestRepository) GetAllPending(ctx context.Context) ([]*production.Request, error) {
	var dtos []RequestDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", int(production.Pending)).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	requests := make([]*production.Request, 0, len(dtos))
	for _, dto := range dtos {
		request, reqErr := requestToDomain(dto)
		if reqErr != nil {
			return nil, reqErr
		}
		requests = append(requests, request)
	}

	return requests, nil
}

// GormWaitlistRepository implements WaitlistRepository using GORM.
type GormWaitlistRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormWaitlistRepository creates a new GORM waitlist repository.
func NewGormWaitlistRepository(db *gorm.DB, tracker aggregateTracker) *GormWaitlistRepository {
	return &GormWaitlistRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new waitlist entry to the database.
func (r *GormWaitlistRepository) Add(ctx context.Context, entry *production.WaitlistEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := entryFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}

// GetByLineItemID retrieves the waitlist entry for a line item.
func (r *GormWaitlistRepository) GetByLineItemID(
	ctx context.Context,
	lineItemID kernel.UUID,
) (*production.WaitlistEntry, error) {
	if err := lineItemID.Validate(); err != nil {
		return nil, err
	}

	var dto WaitlistEntryDTO
	err := r.db.WithContext(ctx).First(&dto, "line_item_id = ?", lineItemID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("waitlist entry", lineItemID.String())
		}
		return nil, err
	}

	return entryToDomain(dto)
}

// NextPosition draws the next waitlist position from the global sequence.
// Sequence values survive rolled-back transactions, so positions are
// strictly increasing and never reused, which is exactly the property the
// arrival order needs under concurrent allocation.
func (r *GormWaitlistRepository) NextPosition(ctx context.Context) (int64, error) {
	var position int64
	err := r.db.WithContext(ctx).Raw("SELECT nextval('waitlist_position_seq')").Scan(&position).Error
	if err != nil {
		return 0, err
	}
	return position, nil
}
