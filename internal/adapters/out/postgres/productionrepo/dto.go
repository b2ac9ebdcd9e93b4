// Package productionrepo provides persistence for production requests and
// waitlist entries. The store enforces the single-pending-request-per-SKU
// invariant with a partial unique index and issues waitlist positions from a
// dedicated Postgres sequence.
package productionrepo

import (
	"time"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/production"
	"stitchfactory/internal/core/domain/model/sku"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// RequestDTO represents a production request row. The aggregated order and
// line item id sets are stored as text arrays; they are audit data, never
// filtered on.
type RequestDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Sku         string         `gorm:"type:varchar(20)"`
	Quantity    int            `gorm:"type:smallint"`
	Status      int            `gorm:"index"`
	OrderIDs    pq.StringArray `gorm:"type:text[]"`
	LineItemIDs pq.StringArray `gorm:"type:text[]"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
}

// TableName specifies the database table name for production request entities.
func (RequestDTO) TableName() string {
	return "production_requests"
}

// WaitlistEntryDTO represents a waitlist entry row. Exactly one of UnitID
// and RequestID is set, mirroring the domain invariant.
type WaitlistEntryDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Position   int64      `gorm:"uniqueIndex"`
	OrderID    uuid.UUID  `gorm:"type:uuid;index"`
	LineItemID uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	UnitID     *uuid.UUID `gorm:"type:uuid"`
	RequestID  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
}

// TableName specifies the database table name for waitlist entry entities.
func (WaitlistEntryDTO) TableName() string {
	return "waitlist_entries"
}

// requestFromDomain converts a production request aggregate to its database
// representation.
func requestFromDomain(aggregate *production.Request) RequestDTO {
	return RequestDTO{
		ID:          aggregate.ID().Bytes(),
		Sku:         aggregate.UniversalSku().String(),
		Quantity:    aggregate.Quantity(),
		Status:      int(aggregate.Status()),
		OrderIDs:    idsToStrings(aggregate.OrderIDs()),
		LineItemIDs: idsToStrings(aggregate.LineItemIDs()),
	}
}

// requestToDomain converts a database DTO to a production request aggregate.
func requestToDomain(dto RequestDTO) (*production.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	universalSku, err := sku.Parse(dto.Sku)
	if err != nil {
		return nil, err
	}

	orderIDs, err := stringsToIDs(dto.OrderIDs)
	if err != nil {
		return nil, err
	}
	lineItemIDs, err := stringsToIDs(dto.LineItemIDs)
	if err != nil {
		return nil, err
	}

	return production.RestoreRequest(
		id,
		universalSku,
		dto.Quantity,
		production.RequestStatus(dto.Status),
		orderIDs,
		lineItemIDs,
	)
}

// entryFromDomain converts a waitlist entry to its database representation.
func entryFromDomain(entry *production.WaitlistEntry) WaitlistEntryDTO {
	var unitID, requestID *uuid.UUID
	if id := entry.UnitID(); id != nil {
		raw := id.Bytes()
		unitID = &raw
	}
	if id := entry.RequestID(); id != nil {
		raw := id.Bytes()
		requestID = &raw
	}

	return WaitlistEntryDTO{
		ID:         entry.ID().Bytes(),
		Position:   entry.Position(),
		OrderID:    entry.OrderID().Bytes(),
		LineItemID: entry.LineItemID().Bytes(),
		UnitID:     unitID,
		RequestID:  requestID,
	}
}

// entryToDomain converts a database DTO to a waitlist entry.
func entryToDomain(dto WaitlistEntryDTO) (*production.WaitlistEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	lineItemID, err := kernel.UUIDFromBytes(dto.LineItemID[:])
	if err != nil {
		return nil, err
	}

	var unitID, requestID *kernel.UUID
	if dto.UnitID != nil {
		uID, uErr := kernel.UUIDFromBytes((*dto.UnitID)[:])
		if uErr != nil {
			return nil, uErr
		}
		unitID = &uID
	}
	if dto.RequestID != nil {
		rID, rErr := kernel.UUIDFromBytes((*dto.RequestID)[:])
		if rErr != nil {
			return nil, rErr
		}
		requestID = &rID
	}

	return production.RestoreWaitlistEntry(id, dto.Position, orderID, lineItemID, unitID, requestID)
}

func idsToStrings(ids []kernel.UUID) pq.StringArray {
	out := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func stringsToIDs(raw pq.StringArray) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
