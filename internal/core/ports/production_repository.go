package ports

import (
	"context"
	"errors"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/production"
	"stitchfactory/internal/core/domain/model/sku"
)

// ErrDuplicatePendingRequest is returned by Add when a pending request for
// the same universal SKU already exists. It marks a lost insert race: the
// caller re-fetches the winner and merges its demand into it.
var ErrDuplicatePendingRequest = errors.New("pending production request already exists for universal sku")

// ProductionRequestRepository defines the persistence contract for
// production request aggregates.
//
// The store enforces the single-pending-request invariant with a partial
// unique index on the universal SKU; Add surfaces a violation as an error
// the caller resolves by re-fetching and merging.
type ProductionRequestRepository interface {
	// Add persists a new production request.
	Add(ctx context.Context, aggregate *production.Request) error

	// Update persists changes to an existing production request.
	Update(ctx context.Context, aggregate *production.Request) error

	// GetPendingByUniversalSku retrieves the single pending request for the
	// universal SKU, or an ObjectNotFoundError when none exists.
	GetPendingByUniversalSku(ctx context.Context, universalSku sku.SKU) (*production.Request, error)

	// GetAllPending retrieves every pending request, oldest first.
	GetAllPending(ctx context.Context) ([]*production.Request, error)
}

// WaitlistRepository defines the persistence contract for waitlist entries.
type WaitlistRepository interface {
	// Add persists a new waitlist entry.
	Add(ctx context.Context, entry *production.WaitlistEntry) error

	// GetByLineItemID retrieves the waitlist entry for a line item, or an
	// ObjectNotFoundError when the item is not waitlisted.
	GetByLineItemID(ctx context.Context, lineItemID kernel.UUID) (*production.WaitlistEntry, error)

	// NextPosition draws the next value from the single monotonically
	// increasing position sequence shared across all callers. Positions are
	// strictly increasing and never reused, even across rolled-back
	// transactions.
	NextPosition(ctx context.Context) (int64, error)
}
