package ports

import (
	"context"

	"stitchfactory/internal/core/domain/model/finishing"
)

// FinishingRequestRepository defines the persistence contract for the
// finishing/wash request records the allocation engine emits. The wash
// station workflow consumes them downstream; the engine only writes.
type FinishingRequestRepository interface {
	// Add persists a new finishing request.
	Add(ctx context.Context, request *finishing.Request) error
}
