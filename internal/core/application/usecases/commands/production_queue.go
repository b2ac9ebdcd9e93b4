package commands

import (
	"context"
	"errors"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/production"
	"stitchfactory/internal/core/domain/model/sku"
	"stitchfactory/internal/core/ports"
	"stitchfactory/internal/pkg/errs"
)

// productionQueue aggregates manufacturing demand. When no physical unit can
// satisfy a line item, Enqueue folds the demand into the single pending
// production request for the item's universal SKU (creating it when absent)
// and appends a waitlist entry preserving arrival order.
//
// The queue does not schedule production; it only records the demand signal
// for the manufacturing-batch subsystem.
type productionQueue struct{}

// Enqueue merges one unit of demand for universalSku into the pending
// production request, creating the request when none exists, and waitlists
// the line item at the next global position.
//
// The single-pending-request invariant is guarded twice: a lookup-then-merge
// fast path, and, should two transactions race past the lookup, the partial
// unique index on the store turns the second insert into
// ErrDuplicatePendingRequest, which is resolved by re-fetching and merging.
func (productionQueue) Enqueue(
	ctx context.Context,
	requests ports.ProductionRequestRepository,
	waitlist ports.WaitlistRepository,
	universalSku sku.SKU,
	orderID, lineItemID kernel.UUID,
) (*production.Request, error) {
	request, err := requests.GetPendingByUniversalSku(ctx, universalSku)
	switch {
	case err == nil:
		if err = request.Merge(orderID, lineItemID); err != nil {
			return nil, err
		}
		if err = requests.Update(ctx, request); err != nil {
			return nil, err
		}

	case errors.Is(err, errs.ErrObjectNotFound):
		request, err = production.NewRequest(kernel.NewUUID(), universalSku, orderID, lineItemID)
		if err != nil {
			return nil, err
		}

		if err = requests.Add(ctx, request); err != nil {
			if !errors.Is(err, ports.ErrDuplicatePendingRequest) {
				return nil, err
			}
			// Lost the insert race; the winner's request absorbs this demand.
			request, err = requests.GetPendingByUniversalSku(ctx, universalSku)
			if err != nil {
				return nil, err
			}
			if err = request.Merge(orderID, lineItemID); err != nil {
				return nil, err
			}
			if err = requests.Update(ctx, request); err != nil {
				return nil, err
			}
		}

	default:
		return nil, err
	}

	position, err := waitlist.NextPosition(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := production.NewRequestEntry(kernel.NewUUID(), position, orderID, lineItemID, request.ID())
	if err != nil {
		return nil, err
	}
	if err = waitlist.Add(ctx, entry); err != nil {
		return nil, err
	}

	return request, nil
}
