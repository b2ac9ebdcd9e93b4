package commands

import (
	"context"
	"errors"

	"stitchfactory/internal/core/domain/model/finishing"
	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/order"
	"stitchfactory/internal/core/domain/model/production"
	"stitchfactory/internal/core/domain/model/sku"
	"stitchfactory/internal/core/domain/model/unit"
	"stitchfactory/internal/core/domain/services"
	"stitchfactory/internal/core/ports"
	"stitchfactory/internal/pkg/errs"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// maxStaleCandidateRetries bounds how often a line item re-runs candidate
// selection after losing a reservation race. Once the bound is hit the item
// falls through to the production queue.
const maxStaleCandidateRetries = 3

// ProcessOrderCommandHandler executes the allocation pass for an order.
//
// Every line item is allocated inside its own transaction:
//  1. find an uncommitted unit exactly matching the requested variant
//  2. failing that, find a raw universal substitute of sufficient length
//  3. reserve the chosen unit with an update guarded on the unit still being
//     uncommitted; a lost race re-runs selection excluding the stale unit
//  4. a stock unit is hard-assigned and a finishing request is emitted; a
//     production unit is softly committed with a waitlist position
//  5. with no candidate at all, demand is queued with the production request
//     for the item's universal SKU
//
// Line item failures are isolated: one item's failure rolls back only its
// own transaction, and the pass continues with the remaining items. After
// the pass the order status is recomputed from all line items.
type ProcessOrderCommandHandler struct {
	uowFactory AllocationUoWFactory
	selector   services.CandidateSelector
	aggregator services.OrderStatusAggregator
	queue      productionQueue
}

// NewProcessOrderCommandHandler creates a handler for order allocation passes.
func NewProcessOrderCommandHandler(uowFactory AllocationUoWFactory) ProcessOrderCommandHandler {
	return ProcessOrderCommandHandler{
		uowFactory: uowFactory,
		selector:   services.NewCandidateSelector(),
		aggregator: services.NewOrderStatusAggregator(),
	}
}

// Handle runs the allocation pass and reports the per-line-item outcomes
// together with the recomputed order status. The returned result has
// Success=false when any item failed, but successful allocations from the
// same pass are kept and reflected in the order status; callers must inspect
// the per-item results rather than assume nothing happened.
func (h ProcessOrderCommandHandler) Handle(
	ctx context.Context,
	command ProcessOrderCommand,
) (ProcessOrderResult, error) {
	if err := command.Validate(); err != nil {
		return ProcessOrderResult{}, err
	}

	lineItemIDs, err := h.loadLineItemIDs(ctx, command.OrderID())
	if err != nil {
		return ProcessOrderResult{}, err
	}

	result := ProcessOrderResult{Success: true}
	for _, lineItemID := range lineItemIDs {
		outcome := h.allocateLineItem(ctx, command.OrderID(), lineItemID)
		if _, failed := outcome.(Failed); failed {
			result.Success = false
		}
		result.LineItemResults = append(result.LineItemResults, LineItemResult{
			LineItemID: lineItemID,
			Outcome:    outcome,
		})
	}

	status, err := h.recomputeOrderStatus(ctx, command.OrderID())
	if err != nil {
		return ProcessOrderResult{}, err
	}
	result.OrderStatus = status

	return result, nil
}

// loadLineItemIDs reads the order once to enumerate its line items.
// Allocation re-reads each item inside its own transaction, so a stale
// snapshot here only costs a skipped item, never a wrong write.
func (h ProcessOrderCommandHandler) loadLineItemIDs(ctx context.Context, orderID kernel.UUID) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(o.LineItems()))
	for _, li := range o.LineItems() {
		ids = append(ids, li.ID())
	}
	return ids, nil
}

// allocateLineItem runs one line item's allocation in its own transaction
// and maps any error to a Failed outcome so sibling items keep processing.
func (h ProcessOrderCommandHandler) allocateLineItem(
	ctx context.Context,
	orderID, lineItemID kernel.UUID,
) AllocationOutcome {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Failed{Err: err}
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return Failed{Err: err}
	}

	lineItem, err := o.LineItem(lineItemID)
	if err != nil {
		return Failed{Err: err}
	}

	// Idempotence: items resolved by an earlier pass are never re-matched
	// and never queue duplicate demand.
	if lineItem.IsSettled() {
		return h.settledOutcome(lineItem)
	}

	outcome, err := h.allocate(ctx, uow, o, lineItem)
	if err != nil {
		return Failed{Err: err}
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return Failed{Err: err}
	}
	if err = uow.Commit(ctx); err != nil {
		return Failed{Err: err}
	}

	return outcome
}

// allocate performs candidate search, the guarded reservation and the
// production fallback for one unsettled line item.
func (h ProcessOrderCommandHandler) allocate(
	ctx context.Context,
	uow AllocationUoW,
	o *order.Order,
	lineItem *order.LineItem,
) (AllocationOutcome, error) {
	target := lineItem.TargetSku()
	excluded := make(map[kernel.UUID]bool)

	for attempt := 0; attempt <= maxStaleCandidateRetries; attempt++ {
		candidate, isUniversal, err := h.findCandidate(ctx, uow.UnitRepository(), target, excluded)
		if errors.Is(err, services.ErrNoCandidateFound) {
			break
		}
		if err != nil {
			return nil, err
		}

		outcome, err := h.reserve(ctx, uow, o, lineItem, candidate, isUniversal)
		if errors.Is(err, ports.ErrUnitAlreadyReserved) {
			// Another transaction claimed the unit between read and write.
			// Re-run selection without it; this is not a user-visible error.
			excluded[candidate.ID()] = true
			continue
		}
		if err != nil {
			return nil, err
		}
		return outcome, nil
	}

	return h.queueForProduction(ctx, uow, o, lineItem)
}

// findCandidate looks for the best exact match first, then for a universal
// substitute. Units that lost a reservation race this pass are excluded.
func (h ProcessOrderCommandHandler) findCandidate(
	ctx context.Context,
	units ports.UnitRepository,
	target sku.SKU,
	excluded map[kernel.UUID]bool,
) (*unit.InventoryUnit, bool, error) {
	exact, err := units.GetUncommittedBySku(ctx, target)
	if err != nil {
		return nil, false, err
	}

	candidate, err := h.selector.SelectExact(target, withoutExcluded(exact, excluded))
	if err == nil {
		return candidate, false, nil
	}
	if !errors.Is(err, services.ErrNoCandidateFound) {
		return nil, false, err
	}

	group, err := target.WashGroup()
	if err != nil {
		return nil, false, err
	}

	universal, err := units.GetUncommittedUniversal(
		ctx,
		target.Style(), target.Waist(), target.Shape(),
		group.UniversalFinish(), target.Length(),
	)
	if err != nil {
		return nil, false, err
	}

	candidate, err = h.selector.SelectUniversal(target, withoutExcluded(universal, excluded))
	if err != nil {
		return nil, true, err
	}
	return candidate, true, nil
}

// reserve transitions the chosen unit with the uncommitted-status guard and
// records the matching state on the line item.
//
// A stock unit is hard-assigned and a finishing request is emitted for the
// wash station. A unit still in production is only softly committed: the
// line item goes to InProduction, a waitlist entry binds it to the unit, and
// no finishing request exists until the unit is physically ready.
func (h ProcessOrderCommandHandler) reserve(
	ctx context.Context,
	uow AllocationUoW,
	o *order.Order,
	lineItem *order.LineItem,
	candidate *unit.InventoryUnit,
	isUniversal bool,
) (AllocationOutcome, error) {
	switch candidate.PrimaryStatus() {
	case unit.Stock:
		if err := candidate.Assign(o.ID(), lineItem.ID()); err != nil {
			return nil, err
		}
		if err := uow.UnitRepository().UpdateIfUncommitted(ctx, candidate); err != nil {
			return nil, err
		}
		if err := lineItem.AssignUnit(candidate.ID()); err != nil {
			return nil, err
		}
		if err := h.emitFinishingRequest(ctx, uow, o, lineItem, candidate, isUniversal); err != nil {
			return nil, err
		}

	case unit.Production:
		position, err := uow.WaitlistRepository().NextPosition(ctx)
		if err != nil {
			return nil, err
		}
		if err = candidate.Commit(o.ID(), lineItem.ID(), position); err != nil {
			return nil, err
		}
		if err = uow.UnitRepository().UpdateIfUncommitted(ctx, candidate); err != nil {
			return nil, err
		}
		if err = lineItem.MarkInProduction(); err != nil {
			return nil, err
		}

		entry, err := production.NewUnitEntry(kernel.NewUUID(), position, o.ID(), lineItem.ID(), candidate.ID())
		if err != nil {
			return nil, err
		}
		if err = uow.WaitlistRepository().Add(ctx, entry); err != nil {
			return nil, err
		}

	default:
		return nil, errs.NewValueIsInvalidError("candidate primary status")
	}

	if isUniversal {
		return UniversalAssignment{UnitID: candidate.ID()}, nil
	}
	return DirectAssignment{UnitID: candidate.ID()}, nil
}

func (h ProcessOrderCommandHandler) emitFinishingRequest(
	ctx context.Context,
	uow AllocationUoW,
	o *order.Order,
	lineItem *order.LineItem,
	candidate *unit.InventoryUnit,
	isUniversal bool,
) error {
	request, err := finishing.NewRequest(
		kernel.NewUUID(),
		candidate.ID(), o.ID(), lineItem.ID(),
		isUniversal,
		lineItem.TargetSku().Finish(),
	)
	if err != nil {
		return err
	}
	return uow.FinishingRequestRepository().Add(ctx, request)
}

// queueForProduction records demand for the item's universal SKU and marks
// the item as pending manufacture.
func (h ProcessOrderCommandHandler) queueForProduction(
	ctx context.Context,
	uow AllocationUoW,
	o *order.Order,
	lineItem *order.LineItem,
) (AllocationOutcome, error) {
	universalSku, err := lineItem.TargetSku().Universal()
	if err != nil {
		return nil, err
	}

	if _, err = h.queue.Enqueue(
		ctx,
		uow.ProductionRequestRepository(),
		uow.WaitlistRepository(),
		universalSku,
		o.ID(), lineItem.ID(),
	); err != nil {
		return nil, err
	}

	if err = lineItem.MarkPendingProduction(); err != nil {
		return nil, err
	}

	return QueuedForProduction{}, nil
}

// settledOutcome reports the outcome an earlier pass produced for an
// already-resolved line item without touching any state.
func (h ProcessOrderCommandHandler) settledOutcome(lineItem *order.LineItem) AllocationOutcome {
	switch lineItem.Status() {
	case order.Assigned:
		if unitID := lineItem.AssignedUnitID(); unitID != nil {
			return DirectAssignment{UnitID: *unitID}
		}
		return DirectAssignment{}
	case order.LineItemInProduction, order.PendingProduction:
		return QueuedForProduction{}
	case order.PendingAssignment, order.UnknownLineItemStatus:
		fallthrough
	default:
		return Failed{Err: errs.NewValueIsInvalidError("line item status")}
	}
}

// recomputeOrderStatus re-derives the order status wholesale from the line
// items' post-pass state inside its own transaction.
func (h ProcessOrderCommandHandler) recomputeOrderStatus(
	ctx context.Context,
	orderID kernel.UUID,
) (order.Status, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return 0, err
	}

	status, err := h.aggregator.Recompute(o)
	if err != nil {
		return 0, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return status, nil
}

func withoutExcluded(
	candidates []*unit.InventoryUnit,
	excluded map[kernel.UUID]bool,
) []*unit.InventoryUnit {
	if len(excluded) == 0 {
		return candidates
	}

	kept := make([]*unit.InventoryUnit, 0, len(candidates))
	for _, candidate := range candidates {
		if !excluded[candidate.ID()] {
			kept = append(kept, candidate)
		}
	}
	return kept
}
