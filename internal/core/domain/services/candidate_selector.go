package services

import (
	"errors"

	"stitchfactory/internal/core/domain/model/sku"
	"stitchfactory/internal/core/domain/model/unit"
)

// ErrNoCandidateFound is returned when no provided unit survives the
// selection rules. Callers branch on it to fall through from exact to
// universal matching and finally to the production queue.
var ErrNoCandidateFound = errors.New("no candidate unit found")

// CandidateSelector is a domain service that picks the best inventory unit
// for an order line item from a set of candidate units.
//
// Selection rules:
//   - only uncommitted units are ever eligible
//   - exact matches prefer stock over production units, then oldest first
//   - universal matches require length >= requested length (a raw unit can
//     be trimmed down, never lengthened), prefer the smallest sufficient
//     length to minimize waste, then oldest first
type CandidateSelector struct{}

// NewCandidateSelector creates a new CandidateSelector instance.
func NewCandidateSelector() CandidateSelector {
	return CandidateSelector{}
}

// SelectExact picks the best unit whose SKU equals the requested variant.
// Stock units win over production units; within the same primary status the
// oldest unit wins (first in, first out).
func (s CandidateSelector) SelectExact(
	target sku.SKU,
	candidates []*unit.InventoryUnit,
) (*unit.InventoryUnit, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	var best *unit.InventoryUnit
	for _, candidate := range candidates {
		if !s.eligible(candidate) || !candidate.SKU().IsEqual(target) {
			continue
		}
		if best == nil || exactBeats(candidate, best) {
			best = candidate
		}
	}

	if best == nil {
		return nil, ErrNoCandidateFound
	}
	return best, nil
}

// SelectUniversal picks the best raw universal unit able to substitute for
// the requested variant: same style, waist and shape, the wash group's
// universal finish, and a length no shorter than the requested one. Among
// survivors the smallest sufficient length wins, tie-broken oldest first.
func (s CandidateSelector) SelectUniversal(
	target sku.SKU,
	candidates []*unit.InventoryUnit,
) (*unit.InventoryUnit, error) {
	group, err := target.WashGroup()
	if err != nil {
		return nil, err
	}
	universalFinish := group.UniversalFinish()

	var best *unit.InventoryUnit
	for _, candidate := range candidates {
		if !s.eligible(candidate) {
			continue
		}

		candidateSku := candidate.SKU()
		if candidateSku.Style() != target.Style() ||
			candidateSku.Waist() != target.Waist() ||
			candidateSku.Shape() != target.Shape() ||
			candidateSku.Finish() != universalFinish {
			continue
		}
		if candidateSku.Length() < target.Length() {
			continue
		}

		if best == nil || universalBeats(candidate, best) {
			best = candidate
		}
	}

	if best == nil {
		return nil, ErrNoCandidateFound
	}
	return best, nil
}

func (s CandidateSelector) eligible(candidate *unit.InventoryUnit) bool {
	if candidate == nil || candidate.Validate() != nil {
		return false
	}
	if candidate.SecondaryStatus() != unit.Uncommitted {
		return false
	}
	return candidate.PrimaryStatus() == unit.Stock || candidate.PrimaryStatus() == unit.Production
}

func exactBeats(candidate, best *unit.InventoryUnit) bool {
	if candidate.PrimaryStatus() != best.PrimaryStatus() {
		return candidate.PrimaryStatus() == unit.Stock
	}
	return candidate.CreatedAt().Before(best.CreatedAt())
}

func universalBeats(candidate, best *unit.InventoryUnit) bool {
	if candidate.SKU().Length() != best.SKU().Length() {
		return candidate.SKU().Length() < best.SKU().Length()
	}
	return candidate.CreatedAt().Before(best.CreatedAt())
}
