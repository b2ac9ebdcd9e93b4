package unit

import (
	"errors"
	"time"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/sku"
	"stitchfactory/internal/pkg/errs"
)

var (
	// ErrInventoryUnitIsNotConstructed is returned when an InventoryUnit instance
	// was not created through the NewInventoryUnit or RestoreInventoryUnit factories.
	ErrInventoryUnitIsNotConstructed = errors.New(
		"InventoryUnit must be created via NewInventoryUnit or RestoreInventoryUnit constructor")
)

// InventoryUnit is a single physical item in the warehouse. It is the
// aggregate root for reservation state.
//
// InventoryUnit follows these invariants:
//   - Assigned units carry a commitment naming exactly one order line item
//   - Committed units carry a commitment and, when still in production,
//     a waitlist position
//   - Uncommitted units carry no commitment
//   - Status transitions follow the SecondaryStatus state machine
type InventoryUnit struct {
	id              kernel.UUID
	sku             sku.SKU
	primaryStatus   PrimaryStatus
	secondaryStatus SecondaryStatus
	location        string
	commitment      *Commitment
	createdAt       time.Time

	isConstructed bool
}

// NewInventoryUnit creates a fresh, unreserved unit as manufacturing intake
// produces them: either Stock (already sewn and shelved) or Production
// (scheduled for manufacture), always Uncommitted.
func NewInventoryUnit(
	id kernel.UUID,
	variant sku.SKU,
	primaryStatus PrimaryStatus,
	location string,
) (*InventoryUnit, error) {
	if err := errors.Join(
		id.Validate(),
		variant.Validate(),
		primaryStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if primaryStatus == Wash {
		return nil, errs.NewValueIsInvalidErrorWithCause("primary status",
			errors.New("a unit cannot be created at the wash station"))
	}

	return &InventoryUnit{
		id:              id,
		sku:             variant,
		primaryStatus:   primaryStatus,
		secondaryStatus: Uncommitted,
		location:        location,
		createdAt:       time.Now().UTC(),
		isConstructed:   true,
	}, nil
}

// RestoreInventoryUnit reconstructs a unit from persistence without applying
// creation rules. All stored state is validated for consistency.
func RestoreInventoryUnit(
	id kernel.UUID,
	variant sku.SKU,
	primaryStatus PrimaryStatus,
	secondaryStatus SecondaryStatus,
	location string,
	commitment *Commitment,
	createdAt time.Time,
) (*InventoryUnit, error) {
	if err := errors.Join(
		id.Validate(),
		variant.Validate(),
		primaryStatus.Validate(),
		secondaryStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if secondaryStatus != Uncommitted && commitment == nil {
		return nil, errs.NewValueIsRequiredError("commitment")
	}
	if commitment != nil {
		if err := commitment.Validate(); err != nil {
			return nil, err
		}
	}

	return &InventoryUnit{
		id:              id,
		sku:             variant,
		primaryStatus:   primaryStatus,
		secondaryStatus: secondaryStatus,
		location:        location,
		commitment:      commitment,
		createdAt:       createdAt,
		isConstructed:   true,
	}, nil
}

// Validate ensures the InventoryUnit was properly constructed.
func (u *InventoryUnit) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrInventoryUnitIsNotConstructed
	}
	return nil
}

// ID returns the unit's unique identifier.
func (u *InventoryUnit) ID() kernel.UUID {
	return u.id
}

// SKU returns the variant identifier of the unit.
func (u *InventoryUnit) SKU() sku.SKU {
	return u.sku
}

// PrimaryStatus returns where the unit is in its manufacturing life.
func (u *InventoryUnit) PrimaryStatus() PrimaryStatus {
	return u.primaryStatus
}

// SecondaryStatus returns the reservation state of the unit.
func (u *InventoryUnit) SecondaryStatus() SecondaryStatus {
	return u.secondaryStatus
}

// Location returns the bin code the unit is stored at.
func (u *InventoryUnit) Location() string {
	return u.location
}

// Commitment returns the reservation audit record, or nil for uncommitted units.
func (u *InventoryUnit) Commitment() *Commitment {
	return u.commitment
}

// CreatedAt returns when the unit entered the system. Candidate selection
// uses it for first-in-first-out tie-breaking.
func (u *InventoryUnit) CreatedAt() time.Time {
	return u.createdAt
}

// IsEqual compares two units by their unique identifiers.
func (u *InventoryUnit) IsEqual(other *InventoryUnit) bool {
	return other != nil && u.id.IsEqual(other.id)
}

// Assign hard-binds the unit to an order line item. Valid for an uncommitted
// stock unit (direct assignment) or a committed unit whose production
// completed. After assignment the unit is never offered as a candidate again.
func (u *InventoryUnit) Assign(orderID, lineItemID kernel.UUID) error {
	if err := u.Validate(); err != nil {
		return err
	}

	newStatus, err := u.secondaryStatus.Assign()
	if err != nil {
		return err
	}

	commitment, err := NewCommitment(orderID, lineItemID, time.Now().UTC())
	if err != nil {
		return err
	}

	u.secondaryStatus = newStatus
	u.commitment = &commitment
	return nil
}

// Commit softly reserves a not-yet-manufactured unit for an order line item,
// recording the waitlist position that decides fulfillment order once the
// unit is produced. Only Production units can be committed; a Stock unit is
// physically ready and must be assigned instead.
func (u *InventoryUnit) Commit(orderID, lineItemID kernel.UUID, position int64) error {
	if err := u.Validate(); err != nil {
		return err
	}

	if u.primaryStatus != Production {
		return errs.NewValueIsInvalidErrorWithCause("primary status",
			errors.New("only production units can be softly reserved"))
	}

	newStatus, err := u.secondaryStatus.Commit()
	if err != nil {
		return err
	}

	commitment, err := NewWaitlistedCommitment(orderID, lineItemID, time.Now().UTC(), position)
	if err != nil {
		return err
	}

	u.secondaryStatus = newStatus
	u.commitment = &commitment
	return nil
}
