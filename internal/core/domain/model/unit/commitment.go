package unit

import (
	"errors"
	"time"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/pkg/errs"
	"stitchfactory/internal/pkg/guard"
)

// ErrCommitmentIsNotConstructed indicates a Commitment that was not created via
// NewCommitment or NewWaitlistedCommitment.
var ErrCommitmentIsNotConstructed = errs.NewValueIsRequiredError(
	"Commitment must be created via NewCommitment or NewWaitlistedCommitment constructors")

// Commitment is the audit record attached to a reserved unit. It names the
// order and line item the unit is bound to, when the reservation happened,
// and, for softly reserved production units, the waitlist position that
// decides who receives the first produced unit.
type Commitment struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	lineItemID       kernel.UUID
	committedAt      time.Time
	waitlistPosition *int64
	guard            guard.ConstructorGuard
}

// NewCommitment creates a commitment for a direct (stock) assignment,
// which carries no waitlist position.
func NewCommitment(orderID, lineItemID kernel.UUID, committedAt time.Time) (Commitment, error) {
	c := Commitment{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setOrderID(orderID),
		c.setLineItemID(lineItemID),
		c.setCommittedAt(committedAt),
	); err != nil {
		return Commitment{}, err
	}

	return c, nil
}

// NewWaitlistedCommitment creates a commitment for a soft reservation of a
// production unit, recording the waitlist position the reservation holds.
func NewWaitlistedCommitment(
	orderID, lineItemID kernel.UUID,
	committedAt time.Time,
	position int64,
) (Commitment, error) {
	c, err := NewCommitment(orderID, lineItemID, committedAt)
	if err != nil {
		return Commitment{}, err
	}

	if position <= 0 {
		return Commitment{}, errs.NewValueIsInvalidErrorWithCause("waitlist position",
			errors.New("position must be positive"))
	}

	c.waitlistPosition = &position
	return c, nil
}

// Validate ensures the Commitment was created through one of its constructors.
func (c Commitment) Validate() error {
	return c.guard.Validate(ErrCommitmentIsNotConstructed)
}

// OrderID returns the order the unit is reserved for.
func (c Commitment) OrderID() kernel.UUID {
	return c.orderID
}

// LineItemID returns the order line item the unit is reserved for.
func (c Commitment) LineItemID() kernel.UUID {
	return c.lineItemID
}

// CommittedAt returns when the reservation was made.
func (c Commitment) CommittedAt() time.Time {
	return c.committedAt
}

// WaitlistPosition returns the waitlist position of a soft reservation.
// Returns nil for direct stock assignments.
func (c Commitment) WaitlistPosition() *int64 {
	return c.waitlistPosition
}

func (c *Commitment) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *Commitment) setLineItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.lineItemID = id
	return nil
}

func (c *Commitment) setCommittedAt(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("committedAt")
	}
	c.committedAt = t
	return nil
}
