package unit

import (
	"fmt"

	"stitchfactory/internal/pkg/errs"
)

// SecondaryStatus tracks the reservation state of a unit.
// It implements a state machine with defined transitions:
//
//	Uncommitted ──┬──> Assigned            (stock unit, hard reservation)
//	              └──> Committed ──> Assigned  (production unit, soft then hard)
//
// Assigned is final: an assigned unit belongs to exactly one order line item
// and is never offered as an allocation candidate again.
type SecondaryStatus int

const (
	// UnknownSecondary represents an invalid or undefined status.
	UnknownSecondary SecondaryStatus = iota

	// Uncommitted marks a unit free to be claimed by any order.
	Uncommitted

	// Committed marks a unit softly reserved for an order while the unit is
	// not yet physically ready. The reservation carries a waitlist position.
	Committed

	// Assigned marks a unit hard-bound to exactly one order line item.
	Assigned
)

func getSecondaryStatusStrings() map[SecondaryStatus]string {
	return map[SecondaryStatus]string{
		UnknownSecondary: "Unknown",
		Uncommitted:      "Uncommitted",
		Committed:        "Committed",
		Assigned:         "Assigned",
	}
}

// Validate checks if the SecondaryStatus value is valid.
func (s SecondaryStatus) Validate() error {
	if s != Uncommitted && s != Committed && s != Assigned {
		return errs.NewValueIsInvalidErrorWithCause("secondary status",
			fmt.Errorf("%d is not a valid secondary status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s SecondaryStatus) String() string {
	if str, ok := getSecondaryStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Commit transitions the status to Committed.
// Only an Uncommitted unit can be softly reserved.
func (s SecondaryStatus) Commit() (SecondaryStatus, error) {
	if s != Uncommitted {
		return 0, errs.NewValueIsInvalidErrorWithCause("secondary status",
			fmt.Errorf("%s is not a valid status to commit", s.String()))
	}
	return Committed, nil
}

// Assign transitions the status to Assigned.
// Valid from Uncommitted (direct stock assignment) and from Committed
// (a softly reserved unit became physically ready).
func (s SecondaryStatus) Assign() (SecondaryStatus, error) {
	if s != Uncommitted && s != Committed {
		return 0, errs.NewValueIsInvalidErrorWithCause("secondary status",
			fmt.Errorf("%s is not a valid status to assign", s.String()))
	}
	return Assigned, nil
}
