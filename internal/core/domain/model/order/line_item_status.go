package order

import (
	"fmt"

	"stitchfactory/internal/pkg/errs"
)

// LineItemStatus represents the allocation state of a single line item.
// It implements a state machine with defined transitions:
//
//	PendingAssignment ──┬──> Assigned
//	                    ├──> LineItemInProduction ──> Assigned
//	                    └──> PendingProduction ──> LineItemInProduction
//
// Assigned means a physical unit is hard-bound to the item. LineItemInProduction
// means the item is linked to a committed, not-yet-finished unit via a
// waitlist entry. PendingProduction means demand was queued with the
// production request for the item's universal SKU.
type LineItemStatus int

const (
	// UnknownLineItemStatus represents an invalid or undefined status.
	UnknownLineItemStatus LineItemStatus = iota

	// PendingAssignment is the initial status: no allocation attempted or
	// the last attempt failed.
	PendingAssignment

	// Assigned means a physical unit is bound to this item.
	Assigned

	// LineItemInProduction means the item holds a soft reservation on a unit that
	// manufacturing has not completed yet.
	LineItemInProduction

	// PendingProduction means no unit existed and demand was queued for
	// manufacture of the item's universal SKU.
	PendingProduction
)

func getLineItemStatusStrings() map[LineItemStatus]string {
	return map[LineItemStatus]string{
		UnknownLineItemStatus: "Unknown",
		PendingAssignment:     "PendingAssignment",
		Assigned:              "Assigned",
		LineItemInProduction:  "InProduction",
		PendingProduction:     "PendingProduction",
	}
}

// Validate checks if the LineItemStatus value is valid.
func (s LineItemStatus) Validate() error {
	if s != PendingAssignment && s != Assigned && s != LineItemInProduction && s != PendingProduction {
		return errs.NewValueIsInvalidErrorWithCause("line item status",
			fmt.Errorf("%d is not a valid line item status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s LineItemStatus) String() string {
	if str, ok := getLineItemStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Assign transitions the status to Assigned. Valid from PendingAssignment
// (direct stock assignment) and from LineItemInProduction (the committed unit was
// manufactured and handed over).
func (s LineItemStatus) Assign() (LineItemStatus, error) {
	if s != PendingAssignment && s != LineItemInProduction {
		return 0, errs.NewValueIsInvalidErrorWithCause("line item status",
			fmt.Errorf("%s is not a valid status to assign", s.String()))
	}
	return Assigned, nil
}

// MarkInProduction transitions the status to LineItemInProduction. Valid from
// PendingAssignment (a production unit was softly reserved) and from
// PendingProduction (queued demand was bound to a fresh production unit).
func (s LineItemStatus) MarkInProduction() (LineItemStatus, error) {
	if s != PendingAssignment && s != PendingProduction {
		return 0, errs.NewValueIsInvalidErrorWithCause("line item status",
			fmt.Errorf("%s is not a valid status to mark in production", s.String()))
	}
	return LineItemInProduction, nil
}

// MarkPendingProduction transitions the status to PendingProduction.
// Only an unallocated item can be queued for manufacture.
func (s LineItemStatus) MarkPendingProduction() (LineItemStatus, error) {
	if s != PendingAssignment {
		return 0, errs.NewValueIsInvalidErrorWithCause("line item status",
			fmt.Errorf("%s is not a valid status to queue for production", s.String()))
	}
	return PendingProduction, nil
}
