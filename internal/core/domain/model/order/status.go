package order

import (
	"fmt"

	"stitchfactory/internal/pkg/errs"
)

// Status represents the overall state of an order. It is derived from the
// collective state of the order's line items and never set directly by
// callers; the status aggregator recomputes it after every allocation pass.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	UnknownStatus Status = iota

	// Placed is the initial status of an order whose line items have not
	// been allocated yet.
	Placed

	// Wash indicates every allocated line item received a physical unit and
	// nothing is waiting on manufacture; units are at the wash/finishing stage.
	Wash

	// Processing indicates a mixed order: some line items received units,
	// others are waiting on manufacture.
	Processing

	// InProduction indicates every allocated line item is waiting on
	// manufacture, either queued or softly committed to an unfinished unit.
	InProduction
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "Unknown",
		Placed:        "Placed",
		Wash:          "Wash",
		Processing:    "Processing",
		InProduction:  "InProduction",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s != Placed && s != Wash && s != Processing && s != InProduction {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
