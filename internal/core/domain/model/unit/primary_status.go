package unit

import (
	"fmt"

	"stitchfactory/internal/pkg/errs"
)

// PrimaryStatus tracks where a physical unit is in its manufacturing life.
// It is orthogonal to the reservation state (SecondaryStatus): a unit still
// on the production line can already be softly reserved for an order.
type PrimaryStatus int

const (
	// UnknownPrimary represents an invalid or undefined status.
	UnknownPrimary PrimaryStatus = iota

	// Stock marks a finished unit physically present on a shelf.
	Stock

	// Production marks a unit that manufacturing has scheduled but not yet completed.
	Production

	// Wash marks a unit that has been handed to the wash/finishing station.
	Wash
)

func getPrimaryStatusStrings() map[PrimaryStatus]string {
	return map[PrimaryStatus]string{
		UnknownPrimary: "Unknown",
		Stock:          "Stock",
		Production:     "Production",
		Wash:           "Wash",
	}
}

// Validate checks if the PrimaryStatus value is valid.
func (s PrimaryStatus) Validate() error {
	if s != Stock && s != Production && s != Wash {
		return errs.NewValueIsInvalidErrorWithCause("primary status",
			fmt.Errorf("%d is not a valid primary status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s PrimaryStatus) String() string {
	if str, ok := getPrimaryStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
