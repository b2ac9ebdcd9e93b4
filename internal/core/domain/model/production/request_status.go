package production

import (
	"fmt"

	"stitchfactory/internal/pkg/errs"
)

// RequestStatus represents the lifecycle state of a production request.
//
// State transitions:
//
//	Pending ──> InProgress ──> Completed
//
// Only a Pending request accepts merged demand; once manufacturing picks a
// batch up, new demand for the same universal SKU opens a fresh request.
type RequestStatus int

const (
	// UnknownRequestStatus represents an invalid or undefined status.
	UnknownRequestStatus RequestStatus = iota

	// Pending means the request is aggregating demand and has not been
	// scheduled by manufacturing yet.
	Pending

	// InProgress means the manufacturing batch has started.
	InProgress

	// Completed means all requested units were manufactured.
	Completed
)

func getRequestStatusStrings() map[RequestStatus]string {
	return map[RequestStatus]string{
		UnknownRequestStatus: "Unknown",
		Pending:              "Pending",
		InProgress:           "InProgress",
		Completed:            "Completed",
	}
}

// Validate checks if the RequestStatus value is valid.
func (s RequestStatus) Validate() error {
	if s != Pending && s != InProgress && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause("request status",
			fmt.Errorf("%d is not a valid production request status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s RequestStatus) String() string {
	if str, ok := getRequestStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
