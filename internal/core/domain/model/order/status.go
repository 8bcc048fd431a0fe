package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with one-directional transitions: an order never
// returns to an earlier state, and cancellation is only reachable from the two
// earliest states.
//
// State transitions:
//
//	New ──> Assigned ──> Delivering ──> Delivered
//	 │          │
//	 └──────────┴──> Cancelled
//
// Status is a value object that validates state transitions and provides string
// representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status when an order is placed from a cart.
	// Orders in this status are visible to couriers and waiting to be claimed.
	New

	// Assigned indicates a courier has claimed the order.
	Assigned

	// Delivering indicates the assigned courier is on the way.
	Delivering

	// Delivered indicates the order reached the customer.
	// This is the terminal success state; only rating is possible afterwards.
	Delivered

	// Cancelled indicates the customer aborted the order before delivery started.
	// This is the terminal abort state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		New:        "new",
		Assigned:   "assigned",
		Delivering: "delivering",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:        "new",
		Assigned:   "assigned",
		Delivering: "delivering",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

// StatusFromString parses a persisted status name back into a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase persisted name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible from this status.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Assign transitions the status to Assigned.
//
// Valid transition: New -> Assigned. Any other source status means the order is
// no longer claimable and a ConflictError is returned: the order was either
// already claimed by a concurrent courier or has left the lifecycle.
func (s Status) Assign() (Status, error) {
	if s != New {
		return Unknown, errs.NewConflictErrorWithCause(
			"order is not available for assignment",
			fmt.Errorf("status is %s", s),
		)
	}
	return Assigned, nil
}

// StartDelivery transitions the status to Delivering.
//
// Valid transition: Assigned -> Delivering.
func (s Status) StartDelivery() (Status, error) {
	if s != Assigned {
		return Unknown, errs.NewConflictErrorWithCause(
			"delivery cannot be started",
			fmt.Errorf("status is %s", s),
		)
	}
	return Delivering, nil
}

// CompleteDelivery transitions the status to Delivered.
//
// Valid transition: Delivering -> Delivered.
func (s Status) CompleteDelivery() (Status, error) {
	if s != Delivering {
		return Unknown, errs.NewConflictErrorWithCause(
			"delivery cannot be completed",
			fmt.Errorf("status is %s", s),
		)
	}
	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions: New -> Cancelled, Assigned -> Cancelled. Once delivery has
// started the order can no longer be aborted.
func (s Status) Cancel() (Status, error) {
	if s != New && s != Assigned {
		return Unknown, errs.NewConflictErrorWithCause(
			"order cannot be cancelled",
			fmt.Errorf("status is %s", s),
		)
	}
	return Cancelled, nil
}

// ValidateCanHaveCourier validates the consistency between order status and
// courier assignment when restoring from persistence.
//
// Rules:
//   - New orders must not have a courier assigned.
//   - Assigned, Delivering, and Delivered orders must have one.
//   - Cancelled orders may have one (cancellation after assignment).
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if !courier && (s == Assigned || s == Delivering || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order must have a courier", s))
	}
	if courier && s == New {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order must not have a courier", s))
	}
	return nil
}
