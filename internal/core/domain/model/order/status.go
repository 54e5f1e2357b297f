package order

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. The numeric values are
// part of the persistence format and must not be reordered.
//
// State machine:
//
//	Placed ──┬──> Confirmed ──> Assigned ──┬──> CourierAccepted ──> Preparing ──> EnRoute ──> Delivered
//	         │                    ^        │
//	         │                    │        └──> CourierRejected ──┐
//	         │                    └──────────────────────────────┘ (reassignment)
//	         └──> RestaurantRejected
//
//	any non-terminal ──> Cancelled
type Status int

const (
	// Placed is the initial status after checkout.
	Placed Status = iota
	// Confirmed means the restaurant accepted the order.
	Confirmed
	// Assigned means a courier has been claimed for the order.
	Assigned
	// CourierAccepted means the assigned courier confirmed the assignment.
	CourierAccepted
	// CourierRejected means the courier turned the assignment down; the order
	// waits for redispatch.
	CourierRejected
	// RestaurantRejected is terminal: the restaurant declined the order.
	RestaurantRejected
	// Preparing means the courier marked the order ready for pickup.
	Preparing
	// EnRoute means the courier is driving to the customer.
	EnRoute
	// Delivered is terminal: the order reached the customer.
	Delivered
	// Cancelled is terminal: an operator cancelled the order.
	Cancelled
)

// ErrInvalidTransition classifies rejected status transitions.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports the exact transition that was refused.
// The order's state is unchanged when this error is returned.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// validTransitions is the single authoritative transition table. Every status
// change in the system goes through it; terminal states have no entries.
var validTransitions = map[Status][]Status{
	Placed:          {Confirmed, RestaurantRejected, Cancelled},
	Confirmed:       {Assigned, Cancelled},
	Assigned:        {CourierAccepted, CourierRejected, Cancelled},
	CourierAccepted: {Preparing, Cancelled},
	CourierRejected: {Assigned, Cancelled},
	Preparing:       {EnRoute, Cancelled},
	EnRoute:         {Delivered, Cancelled},
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Placed:             "Placed",
		Confirmed:          "Confirmed",
		Assigned:           "Assigned",
		CourierAccepted:    "CourierAccepted",
		CourierRejected:    "CourierRejected",
		RestaurantRejected: "RestaurantRejected",
		Preparing:          "Preparing",
		EnRoute:            "EnRoute",
		Delivered:          "Delivered",
		Cancelled:          "Cancelled",
	}
}

// Validate checks that the status is one of the defined enumeration values.
// Values restored from persistence must pass this check before use.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer. It is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	return s == RestaurantRejected || s == Delivered || s == Cancelled
}

// RequiresCourier reports whether an order in this status must hold a
// courier reference.
func (s Status) RequiresCourier() bool {
	switch s {
	case Assigned, CourierAccepted, Preparing, EnRoute:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the transition table permits moving to
// the target status.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range validTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status if the transition is legal, or an
// InvalidTransitionError leaving the current status in force.
func (s Status) TransitionTo(to Status) (Status, error) {
	if err := errors.Join(s.Validate(), to.Validate()); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(to) {
		return 0, NewInvalidTransitionError(s, to)
	}
	return to, nil
}
