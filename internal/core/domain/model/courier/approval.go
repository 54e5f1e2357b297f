package courier

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// ApprovalStatus is the administrative account gate, independent of the
// operational availability flags.
type ApprovalStatus int

const (
	// ApprovalPending is the initial state after registration.
	ApprovalPending ApprovalStatus = iota
	// ApprovalAccepted makes the courier eligible for dispatch.
	ApprovalAccepted
	// ApprovalRejected permanently bars the account from dispatch.
	ApprovalRejected
)

func (a ApprovalStatus) String() string {
	switch a {
	case ApprovalPending:
		return "Pending"
	case ApprovalAccepted:
		return "Accepted"
	case ApprovalRejected:
		return "Rejected"
	default:
		return fmt.Sprintf("ApprovalStatus(%d)", int(a))
	}
}

func (a ApprovalStatus) Validate() error {
	switch a {
	case ApprovalPending, ApprovalAccepted, ApprovalRejected:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("approval status",
			fmt.Errorf("%d is not a valid approval status", a))
	}
}

// VehicleKind is the courier's vehicle category.
type VehicleKind string

const (
	VehicleMotorcycle VehicleKind = "motorcycle"
	VehicleCar        VehicleKind = "car"
	VehicleBicycle    VehicleKind = "bicycle"
)

func (v VehicleKind) Validate() error {
	switch v {
	case VehicleMotorcycle, VehicleCar, VehicleBicycle:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("vehicle kind",
			fmt.Errorf("%q is not a valid vehicle kind", string(v)))
	}
}
