package courier

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier")
	// ErrCourierIsBusy is returned when marking busy a courier that already holds an order.
	ErrCourierIsBusy = errors.New("courier already holds an order")
	// ErrCourierIsNotEligible is returned when claiming a courier that is not
	// approved, online, and available.
	ErrCourierIsNotEligible = errors.New("courier is not eligible for dispatch")
	// ErrLocationIsUnknown is returned when dispatch needs a location the
	// courier has never reported.
	ErrLocationIsUnknown = errors.New("courier location is unknown")
)

// Courier is the aggregate root for a delivery agent.
type Courier struct {
	id       kernel.UUID
	name     string
	vehicle  VehicleKind
	approval ApprovalStatus

	isOnline    bool
	isAvailable bool

	location          *kernel.GeoPoint
	locationUpdatedAt *time.Time

	currentOrderID  *kernel.UUID
	totalDeliveries int
	rating          float64

	guard guard.ConstructorGuard
}

// NewCourier registers a courier. The account starts with a pending
// approval, offline and unavailable, with no reported location.
func NewCourier(id kernel.UUID, name string, vehicle VehicleKind) (*Courier, error) {
	c := &Courier{
		approval: ApprovalPending,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setVehicle(vehicle),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier rebuilds a courier from persistence. The availability
// invariants are re-validated so a corrupted row cannot enter the domain.
func RestoreCourier(
	id kernel.UUID,
	name string,
	vehicle VehicleKind,
	approval ApprovalStatus,
	isOnline bool,
	isAvailable bool,
	location *kernel.GeoPoint,
	locationUpdatedAt *time.Time,
	currentOrderID *kernel.UUID,
	totalDeliveries int,
	rating float64,
) (*Courier, error) {
	c := &Courier{
		approval:          approval,
		isOnline:          isOnline,
		isAvailable:       isAvailable,
		location:          location,
		locationUpdatedAt: locationUpdatedAt,
		currentOrderID:    currentOrderID,
		totalDeliveries:   totalDeliveries,
		rating:            rating,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setVehicle(vehicle),
		approval.Validate(),
		c.validateAvailabilityInvariant(),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the Courier was built through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

func (c *Courier) ID() kernel.UUID          { return c.id }
func (c *Courier) Name() string             { return c.name }
func (c *Courier) Vehicle() VehicleKind     { return c.vehicle }
func (c *Courier) Approval() ApprovalStatus { return c.approval }
func (c *Courier) IsOnline() bool           { return c.isOnline }
func (c *Courier) IsAvailable() bool        { return c.isAvailable }
func (c *Courier) TotalDeliveries() int     { return c.totalDeliveries }
func (c *Courier) Rating() float64          { return c.rating }

// Location returns the last reported location, or nil if the courier has
// never reported one.
func (c *Courier) Location() *kernel.GeoPoint {
	return c.location
}

// LocationUpdatedAt returns when the location was last reported.
func (c *Courier) LocationUpdatedAt() *time.Time {
	return c.locationUpdatedAt
}

// CurrentOrder returns the order the courier holds, or nil.
func (c *Courier) CurrentOrder() *kernel.UUID {
	return c.currentOrderID
}

// Approve passes the administrative gate.
func (c *Courier) Approve() error {
	if c.approval == ApprovalRejected {
		return errs.NewValueIsInvalidErrorWithCause("approval status",
			fmt.Errorf("cannot approve a rejected account"))
	}
	c.approval = ApprovalAccepted
	return nil
}

// RejectAccount fails the administrative gate and takes the courier out of
// rotation.
func (c *Courier) RejectAccount() {
	c.approval = ApprovalRejected
	c.isOnline = false
	c.isAvailable = false
}

// SetOnline toggles the courier's shift. Going offline always clears
// availability; going online restores it unless an order is in hand.
func (c *Courier) SetOnline(online bool) {
	c.isOnline = online
	if !online {
		c.isAvailable = false
		return
	}
	c.isAvailable = c.currentOrderID == nil
}

// UpdateLocation records a new reported position. Location updates are
// last-write-wins and independent of order state.
func (c *Courier) UpdateLocation(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	c.location = &point
	c.locationUpdatedAt = &now
	return nil
}

// IsEligible reports whether the dispatcher may consider this courier:
// approved, online, available, and holding no order.
func (c *Courier) IsEligible() bool {
	return c.approval == ApprovalAccepted &&
		c.isOnline &&
		c.isAvailable &&
		c.currentOrderID == nil
}

// MarkBusy claims the courier for an order. It refuses a courier that is
// not eligible; the persistence layer additionally enforces the claim as a
// compare-and-set so two dispatchers cannot both succeed.
func (c *Courier) MarkBusy(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if c.currentOrderID != nil {
		return ErrCourierIsBusy
	}
	if !c.IsEligible() {
		return ErrCourierIsNotEligible
	}

	c.currentOrderID = &orderID
	c.isAvailable = false
	return nil
}

// MarkFree releases the courier after a rejection, cancellation, or
// delivery. Availability returns only while the courier is online.
func (c *Courier) MarkFree() {
	c.currentOrderID = nil
	c.isAvailable = c.isOnline
}

// CompleteDelivery releases the courier and credits the delivery.
func (c *Courier) CompleteDelivery() {
	c.totalDeliveries++
	c.MarkFree()
}

func (c *Courier) validateAvailabilityInvariant() error {
	if c.isAvailable && !c.isOnline {
		return errs.NewValueIsInvalidErrorWithCause("availability",
			fmt.Errorf("offline courier cannot be available"))
	}
	if c.isAvailable && c.currentOrderID != nil {
		return errs.NewValueIsInvalidErrorWithCause("availability",
			fmt.Errorf("courier holding an order cannot be available"))
	}
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setVehicle(vehicle VehicleKind) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}
	c.vehicle = vehicle
	return nil
}
