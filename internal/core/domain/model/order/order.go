package order

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrNotAssigned is returned when a courier-authored transition is
	// attempted by a courier the order is not assigned to.
	ErrNotAssigned = errors.New("order is not assigned to this courier")

	// ErrItemsAreRequired is returned when an order is created with no lines.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("order items")

	// ErrRejectionReasonIsRequired is returned when a courier rejects an
	// assignment without giving a reason.
	ErrRejectionReasonIsRequired = errs.NewValueIsRequiredError("rejection reason")
)

// Order is the aggregate root for one purchase. All state changes go through
// the transition methods below; the status table in status.go decides which
// are legal, and every accepted transition records its timestamp.
type Order struct {
	id        kernel.UUID
	shortCode string

	customerID   kernel.UUID
	restaurantID kernel.UUID
	courierID    *kernel.UUID

	items      []Item
	totalPrice float64

	// pickup is denormalized from the restaurant at dispatch time.
	pickup             *kernel.GeoPoint
	dropoff            kernel.GeoPoint
	dropoffAddress     string
	deliveryDistanceKm float64
	deliveryFee        float64

	status Status

	placedAt          time.Time
	assignedAt        *time.Time
	courierAcceptedAt *time.Time
	courierRejectedAt *time.Time
	rejectionReason   string
	readyAt           *time.Time
	enRouteAt         *time.Time
	deliveredAt       *time.Time

	// version is the optimistic-concurrency token checked on every write.
	version int

	guard guard.ConstructorGuard
}

// NewOrder creates an order in Placed status. The total price is computed
// from the item snapshots and normalized to 2 decimals.
func NewOrder(
	id kernel.UUID,
	shortCode string,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	items []Item,
	dropoff kernel.GeoPoint,
	dropoffAddress string,
) (*Order, error) {
	o := &Order{
		status:   Placed,
		placedAt: time.Now().UTC(),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setShortCode(shortCode),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		o.setDropoff(dropoff, dropoffAddress),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persistence without re-running the
// creation-time side effects. The stored status and version are trusted but
// still validated for consistency.
func RestoreOrder(
	id kernel.UUID,
	shortCode string,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	courierID *kernel.UUID,
	items []Item,
	totalPrice float64,
	pickup *kernel.GeoPoint,
	dropoff kernel.GeoPoint,
	dropoffAddress string,
	deliveryDistanceKm float64,
	deliveryFee float64,
	status Status,
	timestamps Timestamps,
	rejectionReason string,
	version int,
) (*Order, error) {
	o := &Order{
		courierID:          courierID,
		totalPrice:         kernel.RoundMoney(totalPrice),
		pickup:             pickup,
		deliveryDistanceKm: deliveryDistanceKm,
		deliveryFee:        kernel.RoundMoney(deliveryFee),
		status:             status,
		placedAt:           timestamps.PlacedAt,
		assignedAt:         timestamps.AssignedAt,
		courierAcceptedAt:  timestamps.CourierAcceptedAt,
		courierRejectedAt:  timestamps.CourierRejectedAt,
		rejectionReason:    rejectionReason,
		readyAt:            timestamps.ReadyAt,
		enRouteAt:          timestamps.EnRouteAt,
		deliveredAt:        timestamps.DeliveredAt,
		version:            version,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setShortCode(shortCode),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		o.setDropoff(dropoff, dropoffAddress),
		status.Validate(),
		o.validateCourierInvariant(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Timestamps groups the lifecycle timestamps for RestoreOrder.
type Timestamps struct {
	PlacedAt          time.Time
	AssignedAt        *time.Time
	CourierAcceptedAt *time.Time
	CourierRejectedAt *time.Time
	ReadyAt           *time.Time
	EnRouteAt         *time.Time
	DeliveredAt       *time.Time
}

// Validate ensures the Order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID             { return o.id }
func (o *Order) ShortCode() string           { return o.shortCode }
func (o *Order) CustomerID() kernel.UUID     { return o.customerID }
func (o *Order) RestaurantID() kernel.UUID   { return o.restaurantID }
func (o *Order) Status() Status              { return o.status }
func (o *Order) TotalPrice() float64         { return o.totalPrice }
func (o *Order) DeliveryFee() float64        { return o.deliveryFee }
func (o *Order) DeliveryDistanceKm() float64 { return o.deliveryDistanceKm }
func (o *Order) DropoffAddress() string      { return o.dropoffAddress }
func (o *Order) Dropoff() kernel.GeoPoint    { return o.dropoff }
func (o *Order) RejectionReason() string     { return o.rejectionReason }
func (o *Order) Version() int                { return o.version }

// Courier returns the assigned courier's ID, or nil before assignment and
// after a rejection or cancellation.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// Pickup returns the restaurant location captured at dispatch time, or nil
// before the first assignment.
func (o *Order) Pickup() *kernel.GeoPoint {
	return o.pickup
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

func (o *Order) PlacedAt() time.Time           { return o.placedAt }
func (o *Order) AssignedAt() *time.Time        { return o.assignedAt }
func (o *Order) CourierAcceptedAt() *time.Time { return o.courierAcceptedAt }
func (o *Order) CourierRejectedAt() *time.Time { return o.courierRejectedAt }
func (o *Order) ReadyAt() *time.Time           { return o.readyAt }
func (o *Order) EnRouteAt() *time.Time         { return o.enRouteAt }
func (o *Order) DeliveredAt() *time.Time       { return o.deliveredAt }

// Confirm moves a placed order to Confirmed (restaurant accepted it).
func (o *Order) Confirm() error {
	return o.transitionTo(Confirmed)
}

// RejectByRestaurant moves a placed order to the terminal RestaurantRejected
// status.
func (o *Order) RejectByRestaurant() error {
	return o.transitionTo(RestaurantRejected)
}

// ValidateAssign reports whether the order can currently enter dispatch.
// Dispatch is legal from Confirmed and from CourierRejected (reassignment).
func (o *Order) ValidateAssign() error {
	if o.status.CanTransitionTo(Assigned) {
		return nil
	}
	return NewInvalidTransitionError(o.status, Assigned)
}

// AssignCourier records a successful dispatch: the claimed courier, the
// pickup location denormalized from the restaurant, the computed delivery
// distance, and the fee. Legal from Confirmed and CourierRejected.
func (o *Order) AssignCourier(
	courierID kernel.UUID,
	pickup kernel.GeoPoint,
	distanceKm float64,
	deliveryFee float64,
) error {
	if err := errors.Join(courierID.Validate(), pickup.Validate()); err != nil {
		return err
	}

	if err := o.transitionTo(Assigned); err != nil {
		return err
	}

	now := time.Now().UTC()
	o.courierID = &courierID
	o.pickup = &pickup
	o.deliveryDistanceKm = distanceKm
	o.deliveryFee = kernel.RoundMoney(deliveryFee)
	o.assignedAt = &now
	return nil
}

// AcceptByCourier records the assigned courier's acceptance. The acting
// courier must match the assignment, otherwise ErrNotAssigned.
func (o *Order) AcceptByCourier(courierID kernel.UUID) error {
	if err := o.verifyCourier(courierID); err != nil {
		return err
	}
	if err := o.transitionTo(CourierAccepted); err != nil {
		return err
	}

	now := time.Now().UTC()
	o.courierAcceptedAt = &now
	return nil
}

// RejectByCourier records the assigned courier's refusal and releases the
// courier reference. The order waits in CourierRejected for redispatch.
func (o *Order) RejectByCourier(courierID kernel.UUID, reason string) error {
	if err := o.verifyCourier(courierID); err != nil {
		return err
	}
	if reason == "" {
		return ErrRejectionReasonIsRequired
	}
	if err := o.transitionTo(CourierRejected); err != nil {
		return err
	}

	now := time.Now().UTC()
	o.courierRejectedAt = &now
	o.rejectionReason = reason
	o.courierID = nil
	return nil
}

// MarkReady records that the courier marked the order ready for pickup.
func (o *Order) MarkReady(courierID kernel.UUID) error {
	if err := o.verifyCourier(courierID); err != nil {
		return err
	}
	if err := o.transitionTo(Preparing); err != nil {
		return err
	}

	now := time.Now().UTC()
	o.readyAt = &now
	return nil
}

// StartTrip records that the courier left the restaurant with the order.
func (o *Order) StartTrip(courierID kernel.UUID) error {
	if err := o.verifyCourier(courierID); err != nil {
		return err
	}
	if err := o.transitionTo(EnRoute); err != nil {
		return err
	}

	now := time.Now().UTC()
	o.enRouteAt = &now
	return nil
}

// CompleteDelivery records the handover to the customer. The courier
// reference is preserved for history.
func (o *Order) CompleteDelivery(courierID kernel.UUID) error {
	if err := o.verifyCourier(courierID); err != nil {
		return err
	}
	if err := o.transitionTo(Delivered); err != nil {
		return err
	}

	now := time.Now().UTC()
	o.deliveredAt = &now
	return nil
}

// Cancel moves any non-terminal order to Cancelled and drops the courier
// reference. The caller is responsible for releasing the courier it held.
func (o *Order) Cancel() error {
	if err := o.transitionTo(Cancelled); err != nil {
		return err
	}

	o.courierID = nil
	return nil
}

// BumpVersion advances the optimistic-concurrency token after a successful
// conditional write.
func (o *Order) BumpVersion() {
	o.version++
}

func (o *Order) transitionTo(to Status) error {
	next, err := o.status.TransitionTo(to)
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

func (o *Order) verifyCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.courierID == nil || !o.courierID.IsEqual(courierID) {
		return ErrNotAssigned
	}
	return nil
}

func (o *Order) validateCourierInvariant() error {
	if o.status.RequiresCourier() && o.courierID == nil {
		return errs.NewValueIsRequiredErrorWithCause("courier",
			fmt.Errorf("status %s requires an assigned courier", o.status))
	}
	if o.courierID == nil {
		return nil
	}
	if !o.status.RequiresCourier() && o.status != Delivered {
		return errs.NewValueIsInvalidError("courier must not be set in status " + o.status.String())
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setShortCode(code string) error {
	if err := ValidateShortCode(code); err != nil {
		return err
	}
	o.shortCode = code
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	total := 0.0
	copied := make([]Item, len(items))
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		copied[i] = item
		total += item.Subtotal()
	}

	o.items = copied
	if o.totalPrice == 0 {
		o.totalPrice = kernel.RoundMoney(total)
	}
	return nil
}

func (o *Order) setDropoff(dropoff kernel.GeoPoint, address string) error {
	if err := dropoff.Validate(); err != nil {
		return err
	}
	if address == "" {
		return errs.NewValueIsRequiredError("dropoff address")
	}
	o.dropoff = dropoff
	o.dropoffAddress = address
	return nil
}
