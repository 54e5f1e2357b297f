// Package restaurant implements the Restaurant entity. Orders reference
// restaurants; the core reads their location for dispatch and their
// minimum-order threshold at placement, but never mutates them.
package restaurant

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrNameIsRequired             = errs.NewValueIsRequiredError("name")
	ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant")
	// ErrLocationIsNotSet is returned when dispatch needs a pickup point the
	// restaurant never configured.
	ErrLocationIsNotSet = errors.New("restaurant has no location configured")
)

// Restaurant owns a pickup location and a minimum-order threshold.
type Restaurant struct {
	id                kernel.UUID
	name              string
	location          *kernel.GeoPoint
	minimumOrderPrice float64
	isActive          bool

	guard guard.ConstructorGuard
}

// NewRestaurant creates a restaurant. Location may be nil until configured;
// dispatch fails for restaurants without one.
func NewRestaurant(
	id kernel.UUID,
	name string,
	location *kernel.GeoPoint,
	minimumOrderPrice float64,
	isActive bool,
) (*Restaurant, error) {
	r := &Restaurant{
		location: location,
		isActive: isActive,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setMinimumOrderPrice(minimumOrderPrice),
	); err != nil {
		return nil, err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Restaurant) Validate() error {
	if r == nil {
		return ErrRestaurantIsNotConstructed
	}
	return r.guard.Validate(ErrRestaurantIsNotConstructed)
}

func (r *Restaurant) ID() kernel.UUID            { return r.id }
func (r *Restaurant) Name() string               { return r.name }
func (r *Restaurant) MinimumOrderPrice() float64 { return r.minimumOrderPrice }
func (r *Restaurant) IsActive() bool             { return r.isActive }

// Location returns the configured pickup point, or nil.
func (r *Restaurant) Location() *kernel.GeoPoint {
	return r.location
}

// PickupPoint returns the location required for dispatch, failing when none
// is configured.
func (r *Restaurant) PickupPoint() (kernel.GeoPoint, error) {
	if r.location == nil {
		return kernel.GeoPoint{}, ErrLocationIsNotSet
	}
	return *r.location, nil
}

// MeetsMinimum reports whether an order total clears the restaurant's floor.
func (r *Restaurant) MeetsMinimum(orderTotal float64) bool {
	return orderTotal >= r.minimumOrderPrice
}

func (r *Restaurant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Restaurant) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	r.name = name
	return nil
}

func (r *Restaurant) setMinimumOrderPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("minimum order price",
			fmt.Errorf("%.2f is negative", price))
	}
	r.minimumOrderPrice = kernel.RoundMoney(price)
	return nil
}
