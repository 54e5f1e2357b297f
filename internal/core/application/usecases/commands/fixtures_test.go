package commands_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"

	"github.com/stretchr/testify/require"
)

func geoPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func orderItems(t *testing.T) []order.Item {
	t.Helper()
	pizza, err := order.NewItem(kernel.NewUUID(), "Pizza Margherita", 850, 1)
	require.NoError(t, err)
	soda, err := order.NewItem(kernel.NewUUID(), "Soda", 150, 2)
	require.NoError(t, err)
	return []order.Item{pizza, soda}
}

func placedOrderFor(t *testing.T, customerID, restaurantID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		order.NewShortCode(),
		customerID,
		restaurantID,
		orderItems(t),
		geoPoint(t, 36.74, 3.08),
		"5 Rue Larbi Ben M'hidi",
	)
	require.NoError(t, err)
	return o
}

func confirmedOrderFor(t *testing.T, restaurantID kernel.UUID) *order.Order {
	t.Helper()
	o := placedOrderFor(t, kernel.NewUUID(), restaurantID)
	require.NoError(t, o.Confirm())
	return o
}

func activeRestaurant(t *testing.T, id kernel.UUID, minimum float64) *restaurant.Restaurant {
	t.Helper()
	location := geoPoint(t, 36.7538, 3.0588)
	r, err := restaurant.NewRestaurant(id, "Le Gourmet", &location, minimum, true)
	require.NoError(t, err)
	return r
}

func inactiveRestaurant(t *testing.T, id kernel.UUID) *restaurant.Restaurant {
	t.Helper()
	location := geoPoint(t, 36.7538, 3.0588)
	r, err := restaurant.NewRestaurant(id, "Closed Kitchen", &location, 0, false)
	require.NoError(t, err)
	return r
}

func eligibleCourierAt(t *testing.T, lat, lng float64) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), "Courier", courier.VehicleMotorcycle)
	require.NoError(t, err)
	require.NoError(t, c.Approve())
	c.SetOnline(true)
	require.NoError(t, c.UpdateLocation(geoPoint(t, lat, lng)))
	return c
}
