package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
)

// RestaurantRepository is the persistence contract for restaurants. Orders
// reference restaurants for the minimum-order check at placement and the
// pickup point at dispatch.
type RestaurantRepository interface {
	// Add persists a new restaurant.
	Add(ctx context.Context, aggregate *restaurant.Restaurant) error

	// Update persists changes to an existing restaurant.
	Update(ctx context.Context, aggregate *restaurant.Restaurant) error

	// Get retrieves a restaurant by id. Returns errs.ErrObjectNotFound
	// when no such restaurant exists.
	Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error)
}
