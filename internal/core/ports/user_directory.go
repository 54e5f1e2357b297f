package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
)

// UserDirectory resolves authenticated users to the domain actors they
// act as. The HTTP layer uses it to check that a token's subject may
// operate on a given order.
type UserDirectory interface {
	// CourierIDForUser maps a user account to the courier it drives as.
	// Returns errs.ErrObjectNotFound when the user is not a courier.
	CourierIDForUser(ctx context.Context, userID kernel.UUID) (kernel.UUID, error)

	// IsRestaurantAdmin reports whether the user administers the given
	// restaurant.
	IsRestaurantAdmin(ctx context.Context, userID kernel.UUID, restaurantID kernel.UUID) (bool, error)
}
