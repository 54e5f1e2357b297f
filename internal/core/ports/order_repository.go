package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository is the persistence contract for order aggregates.
//
// Update is version-checked: every write compares the aggregate's version
// against the stored row and bumps it, so two actors cannot silently
// overwrite each other's transition.
type OrderRepository interface {
	// Add persists a newly placed order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order with an optimistic
	// version check. Returns ErrConcurrentModification when the stored
	// version no longer matches; the caller re-reads and retries the
	// whole operation.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id. Returns errs.ErrObjectNotFound when
	// no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByShortCode retrieves an order by its human-facing code.
	GetByShortCode(ctx context.Context, shortCode string) (*order.Order, error)

	// GetAllAwaitingDispatch retrieves orders in Confirmed or
	// CourierRejected status, oldest first. The redispatch job feeds on
	// this.
	GetAllAwaitingDispatch(ctx context.Context) ([]*order.Order, error)
}
