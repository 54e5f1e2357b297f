// Package ports defines the contracts between the domain/application core
// and infrastructure: repositories, the unit of work, the notification
// gateway and the user directory. Adapters implement these interfaces,
// keeping the core free of persistence and transport concerns.
package ports

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
)

// ErrConcurrentModification is returned when a compare-and-set write finds
// that another actor got there first: a courier claim lost its race or an
// order row moved past the expected version. Callers pick the next
// candidate or retry the whole operation.
var ErrConcurrentModification = errors.New("concurrent modification")

// CourierRepository is the persistence contract for courier aggregates.
//
// Plain state changes (location, shift, approval) go through Update.
// The dispatch claim does NOT: it must be atomic under concurrent
// dispatchers, so it has its own compare-and-set method.
type CourierRepository interface {
	// Add persists a newly registered courier.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier. It is a plain
	// last-write-wins update and must not be used to claim a courier
	// for an order.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier by id. Returns errs.ErrObjectNotFound
	// when no such courier exists.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllEligible retrieves couriers that may be considered for
	// dispatch: approved, online, available and holding no order. The
	// excluded ids are filtered out, which is how a reassignment skips
	// the courier that just rejected the order.
	GetAllEligible(ctx context.Context, excluding ...kernel.UUID) ([]*courier.Courier, error)

	// Claim atomically marks the courier busy with the given order. The
	// implementation must perform a single conditional write that only
	// succeeds while the courier is still available and order-free.
	// Returns ErrConcurrentModification when the courier was taken (or
	// went offline) between ranking and claiming; the dispatcher then
	// falls through to the next candidate.
	//
	// Example:
	//
	//	for _, candidate := range ranked {
	//	    err := repo.Claim(ctx, candidate.Courier.ID(), orderID)
	//	    if errors.Is(err, ports.ErrConcurrentModification) {
	//	        continue
	//	    }
	//	    ...
	//	}
	Claim(ctx context.Context, courierID kernel.UUID, orderID kernel.UUID) error

	// Release clears the courier's current order and restores
	// availability if the courier is still online. Used on courier
	// rejection and order cancellation.
	Release(ctx context.Context, courierID kernel.UUID) error
}
