package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command, isolating
// concurrent operations from each other.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Client code manages the
// lifecycle explicitly: Begin, then Commit, with a deferred Rollback as
// the safety net.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction. Fails when no transaction
	// is active.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. A rollback after a
	// successful commit is a no-op.
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// CourierRepository returns a repository bound to the current
	// transaction.
	CourierRepository() CourierRepository

	// RestaurantRepository returns a repository bound to the current
	// transaction.
	RestaurantRepository() RestaurantRepository
}
