// Package commands contains the write operations of the service, one
// command and one handler per operation. All handlers follow the same
// shape: validate the command, open a unit of work, mutate the aggregates,
// commit, then publish notifications fire-and-forget.
package commands

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// Unit of Work interfaces scope each handler to the repositories it
// actually needs.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository bound to the
	// current transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory provides the courier repository bound to the
	// current transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// RestaurantRepoFactory provides the restaurant repository bound to
	// the current transaction.
	RestaurantRepoFactory interface {
		RestaurantRepository() ports.RestaurantRepository
	}

	// CourierUoW manages transactions for courier-only operations.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	// CourierUoWFactory creates courier unit of work instances.
	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions across orders, couriers and restaurants.
	// Used by handlers that coordinate changes between aggregates, most
	// importantly the dispatch path.
	UoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		RestaurantRepoFactory
	}

	// UoWFactory creates cross-aggregate unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)

// orderEvent builds the notification payload for an order state change.
// courierID is passed explicitly because some events fire after the order
// already dropped its courier reference.
func orderEvent(kind ports.EventKind, o *order.Order, courierID *kernel.UUID) ports.OrderEvent {
	return ports.OrderEvent{
		Kind:       kind,
		OrderID:    o.ID(),
		ShortCode:  o.ShortCode(),
		CustomerID: o.CustomerID(),
		CourierID:  courierID,
		OccurredAt: time.Now().UTC(),
	}
}

// publish delivers an event after the transaction committed. Failures are
// logged and swallowed: a lost notification never undoes a state change.
func publish(ctx context.Context, gateway ports.NotificationGateway, event ports.OrderEvent) {
	if gateway == nil {
		return
	}
	if err := gateway.Publish(ctx, event); err != nil {
		slog.Warn("notification publish failed",
			"event", string(event.Kind),
			"orderId", event.OrderID.String(),
			"error", err)
	}
}
