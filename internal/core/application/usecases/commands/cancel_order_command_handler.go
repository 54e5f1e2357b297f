package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/ports"
)

// ErrOrderNotOwnedByCustomer is returned when a customer tries to cancel
// somebody else's order.
var ErrOrderNotOwnedByCustomer = errors.New("order belongs to a different customer")

// CancelOrderCommandHandler cancels an order and releases its courier.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationGateway
}

// NewCancelOrderCommandHandler creates a handler for cancellations.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationGateway,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle cancels the order. If a courier was assigned it returns to the
// eligible pool; the cancellation notification still names it so the
// courier learns the trip is off.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	cancelled, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !cancelled.CustomerID().IsEqual(cmd.CustomerID()) {
		return ErrOrderNotOwnedByCustomer
	}

	heldBy := cancelled.Courier()
	if err = cancelled.Cancel(); err != nil {
		return err
	}

	if heldBy != nil {
		if err = uow.CourierRepository().Release(ctx, *heldBy); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, cancelled); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publish(ctx, h.notifier, orderEvent(ports.EventOrderCancelled, cancelled, heldBy))
	return nil
}
