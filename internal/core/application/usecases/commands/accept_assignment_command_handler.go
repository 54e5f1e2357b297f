package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// AcceptAssignmentCommandHandler records a courier's acceptance.
type AcceptAssignmentCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.NotificationGateway
}

// NewAcceptAssignmentCommandHandler creates a handler for courier
// acceptances.
func NewAcceptAssignmentCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.NotificationGateway,
) AcceptAssignmentCommandHandler {
	return AcceptAssignmentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle moves the order to CourierAccepted. Only the assigned courier
// may accept; anybody else gets order.ErrNotAssigned.
func (h AcceptAssignmentCommandHandler) Handle(ctx context.Context, cmd AcceptAssignmentCommand) error {
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
	accepted, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = accepted.AcceptByCourier(cmd.CourierID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, accepted); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	courierID := cmd.CourierID()
	publish(ctx, h.notifier, orderEvent(ports.EventCourierAccepted, accepted, &courierID))
	return nil
}
