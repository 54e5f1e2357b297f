package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// AdvanceOrderCommandHandler applies courier-reported delivery milestones.
// Completing a delivery also frees the courier and credits the delivery to
// its running total, which the dispatcher uses for load balancing.
type AdvanceOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationGateway
}

// NewAdvanceOrderCommandHandler creates a handler for delivery
// milestones.
func NewAdvanceOrderCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationGateway,
) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle advances the order to the reported milestone.
func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
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
	advanced, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	var event ports.EventKind
	switch cmd.Stage() {
	case StageReady:
		err = advanced.MarkReady(cmd.CourierID())
		event = ports.EventOrderReady
	case StageEnRoute:
		err = advanced.StartTrip(cmd.CourierID())
		event = ports.EventOrderEnRoute
	case StageDelivered:
		err = advanced.CompleteDelivery(cmd.CourierID())
		event = ports.EventOrderDelivered
	}
	if err != nil {
		return err
	}

	if cmd.Stage() == StageDelivered {
		if err = h.creditCourier(ctx, uow, cmd); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, advanced); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	courierID := cmd.CourierID()
	publish(ctx, h.notifier, orderEvent(event, advanced, &courierID))
	return nil
}

func (h AdvanceOrderCommandHandler) creditCourier(ctx context.Context, uow UoW, cmd AdvanceOrderCommand) error {
	courierRepo := uow.CourierRepository()
	delivering, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	delivering.CompleteDelivery()
	return courierRepo.Update(ctx, delivering)
}
