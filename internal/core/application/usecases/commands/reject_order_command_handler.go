package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// RejectOrderCommandHandler applies the restaurant's terminal rejection of
// a placed order.
type RejectOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.NotificationGateway
}

// NewRejectOrderCommandHandler creates a handler for restaurant
// rejections.
func NewRejectOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.NotificationGateway,
) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle moves the order to RestaurantRejected.
func (h RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) error {
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
	rejected, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !rejected.RestaurantID().IsEqual(cmd.RestaurantID()) {
		return ErrOrderNotOwnedByRestaurant
	}

	if err = rejected.RejectByRestaurant(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, rejected); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publish(ctx, h.notifier, orderEvent(ports.EventRestaurantRejected, rejected, nil))
	return nil
}
