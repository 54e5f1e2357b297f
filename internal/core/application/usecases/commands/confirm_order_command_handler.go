package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// ErrOrderNotOwnedByRestaurant is returned when a restaurant acts on an
// order placed at a different restaurant.
var ErrOrderNotOwnedByRestaurant = errors.New("order belongs to a different restaurant")

// ConfirmOrderCommandHandler confirms a placed order and tries to assign
// a courier in the same transaction. When no courier is available the
// order stays Confirmed and the redispatch job picks it up later.
type ConfirmOrderCommandHandler struct {
	uowFactory UoWFactory
	tariff     services.Tariff
	notifier   ports.NotificationGateway
}

// NewConfirmOrderCommandHandler creates a handler for order confirmation.
func NewConfirmOrderCommandHandler(
	uowFactory UoWFactory,
	tariff services.Tariff,
	notifier ports.NotificationGateway,
) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		tariff:     tariff,
		notifier:   notifier,
	}
}

// Handle confirms the order and attempts an immediate dispatch.
func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
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
	confirmed, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !confirmed.RestaurantID().IsEqual(cmd.RestaurantID()) {
		return ErrOrderNotOwnedByRestaurant
	}

	if err = confirmed.Confirm(); err != nil {
		return err
	}

	claimed, dispatchErr := dispatchOrder(ctx, uow, confirmed, h.tariff)
	if dispatchErr != nil && !errors.Is(dispatchErr, ErrNoCourierAvailable) {
		return dispatchErr
	}

	if err = orderRepo.Update(ctx, confirmed); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publish(ctx, h.notifier, orderEvent(ports.EventOrderConfirmed, confirmed, nil))
	if dispatchErr == nil {
		publish(ctx, h.notifier, orderEvent(ports.EventCourierAssigned, confirmed, &claimed))
	}
	return nil
}
