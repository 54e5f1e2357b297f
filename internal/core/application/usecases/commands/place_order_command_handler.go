package commands

import (
	"context"
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

var (
	// ErrBelowMinimumOrder is returned when the order total does not
	// clear the restaurant's minimum-order threshold.
	ErrBelowMinimumOrder = errors.New("order total is below the restaurant minimum")

	// ErrRestaurantIsNotActive is returned when placing an order at a
	// deactivated restaurant.
	ErrRestaurantIsNotActive = errors.New("restaurant is not accepting orders")
)

// PlaceOrderCommandHandler creates orders in Placed status. The order gets
// a short human-facing code and waits for the restaurant's decision.
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationGateway
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationGateway,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle places the order. The restaurant must be active and the item
// total must clear its minimum-order threshold.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
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

	rest, err := uow.RestaurantRepository().Get(ctx, cmd.RestaurantID())
	if err != nil {
		return err
	}
	if !rest.IsActive() {
		return ErrRestaurantIsNotActive
	}

	items := cmd.Items()
	total := 0.0
	for _, item := range items {
		total += item.Subtotal()
	}
	total = kernel.RoundMoney(total)
	if !rest.MeetsMinimum(total) {
		return fmt.Errorf("%w: total %.2f, minimum %.2f",
			ErrBelowMinimumOrder, total, rest.MinimumOrderPrice())
	}

	placed, err := order.NewOrder(
		cmd.OrderID(),
		order.NewShortCode(),
		cmd.CustomerID(),
		cmd.RestaurantID(),
		items,
		cmd.Dropoff(),
		cmd.DropoffAddress(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publish(ctx, h.notifier, orderEvent(ports.EventOrderPlaced, placed, nil))
	return nil
}
