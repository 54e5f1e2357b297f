package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// ErrNoCourierAvailable is returned when every eligible courier was either
// filtered out or lost to a concurrent claim. The order stays dispatchable
// and the redispatch job retries it later.
var ErrNoCourierAvailable = errors.New("no courier available")

// DispatchOrderCommandHandler assigns the best available courier to an
// order.
//
// Example:
//
//	handler := NewDispatchOrderCommandHandler(uowFactory, tariff, notifier)
//	cmd, _ := NewDispatchOrderCommand(orderID)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrNoCourierAvailable) {
//	    // order stays Confirmed; the redispatch job will retry
//	}
type DispatchOrderCommandHandler struct {
	uowFactory UoWFactory
	tariff     services.Tariff
	notifier   ports.NotificationGateway
}

// NewDispatchOrderCommandHandler creates a handler for courier dispatch.
func NewDispatchOrderCommandHandler(
	uowFactory UoWFactory,
	tariff services.Tariff,
	notifier ports.NotificationGateway,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory: uowFactory,
		tariff:     tariff,
		notifier:   notifier,
	}
}

// Handle dispatches the order: ranks the eligible couriers by distance,
// load and id, then claims them in order until one claim sticks. Returns
// ErrNoCourierAvailable when the candidate list is exhausted.
func (h DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) error {
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
	dispatched, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	claimed, err := dispatchOrder(ctx, uow, dispatched, h.tariff)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, dispatched); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publish(ctx, h.notifier, orderEvent(ports.EventCourierAssigned, dispatched, &claimed))
	return nil
}

// dispatchOrder is the claim loop shared by dispatch, confirmation and
// courier-rejection handling. It mutates the order on success and returns
// the claimed courier's id. The excluded ids keep a reassignment away from
// the courier that just rejected the order.
//
// Each claim is a conditional write; losing it to a concurrent dispatcher
// just moves on to the next candidate.
func dispatchOrder(
	ctx context.Context,
	uow UoW,
	dispatched *order.Order,
	tariff services.Tariff,
	excluding ...kernel.UUID,
) (kernel.UUID, error) {
	if err := dispatched.ValidateAssign(); err != nil {
		return kernel.UUID{}, err
	}

	rest, err := uow.RestaurantRepository().Get(ctx, dispatched.RestaurantID())
	if err != nil {
		return kernel.UUID{}, err
	}
	pickup, err := rest.PickupPoint()
	if err != nil {
		return kernel.UUID{}, err
	}

	distance, err := pickup.DistanceKm(dispatched.Dropoff())
	if err != nil {
		return kernel.UUID{}, err
	}
	fee, err := tariff.DeliveryFee(distance)
	if err != nil {
		return kernel.UUID{}, err
	}

	courierRepo := uow.CourierRepository()
	couriers, err := courierRepo.GetAllEligible(ctx, excluding...)
	if err != nil {
		return kernel.UUID{}, err
	}

	ranked, err := services.NewDispatcher().RankCandidates(pickup, couriers)
	if errors.Is(err, services.ErrNoCandidates) {
		return kernel.UUID{}, ErrNoCourierAvailable
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	for _, candidate := range ranked {
		err = courierRepo.Claim(ctx, candidate.Courier.ID(), dispatched.ID())
		if errors.Is(err, ports.ErrConcurrentModification) {
			continue
		}
		if err != nil {
			return kernel.UUID{}, err
		}

		if err = dispatched.AssignCourier(candidate.Courier.ID(), pickup, distance, fee); err != nil {
			return kernel.UUID{}, err
		}
		return candidate.Courier.ID(), nil
	}

	return kernel.UUID{}, ErrNoCourierAvailable
}
