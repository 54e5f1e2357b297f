package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// RejectAssignmentCommandHandler processes a courier's refusal: the
// courier is released, the order drops to CourierRejected and a
// reassignment is attempted right away, skipping the courier that just
// refused. When nobody else is available the order waits for the
// redispatch job.
type RejectAssignmentCommandHandler struct {
	uowFactory UoWFactory
	tariff     services.Tariff
	notifier   ports.NotificationGateway
}

// NewRejectAssignmentCommandHandler creates a handler for courier
// rejections.
func NewRejectAssignmentCommandHandler(
	uowFactory UoWFactory,
	tariff services.Tariff,
	notifier ports.NotificationGateway,
) RejectAssignmentCommandHandler {
	return RejectAssignmentCommandHandler{
		uowFactory: uowFactory,
		tariff:     tariff,
		notifier:   notifier,
	}
}

// Handle records the rejection and immediately redispatches.
func (h RejectAssignmentCommandHandler) Handle(ctx context.Context, cmd RejectAssignmentCommand) error {
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

	if err = rejected.RejectByCourier(cmd.CourierID(), cmd.Reason()); err != nil {
		return err
	}
	if err = uow.CourierRepository().Release(ctx, cmd.CourierID()); err != nil {
		return err
	}

	claimed, dispatchErr := dispatchOrder(ctx, uow, rejected, h.tariff, cmd.CourierID())
	if dispatchErr != nil && !errors.Is(dispatchErr, ErrNoCourierAvailable) {
		return dispatchErr
	}

	if err = orderRepo.Update(ctx, rejected); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	rejector := cmd.CourierID()
	publish(ctx, h.notifier, orderEvent(ports.EventCourierRejected, rejected, &rejector))
	if dispatchErr == nil {
		publish(ctx, h.notifier, orderEvent(ports.EventCourierAssigned, rejected, &claimed))
	}
	return nil
}
