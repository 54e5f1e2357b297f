package commands

import (
	"context"
)

// SetCourierOnlineCommandHandler persists courier shift changes.
type SetCourierOnlineCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewSetCourierOnlineCommandHandler creates a handler for shift toggles.
func NewSetCourierOnlineCommandHandler(uowFactory CourierUoWFactory) SetCourierOnlineCommandHandler {
	return SetCourierOnlineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle toggles the courier's online flag. Availability follows the
// domain rules: offline always clears it, online restores it unless an
// order is in hand.
func (h SetCourierOnlineCommandHandler) Handle(ctx context.Context, cmd SetCourierOnlineCommand) error {
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

	courierRepo := uow.CourierRepository()
	toggled, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	toggled.SetOnline(cmd.Online())

	if err = courierRepo.Update(ctx, toggled); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
