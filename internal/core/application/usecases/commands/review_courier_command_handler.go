package commands

import (
	"context"
)

// ReviewCourierCommandHandler applies the administrative account decision.
type ReviewCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewReviewCourierCommandHandler creates a handler for account reviews.
func NewReviewCourierCommandHandler(uowFactory CourierUoWFactory) ReviewCourierCommandHandler {
	return ReviewCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle approves or rejects the courier account. Rejection also takes
// the courier out of rotation.
func (h ReviewCourierCommandHandler) Handle(ctx context.Context, cmd ReviewCourierCommand) error {
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
	reviewed, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if cmd.Approved() {
		if err = reviewed.Approve(); err != nil {
			return err
		}
	} else {
		reviewed.RejectAccount()
	}

	if err = courierRepo.Update(ctx, reviewed); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
