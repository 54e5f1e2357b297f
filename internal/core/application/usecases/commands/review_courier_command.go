package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrReviewCourierCommandIsNotConstructed = errors.New(
	"ReviewCourierCommand must be created via NewReviewCourierCommand constructor",
)

// ReviewCourierCommand resolves a courier's pending account review:
// approve the account for dispatch or reject it permanently.
type ReviewCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	approved  bool

	guard guard.ConstructorGuard
}

// NewReviewCourierCommand creates an account review command.
func NewReviewCourierCommand(courierID kernel.UUID, approved bool) (ReviewCourierCommand, error) {
	cmd := ReviewCourierCommand{
		approved: approved,
		guard:    guard.NewConstructorGuard(),
	}

	if err := cmd.setCourierID(courierID); err != nil {
		return ReviewCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewCourierCommand) Validate() error {
	return c.guard.Validate(ErrReviewCourierCommandIsNotConstructed)
}

func (c ReviewCourierCommand) CourierID() kernel.UUID { return c.courierID }
func (c ReviewCourierCommand) Approved() bool         { return c.approved }

func (c *ReviewCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
