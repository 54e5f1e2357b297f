package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var ErrRejectAssignmentCommandIsNotConstructed = errors.New(
	"RejectAssignmentCommand must be created via NewRejectAssignmentCommand constructor",
)

// RejectAssignmentCommand records the assigned courier refusing the
// delivery. A reason is mandatory; the order is immediately offered to the
// remaining couriers.
type RejectAssignmentCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

// NewRejectAssignmentCommand creates a courier rejection command.
func NewRejectAssignmentCommand(
	orderID kernel.UUID,
	courierID kernel.UUID,
	reason string,
) (RejectAssignmentCommand, error) {
	cmd := RejectAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
		cmd.setReason(reason),
	); err != nil {
		return RejectAssignmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrRejectAssignmentCommandIsNotConstructed)
}

func (c RejectAssignmentCommand) OrderID() kernel.UUID   { return c.orderID }
func (c RejectAssignmentCommand) CourierID() kernel.UUID { return c.courierID }
func (c RejectAssignmentCommand) Reason() string         { return c.reason }

func (c *RejectAssignmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RejectAssignmentCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *RejectAssignmentCommand) setReason(reason string) error {
	if reason == "" {
		return order.ErrRejectionReasonIsRequired
	}

	c.reason = reason
	return nil
}
