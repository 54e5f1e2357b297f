package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// DeliveryStage is the milestone a courier reports while carrying out a
// delivery.
type DeliveryStage int

const (
	// StageReady marks the order picked up and ready at the restaurant.
	StageReady DeliveryStage = iota
	// StageEnRoute marks the courier travelling to the customer.
	StageEnRoute
	// StageDelivered marks the handover to the customer.
	StageDelivered
)

func (s DeliveryStage) Validate() error {
	switch s {
	case StageReady, StageEnRoute, StageDelivered:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("delivery stage",
			fmt.Errorf("%d is not a valid stage", s))
	}
}

// AdvanceOrderCommand moves an order through the courier-driven delivery
// milestones: ready for pickup, en route, delivered.
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID
	stage     DeliveryStage

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a milestone command. The courier id is
// the acting courier, checked against the order's assignment.
func NewAdvanceOrderCommand(
	orderID kernel.UUID,
	courierID kernel.UUID,
	stage DeliveryStage,
) (AdvanceOrderCommand, error) {
	cmd := AdvanceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
		cmd.setStage(stage),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

func (c AdvanceOrderCommand) OrderID() kernel.UUID   { return c.orderID }
func (c AdvanceOrderCommand) CourierID() kernel.UUID { return c.courierID }
func (c AdvanceOrderCommand) Stage() DeliveryStage   { return c.stage }

func (c *AdvanceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *AdvanceOrderCommand) setStage(stage DeliveryStage) error {
	if err := stage.Validate(); err != nil {
		return err
	}

	c.stage = stage
	return nil
}
