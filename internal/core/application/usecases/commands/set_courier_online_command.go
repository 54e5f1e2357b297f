package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrSetCourierOnlineCommandIsNotConstructed = errors.New(
	"SetCourierOnlineCommand must be created via NewSetCourierOnlineCommand constructor",
)

// SetCourierOnlineCommand toggles a courier's shift. Going offline pulls
// the courier out of the eligible pool without touching an order already
// in hand.
type SetCourierOnlineCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	online    bool

	guard guard.ConstructorGuard
}

// NewSetCourierOnlineCommand creates a shift toggle command.
func NewSetCourierOnlineCommand(courierID kernel.UUID, online bool) (SetCourierOnlineCommand, error) {
	cmd := SetCourierOnlineCommand{
		online: online,
		guard:  guard.NewConstructorGuard(),
	}

	if err := cmd.setCourierID(courierID); err != nil {
		return SetCourierOnlineCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCourierOnlineCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierOnlineCommandIsNotConstructed)
}

func (c SetCourierOnlineCommand) CourierID() kernel.UUID { return c.courierID }
func (c SetCourierOnlineCommand) Online() bool           { return c.online }

func (c *SetCourierOnlineCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
