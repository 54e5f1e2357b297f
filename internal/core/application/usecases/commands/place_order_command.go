package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand represents a customer's request to place an order.
// Item names and prices are snapshots taken by the caller at placement
// time; later catalog changes never touch a placed order.
//
// Example:
//
//	items := []order.Item{burger, fries}
//	cmd, err := NewPlaceOrderCommand(
//	    kernel.NewUUID(), customerID, restaurantID,
//	    items, dropoff, "12 Rue Didouche Mourad",
//	)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID

	items          []order.Item
	dropoff        kernel.GeoPoint
	dropoffAddress string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates an order placement command, validating the
// ids, the item lines and the dropoff.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	items []order.Item,
	dropoff kernel.GeoPoint,
	dropoffAddress string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setItems(items),
		cmd.setDropoff(dropoff, dropoffAddress),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID      { return c.orderID }
func (c PlaceOrderCommand) CustomerID() kernel.UUID   { return c.customerID }
func (c PlaceOrderCommand) RestaurantID() kernel.UUID { return c.restaurantID }
func (c PlaceOrderCommand) Dropoff() kernel.GeoPoint  { return c.dropoff }
func (c PlaceOrderCommand) DropoffAddress() string    { return c.dropoffAddress }

// Items returns a copy of the order lines.
func (c PlaceOrderCommand) Items() []order.Item {
	out := make([]order.Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *PlaceOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *PlaceOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.customerID = id
	return nil
}

func (c *PlaceOrderCommand) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.restaurantID = id
	return nil
}

func (c *PlaceOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return order.ErrItemsAreRequired
	}

	copied := make([]order.Item, len(items))
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		copied[i] = item
	}

	c.items = copied
	return nil
}

func (c *PlaceOrderCommand) setDropoff(dropoff kernel.GeoPoint, address string) error {
	if err := dropoff.Validate(); err != nil {
		return err
	}
	if address == "" {
		return errs.NewValueIsRequiredError("dropoff address")
	}

	c.dropoff = dropoff
	c.dropoffAddress = address
	return nil
}
