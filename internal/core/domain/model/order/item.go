package order

import (
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

var (
	ErrItemNameIsRequired = errs.NewValueIsRequiredError("item name")
)

// Item is one order line. Name and price are snapshotted at order time so
// later catalog edits never alter historical orders.
type Item struct {
	productID kernel.UUID
	name      string
	price     float64
	quantity  int
}

// NewItem creates an order line with the catalog snapshot taken at checkout.
func NewItem(productID kernel.UUID, name string, price float64, quantity int) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if name == "" {
		return Item{}, ErrItemNameIsRequired
	}
	if price < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("item price",
			fmt.Errorf("%.2f is negative", price))
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("item quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return Item{
		productID: productID,
		name:      name,
		price:     kernel.RoundMoney(price),
		quantity:  quantity,
	}, nil
}

// ProductID returns the catalog reference of the line.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name snapshotted at order time.
func (i Item) Name() string {
	return i.name
}

// Price returns the unit price snapshotted at order time.
func (i Item) Price() float64 {
	return i.price
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// Subtotal returns price multiplied by quantity, rounded to 2 decimals.
func (i Item) Subtotal() float64 {
	return kernel.RoundMoney(i.price * float64(i.quantity))
}

func (i Item) Validate() error {
	if err := i.productID.Validate(); err != nil {
		return err
	}
	if i.name == "" {
		return ErrItemNameIsRequired
	}
	if i.quantity <= 0 {
		return errs.NewValueIsInvalidError("item quantity")
	}
	return nil
}
