// Package queries contains the read side of the service. Query handlers
// bypass the aggregates and read their projections straight from the
// database, returning flat response models.
package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetCourierActiveOrdersQueryIsNotConstructed = errors.New(
	"GetCourierActiveOrdersQuery must be created via NewGetCourierActiveOrdersQuery constructor",
)

// GetCourierActiveOrdersQuery retrieves the orders a courier is currently
// working: assigned, accepted, preparing or en route.
type GetCourierActiveOrdersQuery struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCourierActiveOrdersQuery creates the query for the given courier.
func NewGetCourierActiveOrdersQuery(courierID kernel.UUID) (GetCourierActiveOrdersQuery, error) {
	q := GetCourierActiveOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := courierID.Validate(); err != nil {
		return GetCourierActiveOrdersQuery{}, err
	}
	q.courierID = courierID

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierActiveOrdersQueryIsNotConstructed)
}

func (q GetCourierActiveOrdersQuery) CourierID() kernel.UUID { return q.courierID }

// GetCourierActiveOrdersQueryResponse is one active order as the courier
// app shows it.
type GetCourierActiveOrdersQueryResponse struct {
	ID                 kernel.UUID
	ShortCode          string
	Status             order.Status
	DropoffAddress     string
	DeliveryDistanceKm float64
	DeliveryFee        float64
}
