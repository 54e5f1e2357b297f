package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetCourierProfileQueryIsNotConstructed = errors.New(
	"GetCourierProfileQuery must be created via NewGetCourierProfileQuery constructor",
)

// GetCourierProfileQuery retrieves a courier's profile with delivery
// statistics.
type GetCourierProfileQuery struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCourierProfileQuery creates the query for the given courier.
func NewGetCourierProfileQuery(courierID kernel.UUID) (GetCourierProfileQuery, error) {
	q := GetCourierProfileQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := courierID.Validate(); err != nil {
		return GetCourierProfileQuery{}, err
	}
	q.courierID = courierID

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierProfileQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierProfileQueryIsNotConstructed)
}

func (q GetCourierProfileQuery) CourierID() kernel.UUID { return q.courierID }

// GetCourierProfileQueryResponse is the courier profile: account state
// plus the delivered-order count and the fees earned across them.
type GetCourierProfileQueryResponse struct {
	ID              kernel.UUID
	Name            string
	Vehicle         courier.VehicleKind
	Approval        courier.ApprovalStatus
	IsOnline        bool
	IsAvailable     bool
	TotalDeliveries int
	Rating          float64
	DeliveredOrders int
	FeeEarnings     float64
}
