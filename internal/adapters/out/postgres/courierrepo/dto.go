package courierrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO is the database representation of the courier aggregate.
// IsAvailable and CurrentOrderID are the columns the atomic claim
// conditions on, so they must always reflect the aggregate state.
type CourierDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string
	Vehicle  string
	Approval int

	IsOnline    bool
	IsAvailable bool `gorm:"index"`

	LocationLat       *float64
	LocationLng       *float64
	LocationUpdatedAt *time.Time

	CurrentOrderID  *uuid.UUID `gorm:"type:uuid;index"`
	TotalDeliveries int
	Rating          float64
}

// TableName overrides the default GORM naming.
func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	dto := CourierDTO{
		ID:                aggregate.ID().Bytes(),
		Name:              aggregate.Name(),
		Vehicle:           string(aggregate.Vehicle()),
		Approval:          int(aggregate.Approval()),
		IsOnline:          aggregate.IsOnline(),
		IsAvailable:       aggregate.IsAvailable(),
		LocationUpdatedAt: aggregate.LocationUpdatedAt(),
		TotalDeliveries:   aggregate.TotalDeliveries(),
		Rating:            aggregate.Rating(),
	}

	if location := aggregate.Location(); location != nil {
		lat, lng := location.Latitude(), location.Longitude()
		dto.LocationLat = &lat
		dto.LocationLng = &lng
	}

	if orderID := aggregate.CurrentOrder(); orderID != nil {
		id := orderID.Bytes()
		dto.CurrentOrderID = &id
	}

	return dto
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.LocationLat != nil && dto.LocationLng != nil {
		point, pErr := kernel.NewGeoPoint(*dto.LocationLat, *dto.LocationLng)
		if pErr != nil {
			return nil, pErr
		}
		location = &point
	}

	var currentOrderID *kernel.UUID
	if dto.CurrentOrderID != nil {
		restored, oErr := kernel.UUIDFromBytes(dto.CurrentOrderID[:])
		if oErr != nil {
			return nil, oErr
		}
		currentOrderID = &restored
	}

	return courier.RestoreCourier(
		id,
		dto.Name,
		courier.VehicleKind(dto.Vehicle),
		courier.ApprovalStatus(dto.Approval),
		dto.IsOnline,
		dto.IsAvailable,
		location,
		dto.LocationUpdatedAt,
		currentOrderID,
		dto.TotalDeliveries,
		dto.Rating,
	)
}
