package restaurantrepo

import (
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
)

// RestaurantDTO is the database representation of a restaurant.
type RestaurantDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string
	LocationLat       *float64
	LocationLng       *float64
	MinimumOrderPrice float64
	IsActive          bool
}

// TableName overrides the default GORM naming.
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

func fromDomain(aggregate *restaurant.Restaurant) RestaurantDTO {
	dto := RestaurantDTO{
		ID:                aggregate.ID().Bytes(),
		Name:              aggregate.Name(),
		MinimumOrderPrice: aggregate.MinimumOrderPrice(),
		IsActive:          aggregate.IsActive(),
	}

	if location := aggregate.Location(); location != nil {
		lat, lng := location.Latitude(), location.Longitude()
		dto.LocationLat = &lat
		dto.LocationLng = &lng
	}

	return dto
}

func toDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
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

	return restaurant.NewRestaurant(id, dto.Name, location, dto.MinimumOrderPrice, dto.IsActive)
}
