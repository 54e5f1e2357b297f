package orderrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database representation of the order aggregate.
type OrderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShortCode string    `gorm:"size:8;uniqueIndex"`

	CustomerID   uuid.UUID  `gorm:"type:uuid;index"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;index"`
	CourierID    *uuid.UUID `gorm:"type:uuid;index"`

	Items      []ItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	TotalPrice float64

	PickupLat          *float64
	PickupLng          *float64
	DropoffLat         float64
	DropoffLng         float64
	DropoffAddress     string
	DeliveryDistanceKm float64
	DeliveryFee        float64

	Status int `gorm:"index"`

	PlacedAt          time.Time
	AssignedAt        *time.Time
	CourierAcceptedAt *time.Time
	CourierRejectedAt *time.Time
	RejectionReason   string
	ReadyAt           *time.Time
	EnRouteAt         *time.Time
	DeliveredAt       *time.Time

	Version int
}

// TableName overrides the default GORM naming.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one stored order line. Lines are immutable after the order
// is placed, so they are only ever inserted together with the order row.
type ItemDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	Name      string
	Price     float64
	Quantity  int
}

// TableName overrides the default GORM naming.
func (ItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		ShortCode:          aggregate.ShortCode(),
		CustomerID:         aggregate.CustomerID().Bytes(),
		RestaurantID:       aggregate.RestaurantID().Bytes(),
		TotalPrice:         aggregate.TotalPrice(),
		DropoffLat:         aggregate.Dropoff().Latitude(),
		DropoffLng:         aggregate.Dropoff().Longitude(),
		DropoffAddress:     aggregate.DropoffAddress(),
		DeliveryDistanceKm: aggregate.DeliveryDistanceKm(),
		DeliveryFee:        aggregate.DeliveryFee(),
		Status:             int(aggregate.Status()),
		PlacedAt:           aggregate.PlacedAt(),
		AssignedAt:         aggregate.AssignedAt(),
		CourierAcceptedAt:  aggregate.CourierAcceptedAt(),
		CourierRejectedAt:  aggregate.CourierRejectedAt(),
		RejectionReason:    aggregate.RejectionReason(),
		ReadyAt:            aggregate.ReadyAt(),
		EnRouteAt:          aggregate.EnRouteAt(),
		DeliveredAt:        aggregate.DeliveredAt(),
		Version:            aggregate.Version(),
	}

	if courierID := aggregate.Courier(); courierID != nil {
		id := courierID.Bytes()
		dto.CourierID = &id
	}

	if pickup := aggregate.Pickup(); pickup != nil {
		lat, lng := pickup.Latitude(), pickup.Longitude()
		dto.PickupLat = &lat
		dto.PickupLng = &lng
	}

	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			OrderID:   dto.ID,
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			Price:     item.Price(),
			Quantity:  item.Quantity(),
		})
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		restored, cErr := kernel.UUIDFromBytes(dto.CourierID[:])
		if cErr != nil {
			return nil, cErr
		}
		courierID = &restored
	}

	dropoff, err := kernel.NewGeoPoint(dto.DropoffLat, dto.DropoffLng)
	if err != nil {
		return nil, err
	}

	var pickup *kernel.GeoPoint
	if dto.PickupLat != nil && dto.PickupLng != nil {
		point, pErr := kernel.NewGeoPoint(*dto.PickupLat, *dto.PickupLng)
		if pErr != nil {
			return nil, pErr
		}
		pickup = &point
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, line := range dto.Items {
		productID, iErr := kernel.UUIDFromBytes(line.ProductID[:])
		if iErr != nil {
			return nil, iErr
		}
		item, iErr := order.NewItem(productID, line.Name, line.Price, line.Quantity)
		if iErr != nil {
			return nil, iErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.ShortCode,
		customerID,
		restaurantID,
		courierID,
		items,
		dto.TotalPrice,
		pickup,
		dropoff,
		dto.DropoffAddress,
		dto.DeliveryDistanceKm,
		dto.DeliveryFee,
		order.Status(dto.Status),
		order.Timestamps{
			PlacedAt:          dto.PlacedAt,
			AssignedAt:        dto.AssignedAt,
			CourierAcceptedAt: dto.CourierAcceptedAt,
			CourierRejectedAt: dto.CourierRejectedAt,
			ReadyAt:           dto.ReadyAt,
			EnRouteAt:         dto.EnRouteAt,
			DeliveredAt:       dto.DeliveredAt,
		},
		dto.RejectionReason,
		dto.Version,
	)
}
