package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCourierActiveOrdersQueryHandler reads a courier's in-flight orders
// directly from the orders table.
type GetCourierActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierActiveOrdersQueryHandler creates a handler for active-order
// lookups.
func NewGetCourierActiveOrdersQueryHandler(db *gorm.DB) GetCourierActiveOrdersQueryHandler {
	return GetCourierActiveOrdersQueryHandler{db: db}
}

// Handle returns the courier's orders in Assigned, CourierAccepted,
// Preparing or EnRoute status, oldest assignment first.
func (h GetCourierActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCourierActiveOrdersQuery,
) ([]GetCourierActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetCourierActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			short_code,
			status,
			dropoff_address,
			delivery_distance_km,
			delivery_fee
		FROM orders
		WHERE courier_id = ? AND status IN (?, ?, ?, ?)
		ORDER BY assigned_at
	`, query.CourierID().Bytes(),
		order.Assigned, order.CourierAccepted, order.Preparing, order.EnRoute,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetCourierActiveOrdersQueryResponse
		var id uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&resp.ShortCode,
			&status,
			&resp.DropoffAddress,
			&resp.DeliveryDistanceKm,
			&resp.DeliveryFee,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Status = order.Status(status)
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
