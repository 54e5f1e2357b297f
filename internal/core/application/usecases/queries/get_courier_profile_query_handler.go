package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCourierProfileQueryHandler reads a courier profile with statistics
// aggregated over that courier's delivered orders. Delivered orders keep
// their courier reference, which is what makes the join possible.
type GetCourierProfileQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierProfileQueryHandler creates a handler for profile lookups.
func NewGetCourierProfileQueryHandler(db *gorm.DB) GetCourierProfileQueryHandler {
	return GetCourierProfileQueryHandler{db: db}
}

// Handle returns the courier's profile, or errs.ErrObjectNotFound for an
// unknown courier.
func (h GetCourierProfileQueryHandler) Handle(
	ctx context.Context,
	query GetCourierProfileQuery,
) (GetCourierProfileQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierProfileQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.name,
			c.vehicle,
			c.approval,
			c.is_online,
			c.is_available,
			c.total_deliveries,
			c.rating,
			COUNT(o.id),
			COALESCE(SUM(o.delivery_fee), 0)
		FROM couriers c
		LEFT JOIN orders o ON o.courier_id = c.id AND o.status = ?
		WHERE c.id = ?
		GROUP BY
			c.id, c.name, c.vehicle, c.approval,
			c.is_online, c.is_available, c.total_deliveries, c.rating
	`, order.Delivered, query.CourierID().Bytes()).Rows()
	if err != nil {
		return GetCourierProfileQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetCourierProfileQueryResponse{}, err
		}
		return GetCourierProfileQueryResponse{},
			errs.NewObjectNotFoundError("courier", query.CourierID())
	}

	var resp GetCourierProfileQueryResponse
	var id uuid.UUID
	var vehicle string
	var approval int

	err = rows.Scan(
		&id,
		&resp.Name,
		&vehicle,
		&approval,
		&resp.IsOnline,
		&resp.IsAvailable,
		&resp.TotalDeliveries,
		&resp.Rating,
		&resp.DeliveredOrders,
		&resp.FeeEarnings,
	)
	if err != nil {
		return GetCourierProfileQueryResponse{}, err
	}

	courierID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetCourierProfileQueryResponse{}, err
	}
	resp.ID = courierID
	resp.Vehicle = courier.VehicleKind(vehicle)
	resp.Approval = courier.ApprovalStatus(approval)

	return resp, rows.Err()
}
