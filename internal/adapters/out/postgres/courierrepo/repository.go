// Package courierrepo persists the courier aggregate. The dispatch claim
// is a single conditional UPDATE, which is what keeps one courier from
// being handed two orders by concurrent dispatchers.
package courierrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ ports.CourierRepository = &GormCourierRepository{}

// GormCourierRepository is the GORM implementation of ports.CourierRepository.
type GormCourierRepository struct {
	db *gorm.DB
}

// NewGormCourierRepository creates a repository over the given session.
func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// Add inserts a newly registered courier.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the courier state back last-write-wins. Claims must not
// go through here; they belong to Claim.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Select("*") forces cleared columns (current_order_id after a
	// release) to be written despite being zero values.
	result := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id").
		Updates(dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("courier", aggregate.ID())
	}

	return nil
}

// Get loads a courier by ID.
func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	var dto CourierDTO

	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllEligible returns couriers that may be offered the order: approved,
// online, available, order-free, and not in the excluded set.
func (r *GormCourierRepository) GetAllEligible(
	ctx context.Context,
	excluding ...kernel.UUID,
) ([]*courier.Courier, error) {
	var dtos []CourierDTO

	tx := r.db.WithContext(ctx).
		Where("approval = ? AND is_online = ? AND is_available = ? AND current_order_id IS NULL",
			int(courier.ApprovalAccepted), true, true)

	if len(excluding) > 0 {
		excluded := make([]uuid.UUID, 0, len(excluding))
		for _, id := range excluding {
			excluded = append(excluded, id.Bytes())
		}
		tx = tx.Where("id NOT IN ?", excluded)
	}

	if err := tx.Find(&dtos).Error; err != nil {
		return nil, err
	}

	couriers := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, dErr := toDomain(dto)
		if dErr != nil {
			return nil, dErr
		}
		couriers = append(couriers, aggregate)
	}

	return couriers, nil
}

// Claim marks the courier busy with the order in one conditional UPDATE.
// The WHERE clause re-checks availability, so of two dispatchers racing
// for the same courier exactly one sees a row affected.
func (r *GormCourierRepository) Claim(ctx context.Context, courierID, orderID kernel.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("id = ? AND is_available = ? AND current_order_id IS NULL", courierID.Bytes(), true).
		Updates(map[string]any{
			"is_available":     false,
			"current_order_id": orderID.Bytes(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrConcurrentModification
	}

	return nil
}

// Release drops the courier's current order. Availability comes back only
// while the courier is still online.
func (r *GormCourierRepository) Release(ctx context.Context, courierID kernel.UUID) error {
	return r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("id = ?", courierID.Bytes()).
		Updates(map[string]any{
			"current_order_id": nil,
			"is_available":     gorm.Expr("is_online"),
		}).Error
}
