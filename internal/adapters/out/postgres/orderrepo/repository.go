// Package orderrepo persists the order aggregate. Every write is guarded
// by the aggregate's version column, so two transactions racing on the
// same order cannot silently overwrite each other.
package orderrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.OrderRepository = &GormOrderRepository{}

// GormOrderRepository is the GORM implementation of ports.OrderRepository.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a repository over the given session.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts a new order together with its lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the aggregate back conditioned on the version it was read
// at. A lost race surfaces as ports.ErrConcurrentModification and the
// caller is expected to retry from a fresh read. On success the
// aggregate's version is bumped to match the stored row.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	// Select("*") forces cleared columns (courier_id after a rejection)
	// to be written; a plain struct update would skip them as zero values.
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", clause.Associations).
		Updates(dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrConcurrentModification
	}

	aggregate.BumpVersion()
	return nil
}

// Get loads an order with its lines by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	var dto OrderDTO

	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByShortCode loads an order by its customer-facing code.
func (r *GormOrderRepository) GetByShortCode(ctx context.Context, shortCode string) (*order.Order, error) {
	var dto OrderDTO

	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&dto, "short_code = ?", shortCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shortCode", shortCode)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllAwaitingDispatch returns orders waiting for a courier, oldest
// first, so the redispatch job serves the longest-waiting customer.
func (r *GormOrderRepository) GetAllAwaitingDispatch(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO

	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("status IN ?", []int{int(order.Confirmed), int(order.CourierRejected)}).
		Order("placed_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, dErr := toDomain(dto)
		if dErr != nil {
			return nil, dErr
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}
