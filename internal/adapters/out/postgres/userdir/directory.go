// Package userdir resolves authenticated users to domain actors from the
// users table.
package userdir

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ ports.UserDirectory = &GormUserDirectory{}

// UserDTO is one account row. A courier account carries its courier ID,
// a restaurant-admin account the restaurant it administers.
type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role         string
	CourierID    *uuid.UUID `gorm:"type:uuid;index"`
	RestaurantID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName overrides the default GORM naming.
func (UserDTO) TableName() string {
	return "users"
}

// GormUserDirectory is the GORM implementation of ports.UserDirectory.
type GormUserDirectory struct {
	db *gorm.DB
}

// NewGormUserDirectory creates a directory over a GORM connection.
func NewGormUserDirectory(db *gorm.DB) *GormUserDirectory {
	return &GormUserDirectory{db: db}
}

// CourierIDForUser maps a user account to its courier, failing with
// errs.ErrObjectNotFound when the account is not a courier.
func (d *GormUserDirectory) CourierIDForUser(ctx context.Context, userID kernel.UUID) (kernel.UUID, error) {
	var dto UserDTO

	err := d.db.WithContext(ctx).First(&dto, "id = ?", userID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.UUID{}, errs.NewObjectNotFoundError("user", userID)
		}
		return kernel.UUID{}, err
	}

	if dto.CourierID == nil {
		return kernel.UUID{}, errs.NewObjectNotFoundError("courier for user", userID)
	}

	return kernel.UUIDFromBytes(dto.CourierID[:])
}

// IsRestaurantAdmin reports whether the user administers the restaurant.
func (d *GormUserDirectory) IsRestaurantAdmin(
	ctx context.Context,
	userID kernel.UUID,
	restaurantID kernel.UUID,
) (bool, error) {
	var count int64

	err := d.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("id = ? AND restaurant_id = ?", userID.Bytes(), restaurantID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
