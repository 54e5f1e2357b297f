package http

import (
	"time"
)

// ErrorDTO is the uniform error body.
type ErrorDTO struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlaceOrderRequest is the checkout payload. Item names and prices are
// snapshots taken by the caller's catalog at checkout time.
type PlaceOrderRequest struct {
	RestaurantID   string                  `json:"restaurantId" validate:"required,uuid"`
	Items          []PlaceOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	DropoffLat     float64                 `json:"dropoffLat" validate:"latitude"`
	DropoffLng     float64                 `json:"dropoffLng" validate:"longitude"`
	DropoffAddress string                  `json:"dropoffAddress" validate:"required"`
}

// PlaceOrderItemRequest is one order line in the checkout payload.
type PlaceOrderItemRequest struct {
	ProductID string  `json:"productId" validate:"required,uuid"`
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
}

// OrderPlacedResponse returns the new order's id. The human-facing short
// code is generated server side and shows up on the order reads.
type OrderPlacedResponse struct {
	ID string `json:"id"`
}

// RejectAssignmentRequest carries the courier's reason for turning an
// assignment down.
type RejectAssignmentRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// CreateCourierRequest registers a courier account.
type CreateCourierRequest struct {
	Name    string `json:"name" validate:"required"`
	Vehicle string `json:"vehicle" validate:"required,oneof=motorcycle car bicycle"`
}

// CourierCreatedResponse returns the new courier's id.
type CourierCreatedResponse struct {
	ID string `json:"id"`
}

// ReviewCourierRequest approves or rejects a pending courier account.
type ReviewCourierRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

// UpdateLocationRequest is a courier position report.
type UpdateLocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// ShiftRequest toggles the courier's shift.
type ShiftRequest struct {
	Online *bool `json:"online" validate:"required"`
}

// ActiveOrderResponse is one order the courier currently works on.
type ActiveOrderResponse struct {
	ID                 string  `json:"id"`
	ShortCode          string  `json:"shortCode"`
	Status             string  `json:"status"`
	DropoffAddress     string  `json:"dropoffAddress"`
	DeliveryDistanceKm float64 `json:"deliveryDistanceKm"`
	DeliveryFee        float64 `json:"deliveryFee"`
}

// CourierProfileResponse is the courier account with delivery statistics.
type CourierProfileResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Vehicle         string  `json:"vehicle"`
	Approval        string  `json:"approval"`
	IsOnline        bool    `json:"isOnline"`
	IsAvailable     bool    `json:"isAvailable"`
	TotalDeliveries int     `json:"totalDeliveries"`
	Rating          float64 `json:"rating"`
	DeliveredOrders int     `json:"deliveredOrders"`
	FeeEarnings     float64 `json:"feeEarnings"`
}

// UncompletedOrderResponse is one in-flight order for monitoring.
type UncompletedOrderResponse struct {
	ID        string    `json:"id"`
	ShortCode string    `json:"shortCode"`
	Status    string    `json:"status"`
	CourierID *string   `json:"courierId,omitempty"`
	PlacedAt  time.Time `json:"placedAt"`
}
