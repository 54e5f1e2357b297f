package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

// EventKind names an order lifecycle event carried by a notification.
type EventKind string

const (
	EventOrderPlaced        EventKind = "order_placed"
	EventOrderConfirmed     EventKind = "order_confirmed"
	EventRestaurantRejected EventKind = "restaurant_rejected"
	EventCourierAssigned    EventKind = "courier_assigned"
	EventCourierAccepted    EventKind = "courier_accepted"
	EventCourierRejected    EventKind = "courier_rejected"
	EventOrderReady         EventKind = "order_ready"
	EventOrderEnRoute       EventKind = "order_en_route"
	EventOrderDelivered     EventKind = "order_delivered"
	EventOrderCancelled     EventKind = "order_cancelled"
)

// OrderEvent is the payload published when an order changes state.
// CourierID is set only for events that involve one.
type OrderEvent struct {
	Kind       EventKind
	OrderID    kernel.UUID
	ShortCode  string
	CustomerID kernel.UUID
	CourierID  *kernel.UUID
	OccurredAt time.Time
}

// NotificationGateway publishes order events to interested parties.
//
// Notifications are fire-and-forget: handlers publish after commit, log a
// publish failure and never let it affect the outcome of the command.
type NotificationGateway interface {
	Publish(ctx context.Context, event OrderEvent) error
}
