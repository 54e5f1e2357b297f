package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cancelScene struct {
	orderRepo   *MockOrderRepository
	courierRepo *MockCourierRepository
	uow         *MockUoW
	factory     *MockUoWFactory
	notifier    *MockNotificationGateway
	handler     commands.CancelOrderCommandHandler
}

func newCancelScene(t *testing.T) *cancelScene {
	t.Helper()
	s := &cancelScene{
		orderRepo:   new(MockOrderRepository),
		courierRepo: new(MockCourierRepository),
		uow:         new(MockUoW),
		factory:     new(MockUoWFactory),
		notifier:    new(MockNotificationGateway),
	}
	s.factory.On("Create").Return(s.uow)
	s.uow.On("Begin", mock.Anything).Return(nil)
	s.uow.On("Rollback", mock.Anything).Return(nil)
	s.uow.On("OrderRepository").Return(s.orderRepo)
	s.uow.On("CourierRepository").Return(s.courierRepo)
	s.handler = commands.NewCancelOrderCommandHandler(s.factory, s.notifier)
	return s
}

func TestCancelOrderCommandHandler_Handle(t *testing.T) {
	restaurantID := kernel.NewUUID()

	t.Run("should cancel an assigned order and release its courier", func(t *testing.T) {
		s := newCancelScene(t)
		customerID := kernel.NewUUID()
		assignee := eligibleCourierAt(t, 36.76, 3.06)
		cancelled := placedOrderFor(t, customerID, restaurantID)
		require.NoError(t, cancelled.Confirm())
		require.NoError(t, cancelled.AssignCourier(
			assignee.ID(), geoPoint(t, 36.7538, 3.0588), 2.5, 135))

		s.orderRepo.On("Get", mock.Anything, cancelled.ID()).Return(cancelled, nil).Once()
		s.courierRepo.On("Release", mock.Anything, assignee.ID()).Return(nil).Once()
		s.orderRepo.On("Update", mock.Anything, cancelled).Return(nil).Once()
		s.uow.On("Commit", mock.Anything).Return(nil).Once()
		s.notifier.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.OrderEvent) bool {
			return e.Kind == ports.EventOrderCancelled &&
				e.CourierID != nil && e.CourierID.IsEqual(assignee.ID())
		})).Return(nil).Once()

		cmd, err := commands.NewCancelOrderCommand(cancelled.ID(), customerID)
		require.NoError(t, err)
		require.NoError(t, s.handler.Handle(t.Context(), cmd))

		assert.Equal(t, order.Cancelled, cancelled.Status())
		assert.Nil(t, cancelled.Courier())
		s.courierRepo.AssertExpectations(t)
		s.notifier.AssertExpectations(t)
	})

	t.Run("should cancel an unassigned order without touching couriers", func(t *testing.T) {
		s := newCancelScene(t)
		customerID := kernel.NewUUID()
		cancelled := placedOrderFor(t, customerID, restaurantID)

		s.orderRepo.On("Get", mock.Anything, cancelled.ID()).Return(cancelled, nil).Once()
		s.orderRepo.On("Update", mock.Anything, cancelled).Return(nil).Once()
		s.uow.On("Commit", mock.Anything).Return(nil).Once()
		s.notifier.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

		cmd, err := commands.NewCancelOrderCommand(cancelled.ID(), customerID)
		require.NoError(t, err)
		require.NoError(t, s.handler.Handle(t.Context(), cmd))

		assert.Equal(t, order.Cancelled, cancelled.Status())
		s.courierRepo.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
	})

	t.Run("should refuse a customer that does not own the order", func(t *testing.T) {
		s := newCancelScene(t)
		cancelled := placedOrderFor(t, kernel.NewUUID(), restaurantID)

		s.orderRepo.On("Get", mock.Anything, cancelled.ID()).Return(cancelled, nil).Once()

		cmd, err := commands.NewCancelOrderCommand(cancelled.ID(), kernel.NewUUID())
		require.NoError(t, err)
		err = s.handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, commands.ErrOrderNotOwnedByCustomer)
	})

	t.Run("should refuse cancelling a delivered order", func(t *testing.T) {
		s := newCancelScene(t)
		customerID := kernel.NewUUID()
		assignee := eligibleCourierAt(t, 36.76, 3.06)
		done := placedOrderFor(t, customerID, restaurantID)
		require.NoError(t, done.Confirm())
		require.NoError(t, done.AssignCourier(assignee.ID(), geoPoint(t, 36.7538, 3.0588), 2.5, 135))
		require.NoError(t, done.AcceptByCourier(assignee.ID()))
		require.NoError(t, done.MarkReady(assignee.ID()))
		require.NoError(t, done.StartTrip(assignee.ID()))
		require.NoError(t, done.CompleteDelivery(assignee.ID()))

		s.orderRepo.On("Get", mock.Anything, done.ID()).Return(done, nil).Once()

		cmd, err := commands.NewCancelOrderCommand(done.ID(), customerID)
		require.NoError(t, err)
		err = s.handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Delivered, done.Status())
	})
}
