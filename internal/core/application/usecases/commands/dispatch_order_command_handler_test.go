package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type dispatchScene struct {
	orderRepo   *MockOrderRepository
	courierRepo *MockCourierRepository
	restRepo    *MockRestaurantRepository
	uow         *MockUoW
	factory     *MockUoWFactory
	notifier    *MockNotificationGateway
	handler     commands.DispatchOrderCommandHandler
}

func newDispatchScene(t *testing.T) *dispatchScene {
	t.Helper()
	s := &dispatchScene{
		orderRepo:   new(MockOrderRepository),
		courierRepo: new(MockCourierRepository),
		restRepo:    new(MockRestaurantRepository),
		uow:         new(MockUoW),
		factory:     new(MockUoWFactory),
		notifier:    new(MockNotificationGateway),
	}
	s.factory.On("Create").Return(s.uow)
	s.uow.On("Begin", mock.Anything).Return(nil)
	s.uow.On("Rollback", mock.Anything).Return(nil)
	s.uow.On("OrderRepository").Return(s.orderRepo)
	s.uow.On("CourierRepository").Return(s.courierRepo)
	s.uow.On("RestaurantRepository").Return(s.restRepo)
	s.handler = commands.NewDispatchOrderCommandHandler(
		s.factory, services.DefaultTariff(), s.notifier)
	return s
}

func (s *dispatchScene) expectAssignedEvent(courierID kernel.UUID) {
	s.notifier.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.OrderEvent) bool {
		return e.Kind == ports.EventCourierAssigned &&
			e.CourierID != nil && e.CourierID.IsEqual(courierID)
	})).Return(nil).Once()
}

func TestDispatchOrderCommandHandler_Handle(t *testing.T) {
	restaurantID := kernel.NewUUID()

	t.Run("should assign the nearest eligible courier", func(t *testing.T) {
		s := newDispatchScene(t)
		dispatched := confirmedOrderFor(t, restaurantID)
		near := eligibleCourierAt(t, 36.7538+2.0/111.19, 3.0588)
		far := eligibleCourierAt(t, 36.7538+5.0/111.19, 3.0588)

		s.orderRepo.On("Get", mock.Anything, dispatched.ID()).Return(dispatched, nil).Once()
		s.restRepo.On("Get", mock.Anything, restaurantID).
			Return(activeRestaurant(t, restaurantID, 0), nil).Once()
		s.courierRepo.On("GetAllEligible", mock.Anything, mock.Anything).
			Return([]*courier.Courier{far, near}, nil).Once()
		s.courierRepo.On("Claim", mock.Anything, near.ID(), dispatched.ID()).Return(nil).Once()
		s.orderRepo.On("Update", mock.Anything, dispatched).Return(nil).Once()
		s.uow.On("Commit", mock.Anything).Return(nil).Once()
		s.expectAssignedEvent(near.ID())

		cmd, err := commands.NewDispatchOrderCommand(dispatched.ID())
		require.NoError(t, err)
		require.NoError(t, s.handler.Handle(t.Context(), cmd))

		assert.Equal(t, order.Assigned, dispatched.Status())
		require.NotNil(t, dispatched.Courier())
		assert.True(t, dispatched.Courier().IsEqual(near.ID()))
		assert.NotNil(t, dispatched.Pickup())
		assert.Greater(t, dispatched.DeliveryFee(), 0.0)
		s.courierRepo.AssertNotCalled(t, "Claim", mock.Anything, far.ID(), dispatched.ID())
		s.courierRepo.AssertExpectations(t)
		s.notifier.AssertExpectations(t)
	})

	t.Run("should fall through to the next candidate when a claim is lost", func(t *testing.T) {
		s := newDispatchScene(t)
		dispatched := confirmedOrderFor(t, restaurantID)
		near := eligibleCourierAt(t, 36.7538+2.0/111.19, 3.0588)
		far := eligibleCourierAt(t, 36.7538+5.0/111.19, 3.0588)

		s.orderRepo.On("Get", mock.Anything, dispatched.ID()).Return(dispatched, nil).Once()
		s.restRepo.On("Get", mock.Anything, restaurantID).
			Return(activeRestaurant(t, restaurantID, 0), nil).Once()
		s.courierRepo.On("GetAllEligible", mock.Anything, mock.Anything).
			Return([]*courier.Courier{near, far}, nil).Once()
		s.courierRepo.On("Claim", mock.Anything, near.ID(), dispatched.ID()).
			Return(ports.ErrConcurrentModification).Once()
		s.courierRepo.On("Claim", mock.Anything, far.ID(), dispatched.ID()).Return(nil).Once()
		s.orderRepo.On("Update", mock.Anything, dispatched).Return(nil).Once()
		s.uow.On("Commit", mock.Anything).Return(nil).Once()
		s.expectAssignedEvent(far.ID())

		cmd, err := commands.NewDispatchOrderCommand(dispatched.ID())
		require.NoError(t, err)
		require.NoError(t, s.handler.Handle(t.Context(), cmd))

		require.NotNil(t, dispatched.Courier())
		assert.True(t, dispatched.Courier().IsEqual(far.ID()))
		s.courierRepo.AssertExpectations(t)
	})

	t.Run("should return ErrNoCourierAvailable when nobody is eligible", func(t *testing.T) {
		s := newDispatchScene(t)
		dispatched := confirmedOrderFor(t, restaurantID)

		s.orderRepo.On("Get", mock.Anything, dispatched.ID()).Return(dispatched, nil).Once()
		s.restRepo.On("Get", mock.Anything, restaurantID).
			Return(activeRestaurant(t, restaurantID, 0), nil).Once()
		s.courierRepo.On("GetAllEligible", mock.Anything, mock.Anything).
			Return([]*courier.Courier{}, nil).Once()

		cmd, err := commands.NewDispatchOrderCommand(dispatched.ID())
		require.NoError(t, err)
		err = s.handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, commands.ErrNoCourierAvailable)
		assert.Equal(t, order.Confirmed, dispatched.Status())
		s.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		s.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should return ErrNoCourierAvailable when every claim is lost", func(t *testing.T) {
		s := newDispatchScene(t)
		dispatched := confirmedOrderFor(t, restaurantID)
		only := eligibleCourierAt(t, 36.76, 3.06)

		s.orderRepo.On("Get", mock.Anything, dispatched.ID()).Return(dispatched, nil).Once()
		s.restRepo.On("Get", mock.Anything, restaurantID).
			Return(activeRestaurant(t, restaurantID, 0), nil).Once()
		s.courierRepo.On("GetAllEligible", mock.Anything, mock.Anything).
			Return([]*courier.Courier{only}, nil).Once()
		s.courierRepo.On("Claim", mock.Anything, only.ID(), dispatched.ID()).
			Return(ports.ErrConcurrentModification).Once()

		cmd, err := commands.NewDispatchOrderCommand(dispatched.ID())
		require.NoError(t, err)
		err = s.handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, commands.ErrNoCourierAvailable)
		assert.Equal(t, order.Confirmed, dispatched.Status())
	})

	t.Run("should fail when the restaurant has no pickup location", func(t *testing.T) {
		s := newDispatchScene(t)
		dispatched := confirmedOrderFor(t, restaurantID)
		bare, err := restaurant.NewRestaurant(restaurantID, "No Map Pin", nil, 0, true)
		require.NoError(t, err)

		s.orderRepo.On("Get", mock.Anything, dispatched.ID()).Return(dispatched, nil).Once()
		s.restRepo.On("Get", mock.Anything, restaurantID).Return(bare, nil).Once()

		cmd, err := commands.NewDispatchOrderCommand(dispatched.ID())
		require.NoError(t, err)
		err = s.handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, restaurant.ErrLocationIsNotSet)
	})

	t.Run("should refuse an order that is not dispatchable", func(t *testing.T) {
		s := newDispatchScene(t)
		dispatched := placedOrderFor(t, kernel.NewUUID(), restaurantID)

		s.orderRepo.On("Get", mock.Anything, dispatched.ID()).Return(dispatched, nil).Once()

		cmd, err := commands.NewDispatchOrderCommand(dispatched.ID())
		require.NoError(t, err)
		err = s.handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}
