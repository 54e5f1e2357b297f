package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type courierScene struct {
	courierRepo *MockCourierRepository
	uow         *MockUoW
	factory     *MockCourierUoWFactory
}

func newCourierScene(t *testing.T) *courierScene {
	t.Helper()
	s := &courierScene{
		courierRepo: new(MockCourierRepository),
		uow:         new(MockUoW),
		factory:     new(MockCourierUoWFactory),
	}
	s.factory.On("Create").Return(s.uow)
	s.uow.On("Begin", mock.Anything).Return(nil)
	s.uow.On("Rollback", mock.Anything).Return(nil)
	s.uow.On("CourierRepository").Return(s.courierRepo)
	return s
}

func TestCreateCourierCommandHandler_Handle(t *testing.T) {
	t.Run("should register a pending courier", func(t *testing.T) {
		s := newCourierScene(t)
		var stored *courier.Courier
		s.courierRepo.On("Add", mock.Anything, mock.AnythingOfType("*courier.Courier")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*courier.Courier)
			}).Return(nil).Once()
		s.uow.On("Commit", mock.Anything).Return(nil).Once()

		handler := commands.NewCreateCourierCommandHandler(s.factory)
		cmd, err := commands.NewCreateCourierCommand(
			kernel.NewUUID(), "Yacine", courier.VehicleBicycle)
		require.NoError(t, err)
		require.NoError(t, handler.Handle(t.Context(), cmd))

		require.NotNil(t, stored)
		assert.Equal(t, courier.ApprovalPending, stored.Approval())
		assert.False(t, stored.IsOnline())
		assert.False(t, stored.IsEligible())
	})

	t.Run("should require a name", func(t *testing.T) {
		_, err := commands.NewCreateCourierCommand(kernel.NewUUID(), "", courier.VehicleCar)
		require.Error(t, err)
	})
}

func TestReviewCourierCommandHandler_Handle(t *testing.T) {
	t.Run("should approve a pending account", func(t *testing.T) {
		s := newCourierScene(t)
		pending, err := courier.NewCourier(kernel.NewUUID(), "Amine", courier.VehicleCar)
		require.NoError(t, err)

		s.courierRepo.On("Get", mock.Anything, pending.ID()).Return(pending, nil).Once()
		s.courierRepo.On("Update", mock.Anything, pending).Return(nil).Once()
		s.uow.On("Commit", mock.Anything).Return(nil).Once()

		handler := commands.NewReviewCourierCommandHandler(s.factory)
		cmd, err := commands.NewReviewCourierCommand(pending.ID(), true)
		require.NoError(t, err)
		require.NoError(t, handler.Handle(t.Context(), cmd))

		assert.Equal(t, courier.ApprovalAccepted, pending.Approval())
	})

	t.Run("should reject an account and pull it out of rotation", func(t *testing.T) {
		s := newCourierScene(t)
		reviewed := eligibleCourierAt(t, 36.76, 3.06)

		s.courierRepo.On("Get", mock.Anything, reviewed.ID()).Return(reviewed, nil).Once()
		s.courierRepo.On("Update", mock.Anything, reviewed).Return(nil).Once()
		s.uow.On("Commit", mock.Anything).Return(nil).Once()

		handler := commands.NewReviewCourierCommandHandler(s.factory)
		cmd, err := commands.NewReviewCourierCommand(reviewed.ID(), false)
		require.NoError(t, err)
		require.NoError(t, handler.Handle(t.Context(), cmd))

		assert.Equal(t, courier.ApprovalRejected, reviewed.Approval())
		assert.False(t, reviewed.IsEligible())
	})
}

func TestSetCourierOnlineCommandHandler_Handle(t *testing.T) {
	t.Run("should take an idle courier offline and back online", func(t *testing.T) {
		s := newCourierScene(t)
		toggled := eligibleCourierAt(t, 36.76, 3.06)

		s.courierRepo.On("Get", mock.Anything, toggled.ID()).Return(toggled, nil).Twice()
		s.courierRepo.On("Update", mock.Anything, toggled).Return(nil).Twice()
		s.uow.On("Commit", mock.Anything).Return(nil).Twice()

		handler := commands.NewSetCourierOnlineCommandHandler(s.factory)

		cmd, err := commands.NewSetCourierOnlineCommand(toggled.ID(), false)
		require.NoError(t, err)
		require.NoError(t, handler.Handle(t.Context(), cmd))
		assert.False(t, toggled.IsAvailable())

		cmd, err = commands.NewSetCourierOnlineCommand(toggled.ID(), true)
		require.NoError(t, err)
		require.NoError(t, handler.Handle(t.Context(), cmd))
		assert.True(t, toggled.IsAvailable())
	})
}

func TestUpdateCourierLocationCommandHandler_Handle(t *testing.T) {
	t.Run("should record the reported position", func(t *testing.T) {
		s := newCourierScene(t)
		reporting := eligibleCourierAt(t, 36.76, 3.06)

		s.courierRepo.On("Get", mock.Anything, reporting.ID()).Return(reporting, nil).Once()
		s.courierRepo.On("Update", mock.Anything, reporting).Return(nil).Once()
		s.uow.On("Commit", mock.Anything).Return(nil).Once()

		handler := commands.NewUpdateCourierLocationCommandHandler(s.factory)
		cmd, err := commands.NewUpdateCourierLocationCommand(reporting.ID(), 36.80, 3.05)
		require.NoError(t, err)
		require.NoError(t, handler.Handle(t.Context(), cmd))

		require.NotNil(t, reporting.Location())
		assert.InDelta(t, 36.80, reporting.Location().Latitude(), 1e-9)
	})

	t.Run("should refuse out-of-range coordinates", func(t *testing.T) {
		_, err := commands.NewUpdateCourierLocationCommand(kernel.NewUUID(), 120, 0)
		require.ErrorIs(t, err, kernel.ErrInvalidCoordinate)
	})
}
