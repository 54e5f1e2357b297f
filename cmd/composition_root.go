package cmd

import (
	"log/slog"

	httpin "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/userdir"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use-case handlers. Each handler is
// created on demand; the shared pieces (database, notifier, tariff) are
// created once.
type CompositionRoot struct {
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	notifier      ports.NotificationGateway
	userDirectory ports.UserDirectory
	tariff        services.Tariff
}

// NewCompositionRoot builds the root over the opened database and the
// notification gateway. The notifier may be nil; handlers then skip
// publishing.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	notifier ports.NotificationGateway,
) (CompositionRoot, error) {
	tariff, err := services.NewTariff(
		config.TariffBaseFee,
		config.TariffPerKmRate,
		config.TariffBaseDistanceKm,
	)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:      notifier,
		userDirectory: userdir.NewGormUserDirectory(gormDB),
		tariff:        tariff,
	}, nil
}

func (c *CompositionRoot) UserDirectory() ports.UserDirectory {
	return c.userDirectory
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.fullUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.fullUoWFactory(), c.tariff, c.notifier)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	return commands.NewRejectOrderCommandHandler(c.orderOnlyUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.fullUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	return commands.NewDispatchOrderCommandHandler(c.fullUoWFactory(), c.tariff, c.notifier)
}

func (c *CompositionRoot) CreateAcceptAssignmentCommandHandler() commands.AcceptAssignmentCommandHandler {
	return commands.NewAcceptAssignmentCommandHandler(c.orderOnlyUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateRejectAssignmentCommandHandler() commands.RejectAssignmentCommandHandler {
	return commands.NewRejectAssignmentCommandHandler(c.fullUoWFactory(), c.tariff, c.notifier)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.fullUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateReviewCourierCommandHandler() commands.ReviewCourierCommandHandler {
	return commands.NewReviewCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateSetCourierOnlineCommandHandler() commands.SetCourierOnlineCommandHandler {
	return commands.NewSetCourierOnlineCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateUpdateCourierLocationCommandHandler() commands.UpdateCourierLocationCommandHandler {
	return commands.NewUpdateCourierLocationCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateGetCourierActiveOrdersQueryHandler() queries.GetCourierActiveOrdersQueryHandler {
	return queries.NewGetCourierActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierProfileQueryHandler() queries.GetCourierProfileQueryHandler {
	return queries.NewGetCourierProfileQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.gormDB)
}

// CreateServerHandlers bundles every handler the HTTP server mounts.
func (c *CompositionRoot) CreateServerHandlers() httpin.ServerHandlers {
	return httpin.ServerHandlers{
		PlaceOrder:       c.CreatePlaceOrderCommandHandler(),
		ConfirmOrder:     c.CreateConfirmOrderCommandHandler(),
		RejectOrder:      c.CreateRejectOrderCommandHandler(),
		CancelOrder:      c.CreateCancelOrderCommandHandler(),
		DispatchOrder:    c.CreateDispatchOrderCommandHandler(),
		AcceptAssignment: c.CreateAcceptAssignmentCommandHandler(),
		RejectAssignment: c.CreateRejectAssignmentCommandHandler(),
		AdvanceOrder:     c.CreateAdvanceOrderCommandHandler(),

		CreateCourier:  c.CreateCreateCourierCommandHandler(),
		ReviewCourier:  c.CreateReviewCourierCommandHandler(),
		SetOnline:      c.CreateSetCourierOnlineCommandHandler(),
		UpdateLocation: c.CreateUpdateCourierLocationCommandHandler(),

		ActiveOrders:      c.CreateGetCourierActiveOrdersQueryHandler(),
		CourierProfile:    c.CreateGetCourierProfileQueryHandler(),
		UncompletedOrders: c.CreateGetUncompletedOrdersQueryHandler(),
	}
}

// CreateRedispatchJob builds the cron job retrying dispatch for waiting
// orders.
func (c *CompositionRoot) CreateRedispatchJob(schedule string, logger *slog.Logger) *jobs.RedispatchJob {
	return jobs.NewRedispatchJob(
		c.orderOnlyUoWFactory(),
		c.CreateDispatchOrderCommandHandler(),
		schedule,
		logger,
	)
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderOnlyUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

// FuncUoWFactory adapts a closure to commands.UoWFactory.
type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// FuncOrderUoWFactory adapts a closure to commands.OrderUoWFactory.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncCourierUoWFactory adapts a closure to commands.CourierUoWFactory.
type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}
