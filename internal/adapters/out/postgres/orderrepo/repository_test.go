package orderrepo_test

import (
	"context"
	"path/filepath"
	"testing"

	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OrderRepositoryTestSuite exercises the repository against a real SQL
// database. SQLite keeps the suite self-contained; the repository only
// uses portable GORM operations.
type OrderRepositoryTestSuite struct {
	suite.Suite
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func TestOrderRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryTestSuite))
}

func (suite *OrderRepositoryTestSuite) SetupTest() {
	dbPath := filepath.Join(suite.T().TempDir(), "orders.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}))

	suite.repository = orderrepo.NewGormOrderRepository(db)
}

func (suite *OrderRepositoryTestSuite) createPlacedOrder() *order.Order {
	productID := kernel.NewUUID()
	item, err := order.NewItem(productID, "Margherita", 850, 2)
	suite.Require().NoError(err)

	dropoff, err := kernel.NewGeoPoint(36.7538, 3.0588)
	suite.Require().NoError(err)

	placed, err := order.NewOrder(
		kernel.NewUUID(),
		order.NewShortCode(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]order.Item{item},
		dropoff,
		"12 Rue Didouche Mourad",
	)
	suite.Require().NoError(err)
	return placed
}

func (suite *OrderRepositoryTestSuite) assignCourier(aggregate *order.Order) kernel.UUID {
	suite.Require().NoError(aggregate.Confirm())

	courierID := kernel.NewUUID()
	pickup, err := kernel.NewGeoPoint(36.76, 3.04)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AssignCourier(courierID, pickup, 2.4, 144))
	return courierID
}

func (suite *OrderRepositoryTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	placed := suite.createPlacedOrder()

	suite.Require().NoError(suite.repository.Add(ctx, placed))

	loaded, err := suite.repository.Get(ctx, placed.ID())
	suite.Require().NoError(err)

	suite.True(loaded.IsEqual(placed))
	suite.Equal(placed.ShortCode(), loaded.ShortCode())
	suite.Equal(order.Placed, loaded.Status())
	suite.Equal(placed.CustomerID(), loaded.CustomerID())
	suite.Equal(placed.RestaurantID(), loaded.RestaurantID())
	suite.InDelta(1700.0, loaded.TotalPrice(), 0.001)
	suite.Equal(0, loaded.Version())
	suite.Nil(loaded.Courier())

	items := loaded.Items()
	suite.Require().Len(items, 1)
	suite.Equal("Margherita", items[0].Name())
	suite.Equal(2, items[0].Quantity())
	suite.InDelta(850.0, items[0].Price(), 0.001)
}

func (suite *OrderRepositoryTestSuite) TestGet_UnknownOrder_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestGetByShortCode() {
	ctx := context.Background()
	placed := suite.createPlacedOrder()
	suite.Require().NoError(suite.repository.Add(ctx, placed))

	loaded, err := suite.repository.GetByShortCode(ctx, placed.ShortCode())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(placed))

	_, err = suite.repository.GetByShortCode(ctx, "Z000000")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestUpdate_BumpsVersion() {
	ctx := context.Background()
	placed := suite.createPlacedOrder()
	suite.Require().NoError(suite.repository.Add(ctx, placed))

	suite.Require().NoError(placed.Confirm())
	suite.Require().NoError(suite.repository.Update(ctx, placed))
	suite.Equal(1, placed.Version())

	loaded, err := suite.repository.Get(ctx, placed.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, loaded.Status())
	suite.Equal(1, loaded.Version())
}

func (suite *OrderRepositoryTestSuite) TestUpdate_StaleVersion_ReturnsConcurrentModification() {
	ctx := context.Background()
	placed := suite.createPlacedOrder()
	suite.Require().NoError(suite.repository.Add(ctx, placed))

	first, err := suite.repository.Get(ctx, placed.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, placed.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Confirm())
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.RejectByRestaurant())
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, ports.ErrConcurrentModification)

	loaded, err := suite.repository.Get(ctx, placed.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, loaded.Status())
}

func (suite *OrderRepositoryTestSuite) TestUpdate_CourierRejection_ClearsCourierColumn() {
	ctx := context.Background()
	placed := suite.createPlacedOrder()
	courierID := suite.assignCourier(placed)
	suite.Require().NoError(suite.repository.Add(ctx, placed))

	suite.Require().NoError(placed.RejectByCourier(courierID, "vehicle broke down"))
	suite.Require().NoError(suite.repository.Update(ctx, placed))

	loaded, err := suite.repository.Get(ctx, placed.ID())
	suite.Require().NoError(err)
	suite.Equal(order.CourierRejected, loaded.Status())
	suite.Nil(loaded.Courier())
	suite.Equal("vehicle broke down", loaded.RejectionReason())
	suite.NotNil(loaded.CourierRejectedAt())
}

func (suite *OrderRepositoryTestSuite) TestGetAllAwaitingDispatch_FiltersAndOrders() {
	ctx := context.Background()

	waitingFirst := suite.createPlacedOrder()
	suite.Require().NoError(waitingFirst.Confirm())
	suite.Require().NoError(suite.repository.Add(ctx, waitingFirst))

	stillPlaced := suite.createPlacedOrder()
	suite.Require().NoError(suite.repository.Add(ctx, stillPlaced))

	rejectedByCourier := suite.createPlacedOrder()
	courierID := suite.assignCourier(rejectedByCourier)
	suite.Require().NoError(rejectedByCourier.RejectByCourier(courierID, "too far"))
	suite.Require().NoError(suite.repository.Add(ctx, rejectedByCourier))

	assigned := suite.createPlacedOrder()
	suite.assignCourier(assigned)
	suite.Require().NoError(suite.repository.Add(ctx, assigned))

	waiting, err := suite.repository.GetAllAwaitingDispatch(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(waiting, 2)
	suite.True(waiting[0].IsEqual(waitingFirst))
	suite.True(waiting[1].IsEqual(rejectedByCourier))
}
