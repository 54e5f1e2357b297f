package postgres_test

import (
	"context"
	"path/filepath"
	"testing"

	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/pkg/errs"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type UnitOfWorkTestSuite struct {
	suite.Suite
	db      *gorm.DB
	factory *postgres.GormUnitOfWorkFactory
}

func TestUnitOfWorkTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkTestSuite))
}

func (suite *UnitOfWorkTestSuite) SetupTest() {
	dbPath := filepath.Join(suite.T().TempDir(), "uow.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres.Migrate(db))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkTestSuite) newCourier(name string) *courier.Courier {
	aggregate, err := courier.NewCourier(kernel.NewUUID(), name, courier.VehicleCar)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *UnitOfWorkTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	registered := suite.newCourier("Yacine")
	suite.Require().NoError(uow.CourierRepository().Add(ctx, registered))

	place, err := restaurant.NewRestaurant(kernel.NewUUID(), "Tacos de Lyon", nil, 500, true)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.RestaurantRepository().Add(ctx, place))

	suite.Require().NoError(uow.Commit(ctx))

	verify := suite.factory.Create()
	suite.Require().NoError(verify.Begin(ctx))
	defer func() { _ = verify.Rollback(ctx) }()

	loaded, err := verify.CourierRepository().Get(ctx, registered.ID())
	suite.Require().NoError(err)
	suite.Equal("Yacine", loaded.Name())

	loadedPlace, err := verify.RestaurantRepository().Get(ctx, place.ID())
	suite.Require().NoError(err)
	suite.Equal("Tacos de Lyon", loadedPlace.Name())
}

func (suite *UnitOfWorkTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	registered := suite.newCourier("Karim")
	suite.Require().NoError(uow.CourierRepository().Add(ctx, registered))
	suite.Require().NoError(uow.Rollback(ctx))

	verify := suite.factory.Create()
	suite.Require().NoError(verify.Begin(ctx))
	defer func() { _ = verify.Rollback(ctx) }()

	_, err := verify.CourierRepository().Get(ctx, registered.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkTestSuite) TestCommit_WithoutBegin_Fails() {
	uow := suite.factory.Create()
	err := uow.Commit(context.Background())
	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkTestSuite) TestRollback_AfterCommit_IsNoOp() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkTestSuite) TestBegin_Twice_IsIdempotent() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}
