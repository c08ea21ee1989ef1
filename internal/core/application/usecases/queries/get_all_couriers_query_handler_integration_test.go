package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetAllCouriersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetAllCouriersQueryHandler
}

func TestGetAllCouriersQueryHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(GetAllCouriersQueryHandlerTestSuite))
}

func (suite *GetAllCouriersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&courierrepo.CourierDTO{}, &courierrepo.StoragePlaceDTO{}))

	suite.handler = queries.NewGetAllCouriersQueryHandler(db)
}

func (suite *GetAllCouriersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetAllCouriersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE couriers CASCADE").Error)
}

func (suite *GetAllCouriersQueryHandlerTestSuite) insertCourier(name string, x, y kernel.Coordinate) uuid.UUID {
	dto := courierrepo.CourierDTO{
		ID:       uuid.New(),
		Name:     name,
		Speed:    2,
		Location: courierrepo.LocationDTO{X: x, Y: y},
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return dto.ID
}

func (suite *GetAllCouriersQueryHandlerTestSuite) TestHandleEmptyDatabaseReturnsEmptySlice() {
	query := queries.NewGetAllCouriersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetAllCouriersQueryHandlerTestSuite) TestHandleReturnsAllCouriersOrderedByName() {
	zoeID := suite.insertCourier("Zoe", 7, 3)
	adamID := suite.insertCourier("Adam", 1, 9)

	query := queries.NewGetAllCouriersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal("Adam", result[0].Name)
	suite.Equal(adamID, result[0].ID.Bytes())
	suite.Equal(kernel.Coordinate(1), result[0].Location.X())
	suite.Equal(kernel.Coordinate(9), result[0].Location.Y())

	suite.Equal("Zoe", result[1].Name)
	suite.Equal(zoeID, result[1].ID.Bytes())
}

func (suite *GetAllCouriersQueryHandlerTestSuite) TestHandleRejectsUnconstructedQuery() {
	var query queries.GetAllCouriersQuery

	_, err := suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
}
