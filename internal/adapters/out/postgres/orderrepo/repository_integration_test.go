package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(aggregate kernel.Aggregate) {
	m.Called(aggregate)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(volume int) *order.Order {
	location, err := kernel.NewLocation(5, 5)
	suite.Require().NoError(err)
	aggregate, err := order.NewOrder(kernel.NewUUID(), location, volume)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGetRoundTrip() {
	ctx := context.Background()
	aggregate := suite.newOrder(7)

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(restored.IsEqual(aggregate))
	suite.Equal(aggregate.Volume(), restored.Volume())
	suite.Equal(order.Created, restored.Status())
	suite.Nil(restored.CourierID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_UnknownID_ReturnsObjectNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsAssignment() {
	ctx := context.Background()
	aggregate := suite.newOrder(7)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	courierID := kernel.NewUUID()
	suite.Require().NoError(aggregate.Assign(courierID))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, restored.Status())
	suite.Require().NotNil(restored.CourierID())
	suite.True(restored.CourierID().IsEqual(courierID))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_UnknownOrder_ReturnsRecordNotFound() {
	err := suite.repository.Update(context.Background(), suite.newOrder(7))

	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetFirstInCreatedStatus_IsFIFO() {
	ctx := context.Background()

	oldest := suite.newOrder(1)
	suite.Require().NoError(suite.repository.Add(ctx, oldest))
	time.Sleep(10 * time.Millisecond)
	newer := suite.newOrder(2)
	suite.Require().NoError(suite.repository.Add(ctx, newer))

	// Assigning the newest order must not change which one is picked.
	first, err := suite.repository.GetFirstInCreatedStatus(ctx)
	suite.Require().NoError(err)
	suite.True(first.IsEqual(oldest))

	suite.Require().NoError(oldest.Assign(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Update(ctx, oldest))

	first, err = suite.repository.GetFirstInCreatedStatus(ctx)
	suite.Require().NoError(err)
	suite.True(first.IsEqual(newer))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetFirstInCreatedStatus_Empty_ReturnsObjectNotFound() {
	_, err := suite.repository.GetFirstInCreatedStatus(context.Background())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInAssignedStatus() {
	ctx := context.Background()

	waiting := suite.newOrder(1)
	suite.Require().NoError(suite.repository.Add(ctx, waiting))

	assigned := suite.newOrder(2)
	suite.Require().NoError(assigned.Assign(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Add(ctx, assigned))

	orders, err := suite.repository.GetAllInAssignedStatus(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.True(orders[0].IsEqual(assigned))
}

func TestOrderRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
